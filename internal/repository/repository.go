package repository

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	redisapp "magazine_cms/internal/storage/redis"
)

// querier is implemented by both *pgxpool.Pool and pgx.Tx, so the same scan
// helpers serve plain reads and reads inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	User      UserRepository
	Token     TokenRepository
	BlockType BlockTypeRepository
	Magazine  MagazineRepository
	ChildPage ChildPageRepository
	Block     BlockRepository
	Ad        AdRepository
	Article   ArticleRepository
	Analytics AnalyticsRepository
}

func NewRepository(db *pgxpool.Pool, rdb *redisapp.Client) *Repository {
	return &Repository{
		User:      NewUserRepository(db),
		Token:     NewRedisTokenRepo(rdb),
		BlockType: NewRedisBlockTypeRepo(rdb),
		Magazine:  NewMagazineRepository(db),
		ChildPage: NewChildPageRepository(db),
		Block:     NewBlockRepository(db),
		Ad:        NewAdRepository(db),
		Article:   NewArticleRepository(db),
		Analytics: NewAnalyticsRepository(db),
	}
}
