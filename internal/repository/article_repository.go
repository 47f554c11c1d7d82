package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var articleColumns = []string{
	"id", "title", "slug", "excerpt", "content", "cover_image", "author", "category",
	"tags", "magazine_id", "status", "published_at", "created_at", "updated_at", "metadata",
}

type ArticleRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewArticleRepository(db *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ArticleRepo) SaveArticle(ctx context.Context, article models.Article) (uuid.UUID, error) {
	const op = "repository.article_repository.SaveArticle"

	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}

	query, args, err := r.sb.Insert("articles").
		Columns(
			"title",
			"slug",
			"excerpt",
			"content",
			"cover_image",
			"author",
			"category",
			"tags",
			"magazine_id",
			"status",
			"published_at",
			"metadata",
		).
		Values(
			article.Title,
			article.Slug,
			article.Excerpt,
			article.Content,
			article.CoverImage,
			article.Author,
			article.Category,
			tags,
			article.MagazineID,
			article.Status,
			article.PublishedAt,
			article.Metadata,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		switch {
		case postgresql.IsUniqueViolation(err):
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		case postgresql.IsForeignKeyViolation(err):
			return uuid.Nil, fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateArticleFields applies a partial update restricted to the editable
// columns. An unknown column is rejected before anything is written.
func (r *ArticleRepo) UpdateArticleFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.article_repository.UpdateArticleFields"

	allowedFields := map[string]bool{
		"title":        true,
		"slug":         true,
		"excerpt":      true,
		"content":      true,
		"cover_image":  true,
		"author":       true,
		"category":     true,
		"tags":         true,
		"magazine_id":  true,
		"status":       true,
		"published_at": true,
		"metadata":     true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: %w", op, models.NewValidationError("", "no fields to update"))
	}

	updateBuilder := r.sb.Update("articles").
		Set("updated_at", time.Now().UTC())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: %w", op, models.NewValidationError(field, "is not allowed for update"))
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		switch {
		case postgresql.IsUniqueViolation(err):
			return fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		case postgresql.IsForeignKeyViolation(err):
			return fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: article: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ArticleRepo) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	const op = "repository.article_repository.DeleteArticle"

	query, args, err := r.sb.Delete("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: article: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ArticleRepo) GetArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "repository.article_repository.GetArticleByID"

	query, args, err := r.sb.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	article, err := scanArticle(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return nil, fmt.Errorf("%s: article: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &article, nil
}

// GetArticles lists articles newest first. Tags match when the article carries
// any of the requested tags.
func (r *ArticleRepo) GetArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	const op = "repository.article_repository.GetArticles"

	page, perPage := normalizePage(filter.Page, filter.PerPage)

	where := sq.And{}
	switch filter.Status {
	case "", "all":
	case string(models.StatusDraft), string(models.StatusPublished), string(models.StatusArchived):
		where = append(where, sq.Eq{"status": filter.Status})
	default:
		return nil, 0, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "invalid status filter '"+filter.Status+"'"))
	}
	if len(filter.Tags) > 0 {
		where = append(where, sq.Expr("tags && ?", pq.Array(filter.Tags)))
	}

	totalCount, err := r.getTotalCount(ctx, where)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(articleColumns...).
		From("articles").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0, perPage)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return articles, totalCount, nil
}

func (r *ArticleRepo) getTotalCount(ctx context.Context, where sq.And) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("articles").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, strings.TrimSpace(query))
	}

	return count, nil
}

func scanArticle(row pgx.Row) (models.Article, error) {
	var (
		a          models.Article
		magazineID uuid.NullUUID
	)

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.CoverImage,
		&a.Author,
		&a.Category,
		&a.Tags,
		&magazineID,
		&a.Status,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Metadata,
	)
	if magazineID.Valid {
		a.MagazineID = &magazineID.UUID
	}

	return a, err
}
