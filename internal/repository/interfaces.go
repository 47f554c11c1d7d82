package repository

import (
	"context"
	"time"

	"magazine_cms/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

// BlockTypeRepository stores custom block type definitions keyed by id.
type BlockTypeRepository interface {
	List(ctx context.Context) ([]models.BlockTypeDefinition, error)
	Get(ctx context.Context, id string) (models.BlockTypeDefinition, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, def models.BlockTypeDefinition) error
	Update(ctx context.Context, def models.BlockTypeDefinition) error
	Delete(ctx context.Context, id string) error
}

type MagazineRepository interface {
	SaveMagazine(ctx context.Context, m models.Magazine) (models.Magazine, error)
	GetMagazineByID(ctx context.Context, id uuid.UUID) (models.Magazine, error)
	GetMagazineBySlug(ctx context.Context, slug string) (models.Magazine, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	ListMagazines(ctx context.Context, filter models.MagazineFilter) ([]models.Magazine, int, error)
	UpdateMagazine(ctx context.Context, m models.Magazine) (models.Magazine, error)
	UpdateMagazineStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	DeleteMagazine(ctx context.Context, id uuid.UUID) error
}

type ChildPageRepository interface {
	SaveChildPage(ctx context.Context, p models.ChildPage, copyFrom *models.BlockParent) (models.ChildPage, error)
	GetChildPageByID(ctx context.Context, id uuid.UUID) (models.ChildPage, error)
	GetChildPageBySlug(ctx context.Context, magazineID uuid.UUID, slug string) (models.ChildPage, error)
	ListChildPages(ctx context.Context, magazineID uuid.UUID) ([]models.ChildPage, error)
	UpdateChildPage(ctx context.Context, p models.ChildPage) (models.ChildPage, error)
	UpdateChildPageStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error
	DeleteChildPage(ctx context.Context, id uuid.UUID) error
}

// BlockRepository keeps the ordered block sequence of each parent document.
type BlockRepository interface {
	ListBlocks(ctx context.Context, parent models.BlockParent) ([]models.Block, error)
	GetBlock(ctx context.Context, id uuid.UUID) (models.Block, error)
	AddBlock(ctx context.Context, b models.Block) (models.Block, error)
	UpdateBlock(ctx context.Context, b models.Block) (models.Block, error)
	ToggleVisibility(ctx context.Context, parent models.BlockParent, id uuid.UUID) (models.Block, error)
	DeleteBlock(ctx context.Context, parent models.BlockParent, id uuid.UUID) error
	Reorder(ctx context.Context, parent models.BlockParent, ids []uuid.UUID) ([]models.Block, error)
}

type AdRepository interface {
	SaveAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	GetAdByID(ctx context.Context, id uuid.UUID) (models.Ad, error)
	ListAds(ctx context.Context, status string, now time.Time) ([]models.Ad, error)
	UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	DeleteAd(ctx context.Context, id uuid.UUID) error
	IncrementAdViews(ctx context.Context, id uuid.UUID) error
	IncrementAdClicks(ctx context.Context, id uuid.UUID) error
}

type ArticleRepository interface {
	SaveArticle(ctx context.Context, article models.Article) (uuid.UUID, error)
	UpdateArticleFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	GetArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	GetArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
}

type AnalyticsRepository interface {
	SavePageview(ctx context.Context, pv models.Pageview) error
	SaveEvent(ctx context.Context, ev models.AnalyticsEvent) error
	TouchSession(ctx context.Context, s models.Session) error
	CountPageviews(ctx context.Context, since time.Time) (int64, error)
	CountSessions(ctx context.Context, since time.Time) (int64, error)
	CountEvents(ctx context.Context, since time.Time) (int64, error)
	SessionAverages(ctx context.Context, since time.Time) (avgDuration, avgPages float64, err error)
	PageviewsByDay(ctx context.Context, since time.Time) ([]models.DayCount, error)
	TopPages(ctx context.Context, since time.Time, limit int) ([]models.PageCount, error)
}
