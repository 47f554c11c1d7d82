package http

import (
	"context"
	"log/slog"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/seo"
	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/request"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, input dto.UserRegisterInput) (dto.UserResponse, error)
	Login(ctx context.Context, req request.LoginRequest) (*models.TokenPair, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUser(ctx context.Context, userID uuid.UUID) (dto.UserResponse, error)
}

type AuthService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type RegistryService interface {
	All(ctx context.Context) ([]models.BlockTypeDefinition, error)
	Get(ctx context.Context, id string) (models.BlockTypeDefinition, error)
	Create(ctx context.Context, def models.BlockTypeDefinition) (models.BlockTypeDefinition, error)
	Update(ctx context.Context, id string, req dto.UpdateBlockTypeRequest) (models.BlockTypeDefinition, error)
	Duplicate(ctx context.Context, id, newName string) (models.BlockTypeDefinition, error)
	Delete(ctx context.Context, id string) error
	Defaults(ctx context.Context, id string) (map[string]any, error)
	Validate(ctx context.Context, id string, data map[string]any) error
}

// BlockService is the block API shared by magazines and child pages; id is
// the owning document.
type BlockService interface {
	ListBlocks(ctx context.Context, id uuid.UUID) ([]models.Block, error)
	AddBlock(ctx context.Context, id uuid.UUID, req dto.CreateBlockRequest) (models.Block, error)
	UpdateBlock(ctx context.Context, id, blockID uuid.UUID, req dto.UpdateBlockRequest) (models.Block, error)
	ToggleBlockVisibility(ctx context.Context, id, blockID uuid.UUID) (models.Block, error)
	DeleteBlock(ctx context.Context, id, blockID uuid.UUID) error
	ReorderBlocks(ctx context.Context, id uuid.UUID, ids []uuid.UUID) ([]models.Block, error)
}

type MagazineService interface {
	BlockService
	CreateMagazine(ctx context.Context, req dto.CreateMagazineRequest) (models.Magazine, error)
	GetMagazine(ctx context.Context, id uuid.UUID) (models.Magazine, error)
	GetPublished(ctx context.Context, slug string) (models.Magazine, error)
	ListMagazines(ctx context.Context, filter models.MagazineFilter) (*dto.MagazineListResponse, error)
	UpdateMagazine(ctx context.Context, id uuid.UUID, req dto.UpdateMagazineRequest) (models.Magazine, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest) (models.Magazine, error)
	DeleteMagazine(ctx context.Context, id uuid.UUID) error
	RecordView(ctx context.Context, id uuid.UUID) error
	SEOReport(ctx context.Context, id uuid.UUID) (seo.Report, error)
	JSONLD(ctx context.Context, slug string) (map[string]any, error)
}

type ChildPageService interface {
	BlockService
	CreateChildPage(ctx context.Context, magazineID uuid.UUID, req dto.CreateChildPageRequest) (models.ChildPage, error)
	GetChildPage(ctx context.Context, id uuid.UUID) (models.ChildPage, error)
	ListChildPages(ctx context.Context, magazineID uuid.UUID) ([]models.ChildPage, error)
	GetPublished(ctx context.Context, magazineSlug, pageSlug string) (models.ChildPage, error)
	UpdateChildPage(ctx context.Context, id uuid.UUID, req dto.UpdateChildPageRequest) (models.ChildPage, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest) (models.ChildPage, error)
	DeleteChildPage(ctx context.Context, id uuid.UUID) error
	SEOReport(ctx context.Context, id uuid.UUID) (seo.Report, error)
}

type AdService interface {
	CreateAd(ctx context.Context, req dto.AdRequest) (models.Ad, error)
	GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error)
	ListAds(ctx context.Context, status string) ([]models.Ad, error)
	UpdateAd(ctx context.Context, id uuid.UUID, req dto.AdRequest) (models.Ad, error)
	DeleteAd(ctx context.Context, id uuid.UUID) error
	RecordView(ctx context.Context, id uuid.UUID) error
	RecordClick(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (dto.AdStatsResponse, error)
}

type ArticleService interface {
	CreateArticle(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	UpdateArticle(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	ListArticles(ctx context.Context, filter models.ArticleFilter) (*dto.ArticleListResponse, error)
	PublishArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	ArchiveArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}

type AnalyticsService interface {
	Dispatch(kind string, fn func(ctx context.Context) error)
	TrackPageview(req dto.PageviewRequest, userAgent string) error
	TrackEvent(req dto.EventRequest, userAgent string) error
	Overview(ctx context.Context, days int) (models.AnalyticsOverview, error)
	Trend(ctx context.Context, days int) ([]models.DayCount, error)
	TopPages(ctx context.Context, limit int) ([]models.PageCount, error)
}

// Services groups the dependencies of the HTTP handlers.
type Services struct {
	User      UserService
	Auth      AuthService
	Registry  RegistryService
	Magazine  MagazineService
	ChildPage ChildPageService
	Ad        AdService
	Article   ArticleService
	Analytics AnalyticsService
	Health    map[string]HealthChecker
}

type Routers struct {
	log              *slog.Logger
	UserService      UserService
	AuthService      AuthService
	RegistryService  RegistryService
	MagazineService  MagazineService
	ChildPageService ChildPageService
	AdService        AdService
	ArticleService   ArticleService
	AnalyticsService AnalyticsService
	health           map[string]HealthChecker
}

func NewRouter(log *slog.Logger, s Services) *Routers {
	return &Routers{
		log:              log,
		UserService:      s.User,
		AuthService:      s.Auth,
		RegistryService:  s.Registry,
		MagazineService:  s.Magazine,
		ChildPageService: s.ChildPage,
		AdService:        s.Ad,
		ArticleService:   s.Article,
		AnalyticsService: s.Analytics,
		health:           s.Health,
	}
}
