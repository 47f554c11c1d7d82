package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	_ "magazine_cms/docs"
	jwtlib "magazine_cms/internal/lib/jwt"
	"magazine_cms/internal/lib/logger/sl"
	appmw "magazine_cms/internal/middleware"
	httprouters "magazine_cms/internal/transport/http"
	"magazine_cms/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Options struct {
	Host            string
	Port            string
	Secret          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	m               *http.ServeMux
	log             *slog.Logger
	e               *echo.Echo
	routers         *httprouters.Routers
	addr            string
	secret          string
	shutdownTimeout time.Duration
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httprouters.NewValidator()
	e.HTTPErrorHandler = errorHandler(log)
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz not registered", sl.Err(err))
	}

	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}

	return &Server{
		m:               mux,
		log:             log,
		e:               e,
		routers:         routers,
		addr:            net.JoinHostPort(opts.Host, opts.Port),
		secret:          opts.Secret,
		shutdownTimeout: shutdown,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) authMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(s.secret),
		SigningMethod: jwt.SigningMethodHS256.Name,
		ContextKey:    httprouters.ContextUserKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(jwtlib.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		},
	})
}

func (s *Server) BuildRouters() {
	r := s.routers
	auth := s.authMiddleware()
	admin := []echo.MiddlewareFunc{auth, r.AdminOnly}

	s.e.GET("/health", r.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz", echo.WrapHandler(http.RedirectHandler("/debug/statsviz/", http.StatusMovedPermanently)))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	api := s.e.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.Register)
		authGroup.POST("/login", r.Login)
		authGroup.POST("/refresh", r.Refresh)
		authGroup.GET("/me", r.Me, auth)
		authGroup.POST("/logout", r.Logout, auth)
	}

	public := api.Group("/public")
	{
		public.GET("/magazines/:slug", r.GetPublicMagazine)
		public.GET("/magazines/:slug/jsonld", r.GetPublicMagazineJSONLD)
		public.GET("/magazines/:slug/pages/:pageSlug", r.GetPublicChildPage)
		public.POST("/ads/:id/view", r.RecordAdView)
		public.POST("/ads/:id/click", r.RecordAdClick)
	}

	api.POST("/seo/analyze", r.AnalyzeSEO)

	analytics := api.Group("/analytics")
	{
		analytics.POST("/pageview", r.TrackPageview)
		analytics.POST("/event", r.TrackEvent)
		analytics.GET("/overview", r.AnalyticsOverview, admin...)
		analytics.GET("/trend", r.AnalyticsTrend, admin...)
		analytics.GET("/top-pages", r.AnalyticsTopPages, admin...)
	}

	blockTypes := api.Group("/block-types", admin...)
	{
		blockTypes.GET("", r.ListBlockTypes)
		blockTypes.POST("", r.CreateBlockType)
		blockTypes.GET("/:id", r.GetBlockType)
		blockTypes.PUT("/:id", r.UpdateBlockType)
		blockTypes.DELETE("/:id", r.DeleteBlockType)
		blockTypes.POST("/:id/duplicate", r.DuplicateBlockType)
		blockTypes.GET("/:id/defaults", r.BlockTypeDefaults)
		blockTypes.POST("/:id/validate", r.ValidateBlockPayload)
	}

	magazines := api.Group("/magazines", admin...)
	{
		magazines.GET("", r.ListMagazines)
		magazines.POST("", r.CreateMagazine)
		magazines.GET("/:id", r.GetMagazine)
		magazines.PUT("/:id", r.UpdateMagazine)
		magazines.DELETE("/:id", r.DeleteMagazine)
		magazines.PATCH("/:id/status", r.ChangeMagazineStatus)
		magazines.GET("/:id/seo", r.MagazineSEO)

		magazines.GET("/:id/blocks", r.ListMagazineBlocks)
		magazines.POST("/:id/blocks", r.AddMagazineBlock)
		magazines.PUT("/:id/blocks/order", r.ReorderMagazineBlocks)
		magazines.PUT("/:id/blocks/:blockId", r.UpdateMagazineBlock)
		magazines.DELETE("/:id/blocks/:blockId", r.DeleteMagazineBlock)
		magazines.PATCH("/:id/blocks/:blockId/visibility", r.ToggleMagazineBlock)

		magazines.GET("/:id/pages", r.ListChildPages)
		magazines.POST("/:id/pages", r.CreateChildPage)
	}

	pages := api.Group("/pages", admin...)
	{
		pages.GET("/:pageId", r.GetChildPage)
		pages.PUT("/:pageId", r.UpdateChildPage)
		pages.DELETE("/:pageId", r.DeleteChildPage)
		pages.PATCH("/:pageId/status", r.ChangeChildPageStatus)
		pages.GET("/:pageId/seo", r.ChildPageSEO)

		pages.GET("/:pageId/blocks", r.ListPageBlocks)
		pages.POST("/:pageId/blocks", r.AddPageBlock)
		pages.PUT("/:pageId/blocks/order", r.ReorderPageBlocks)
		pages.PUT("/:pageId/blocks/:blockId", r.UpdatePageBlock)
		pages.DELETE("/:pageId/blocks/:blockId", r.DeletePageBlock)
		pages.PATCH("/:pageId/blocks/:blockId/visibility", r.TogglePageBlock)
	}

	ads := api.Group("/ads", admin...)
	{
		ads.GET("", r.ListAds)
		ads.POST("", r.CreateAd)
		ads.GET("/:id", r.GetAd)
		ads.PUT("/:id", r.UpdateAd)
		ads.DELETE("/:id", r.DeleteAd)
		ads.GET("/:id/stats", r.AdStats)
	}

	articles := api.Group("/articles", admin...)
	{
		articles.GET("", r.ListArticles)
		articles.POST("", r.CreateArticle)
		articles.GET("/:id", r.GetArticle)
		articles.PUT("/:id", r.UpdateArticle)
		articles.DELETE("/:id", r.DeleteArticle)
		articles.PATCH("/:id/publish", r.PublishArticle)
		articles.PATCH("/:id/archive", r.ArchiveArticle)
	}
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, in the regular error envelope.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		} else {
			log.Error("unhandled error", sl.Err(err))
		}

		body := response.ErrorResponseWithDetails(http.StatusText(code), "")
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Error("failed to write error response", sl.Err(err))
		}
	}
}
