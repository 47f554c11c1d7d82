package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/metrics"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDays     = 30
	maxDays         = 365
	defaultTopPages = 10
	maxTopPages     = 100
)

// AnalyticsService records pageviews and events without blocking the caller
// and serves cached aggregates over the stored records.
type AnalyticsService struct {
	log          *slog.Logger
	repo         repository.AnalyticsRepository
	cache        *cache.Cache
	writeTimeout time.Duration
	now          func() time.Time
	wg           sync.WaitGroup
}

func NewAnalyticsService(log *slog.Logger, repo repository.AnalyticsRepository, cacheTTL, writeTimeout time.Duration) *AnalyticsService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	return &AnalyticsService{
		log:          log,
		repo:         repo,
		cache:        cache.New(cacheTTL, 2*cacheTTL),
		writeTimeout: writeTimeout,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch runs fn in the background with its own timeout. Failures are
// logged and counted, never returned.
func (s *AnalyticsService) Dispatch(kind string, fn func(ctx context.Context) error) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			metrics.AnalyticsWrites.WithLabelValues(kind, "dropped").Inc()
			s.log.Warn("analytics write dropped", slog.String("kind", kind), sl.Err(err))
			return
		}

		metrics.AnalyticsWrites.WithLabelValues(kind, "ok").Inc()
	}()
}

// Wait blocks until every dispatched write has finished.
func (s *AnalyticsService) Wait() {
	s.wg.Wait()
}

// TrackPageview validates the hit synchronously and stores it together with
// the session update in the background.
func (s *AnalyticsService) TrackPageview(req dto.PageviewRequest, userAgent string) error {
	const op = "analytics_service.TrackPageview"

	path, err := pathOf(req.URL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	pv := models.Pageview{
		ID:        uuid.New(),
		SessionID: req.SessionID,
		URL:       req.URL,
		Path:      path,
		Title:     req.Title,
		Referrer:  req.Referrer,
		UserAgent: userAgent,
		CreatedAt: now,
	}

	s.Dispatch("pageview", func(ctx context.Context) error {
		if err := s.repo.SavePageview(ctx, pv); err != nil {
			return err
		}
		return s.repo.TouchSession(ctx, models.Session{
			ID:        pv.SessionID,
			LastSeen:  now,
			Pageviews: 1,
			LastURL:   pv.URL,
			UserAgent: userAgent,
		})
	})

	return nil
}

func (s *AnalyticsService) TrackEvent(req dto.EventRequest, userAgent string) error {
	const op = "analytics_service.TrackEvent"

	if req.URL != "" {
		if _, err := pathOf(req.URL); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	now := s.now()
	ev := models.AnalyticsEvent{
		ID:        uuid.New(),
		SessionID: req.SessionID,
		Name:      req.Name,
		Category:  req.Category,
		Label:     req.Label,
		Value:     req.Value,
		URL:       req.URL,
		Props:     req.Props,
		CreatedAt: now,
	}

	s.Dispatch("event", func(ctx context.Context) error {
		if err := s.repo.SaveEvent(ctx, ev); err != nil {
			return err
		}
		return s.repo.TouchSession(ctx, models.Session{
			ID:        ev.SessionID,
			LastSeen:  now,
			LastURL:   ev.URL,
			UserAgent: userAgent,
		})
	})

	return nil
}

// Overview aggregates the last days of traffic. The queries run concurrently
// and the result is cached.
func (s *AnalyticsService) Overview(ctx context.Context, days int) (models.AnalyticsOverview, error) {
	const op = "analytics_service.Overview"

	days = clamp(days, defaultDays, maxDays)
	key := "overview:" + strconv.Itoa(days)

	if v, ok := s.cache.Get(key); ok {
		return v.(models.AnalyticsOverview), nil
	}

	since := s.since(days)

	var out models.AnalyticsOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountPageviews(gctx, since)
		out.Pageviews = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountSessions(gctx, since)
		out.Sessions = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountEvents(gctx, since)
		out.Events = n
		return err
	})
	g.Go(func() error {
		avgDuration, avgPages, err := s.repo.SessionAverages(gctx, since)
		out.AvgDuration = avgDuration
		out.AvgPagesPerSess = avgPages
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("failed to build overview", slog.String("op", op), sl.Err(err))
		return models.AnalyticsOverview{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.SetDefault(key, out)

	return out, nil
}

// Trend returns one entry per UTC day, oldest first. Days without traffic
// are reported with zero counts.
func (s *AnalyticsService) Trend(ctx context.Context, days int) ([]models.DayCount, error) {
	const op = "analytics_service.Trend"

	days = clamp(days, defaultDays, maxDays)
	key := "trend:" + strconv.Itoa(days)

	if v, ok := s.cache.Get(key); ok {
		return v.([]models.DayCount), nil
	}

	since := s.since(days)

	counts, err := s.repo.PageviewsByDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byDay := make(map[time.Time]models.DayCount, len(counts))
	for _, c := range counts {
		byDay[truncateDay(c.Day)] = c
	}

	out := make([]models.DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		c, ok := byDay[day]
		if !ok {
			c = models.DayCount{Day: day}
		}
		c.Day = day
		out = append(out, c)
	}

	s.cache.SetDefault(key, out)

	return out, nil
}

func (s *AnalyticsService) TopPages(ctx context.Context, limit int) ([]models.PageCount, error) {
	const op = "analytics_service.TopPages"

	limit = clamp(limit, defaultTopPages, maxTopPages)
	key := "top:" + strconv.Itoa(limit)

	if v, ok := s.cache.Get(key); ok {
		return v.([]models.PageCount), nil
	}

	pages, err := s.repo.TopPages(ctx, s.since(defaultDays), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.SetDefault(key, pages)

	return pages, nil
}

// since returns midnight UTC of the first day of a window ending today.
func (s *AnalyticsService) since(days int) time.Time {
	return truncateDay(s.now()).AddDate(0, 0, -(days - 1))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, def, max int) int {
	if v < 1 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

func pathOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", models.NewValidationError("url", "must be an absolute URL")
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}
