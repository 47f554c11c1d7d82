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
)

var adColumns = []string{
	"id", "client_name", "headline", "subtitle", "cta_text", "cta_url",
	"image_url", "mobile_image_url", "video_url", "status", "start_date", "end_date",
	"views", "clicks", "created_at", "updated_at",
}

type AdRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAdRepository(db *pgxpool.Pool) *AdRepo {
	return &AdRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AdRepo) SaveAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	const op = "repository.ad_repository.SaveAd"

	query, args, err := r.sb.Insert("ads").
		Columns(
			"client_name", "headline", "subtitle", "cta_text", "cta_url",
			"image_url", "mobile_image_url", "video_url", "status", "start_date", "end_date",
		).
		Values(
			ad.ClientName, ad.Headline, ad.Subtitle, ad.CTAText, ad.CTAURL,
			ad.ImageURL, ad.MobileImageURL, ad.VideoURL, ad.Status, ad.StartDate, ad.EndDate,
		).
		Suffix("RETURNING " + strings.Join(adColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanAd(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *AdRepo) GetAdByID(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	const op = "repository.ad_repository.GetAdByID"

	query, args, err := r.sb.Select(adColumns...).
		From("ads").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	ad, err := scanAd(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Ad{}, fmt.Errorf("%s: ad: %w", op, storage.ErrNotFound)
		}
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	return ad, nil
}

// ListAds returns ads filtered by status. The "active" filter additionally
// requires the campaign window to contain now.
func (r *AdRepo) ListAds(ctx context.Context, status string, now time.Time) ([]models.Ad, error) {
	const op = "repository.ad_repository.ListAds"

	qb := r.sb.Select(adColumns...).From("ads")

	switch status {
	case "", "all":
	case string(models.AdActive):
		qb = qb.Where(sq.Eq{"status": models.AdActive}).
			Where(sq.Or{sq.Eq{"start_date": nil}, sq.LtOrEq{"start_date": now}}).
			Where(sq.Or{sq.Eq{"end_date": nil}, sq.GtOrEq{"end_date": now}})
	default:
		qb = qb.Where(sq.Eq{"status": status})
	}

	query, args, err := qb.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ads := make([]models.Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ads, nil
}

func (r *AdRepo) UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	const op = "repository.ad_repository.UpdateAd"

	query, args, err := r.sb.Update("ads").
		Set("client_name", ad.ClientName).
		Set("headline", ad.Headline).
		Set("subtitle", ad.Subtitle).
		Set("cta_text", ad.CTAText).
		Set("cta_url", ad.CTAURL).
		Set("image_url", ad.ImageURL).
		Set("mobile_image_url", ad.MobileImageURL).
		Set("video_url", ad.VideoURL).
		Set("status", ad.Status).
		Set("start_date", ad.StartDate).
		Set("end_date", ad.EndDate).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": ad.ID}).
		Suffix("RETURNING " + strings.Join(adColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanAd(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Ad{}, fmt.Errorf("%s: ad: %w", op, storage.ErrNotFound)
		}
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *AdRepo) DeleteAd(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ad_repository.DeleteAd"

	query, args, err := r.sb.Delete("ads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: ad: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *AdRepo) IncrementAdViews(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ad_repository.IncrementAdViews"

	if err := r.increment(ctx, id, "views"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *AdRepo) IncrementAdClicks(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ad_repository.IncrementAdClicks"

	if err := r.increment(ctx, id, "clicks"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *AdRepo) increment(ctx context.Context, id uuid.UUID, column string) error {
	query, args, err := r.sb.Update("ads").
		Set(column, sq.Expr(column+" + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ad: %w", storage.ErrNotFound)
	}

	return nil
}

func scanAd(row pgx.Row) (models.Ad, error) {
	var ad models.Ad

	err := row.Scan(
		&ad.ID,
		&ad.ClientName,
		&ad.Headline,
		&ad.Subtitle,
		&ad.CTAText,
		&ad.CTAURL,
		&ad.ImageURL,
		&ad.MobileImageURL,
		&ad.VideoURL,
		&ad.Status,
		&ad.StartDate,
		&ad.EndDate,
		&ad.Views,
		&ad.Clicks,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)

	return ad, err
}
