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

var magazineColumns = []string{
	"id", "name", "slug", "edition", "edition_number", "description", "cover_image",
	"meta_title", "meta_description", "meta_keywords", "canonical_url", "og_image", "robots_meta",
	"status", "featured", "publish_date", "views", "version", "created_at", "updated_at",
}

type MagazineRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMagazineRepository(db *pgxpool.Pool) *MagazineRepo {
	return &MagazineRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MagazineRepo) SaveMagazine(ctx context.Context, m models.Magazine) (models.Magazine, error) {
	const op = "repository.magazine_repository.SaveMagazine"

	query, args, err := r.sb.Insert("magazines").
		Columns(
			"name", "slug", "edition", "edition_number", "description", "cover_image",
			"meta_title", "meta_description", "meta_keywords", "canonical_url", "og_image", "robots_meta",
			"status", "featured", "publish_date",
		).
		Values(
			m.Name, m.Slug, m.Edition, m.EditionNumber, m.Description, m.CoverImage,
			m.SEO.MetaTitle, m.SEO.MetaDescription, m.SEO.MetaKeywords, m.SEO.CanonicalURL, m.SEO.OGImage, m.SEO.RobotsMeta,
			m.Status, m.Featured, m.PublishDate,
		).
		Suffix("RETURNING " + strings.Join(magazineColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanMagazine(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return models.Magazine{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *MagazineRepo) GetMagazineByID(ctx context.Context, id uuid.UUID) (models.Magazine, error) {
	const op = "repository.magazine_repository.GetMagazineByID"

	m, err := r.getOne(ctx, sq.Eq{"id": id})
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (r *MagazineRepo) GetMagazineBySlug(ctx context.Context, slug string) (models.Magazine, error) {
	const op = "repository.magazine_repository.GetMagazineBySlug"

	m, err := r.getOne(ctx, sq.Eq{"slug": slug})
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (r *MagazineRepo) getOne(ctx context.Context, where sq.Eq) (models.Magazine, error) {
	query, args, err := r.sb.Select(magazineColumns...).
		From("magazines").
		Where(where).
		ToSql()
	if err != nil {
		return models.Magazine{}, err
	}

	m, err := scanMagazine(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Magazine{}, fmt.Errorf("magazine: %w", storage.ErrNotFound)
		}
		return models.Magazine{}, err
	}

	return m, nil
}

func (r *MagazineRepo) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	const op = "repository.magazine_repository.SlugExists"

	builder := r.sb.Select("1").From("magazines").Where(sq.Eq{"slug": slug})
	if exclude != uuid.Nil {
		builder = builder.Where(sq.NotEq{"id": exclude})
	}

	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *MagazineRepo) ListMagazines(ctx context.Context, filter models.MagazineFilter) ([]models.Magazine, int, error) {
	const op = "repository.magazine_repository.ListMagazines"

	page, perPage := normalizePage(filter.Page, filter.PerPage)

	where := sq.And{}
	switch filter.Status {
	case "", "all":
	case string(models.StatusDraft), string(models.StatusPublished), string(models.StatusArchived):
		where = append(where, sq.Eq{"status": filter.Status})
	default:
		return nil, 0, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "invalid status filter '"+filter.Status+"'"))
	}
	if filter.Featured != nil {
		where = append(where, sq.Eq{"featured": *filter.Featured})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, sq.Or{sq.ILike{"name": like}, sq.ILike{"edition": like}})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("magazines").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(magazineColumns...).
		From("magazines").
		Where(where).
		OrderBy("publish_date DESC NULLS LAST", "created_at DESC").
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

	magazines := make([]models.Magazine, 0, perPage)
	for rows.Next() {
		m, err := scanMagazine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		magazines = append(magazines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return magazines, total, nil
}

// UpdateMagazine overwrites the editable columns and bumps the version.
func (r *MagazineRepo) UpdateMagazine(ctx context.Context, m models.Magazine) (models.Magazine, error) {
	const op = "repository.magazine_repository.UpdateMagazine"

	query, args, err := r.sb.Update("magazines").
		Set("name", m.Name).
		Set("slug", m.Slug).
		Set("edition", m.Edition).
		Set("edition_number", m.EditionNumber).
		Set("description", m.Description).
		Set("cover_image", m.CoverImage).
		Set("meta_title", m.SEO.MetaTitle).
		Set("meta_description", m.SEO.MetaDescription).
		Set("meta_keywords", m.SEO.MetaKeywords).
		Set("canonical_url", m.SEO.CanonicalURL).
		Set("og_image", m.SEO.OGImage).
		Set("robots_meta", m.SEO.RobotsMeta).
		Set("status", m.Status).
		Set("featured", m.Featured).
		Set("publish_date", m.PublishDate).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": m.ID}).
		Suffix("RETURNING " + strings.Join(magazineColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanMagazine(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case postgresql.IsNoRows(err):
			return models.Magazine{}, fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
		case postgresql.IsUniqueViolation(err):
			return models.Magazine{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *MagazineRepo) UpdateMagazineStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error {
	const op = "repository.magazine_repository.UpdateMagazineStatus"

	query, args, err := r.sb.Update("magazines").
		Set("status", status).
		Set("publish_date", publishDate).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *MagazineRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	const op = "repository.magazine_repository.IncrementViews"

	query, args, err := r.sb.Update("magazines").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteMagazine removes the magazine, its child pages and every block owned
// by either, in one transaction.
func (r *MagazineRepo) DeleteMagazine(ctx context.Context, id uuid.UUID) error {
	const op = "repository.magazine_repository.DeleteMagazine"

	err := r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		pageBlocks, args, err := r.sb.Delete("blocks").
			Where(sq.Eq{"parent_type": models.ParentChildPage}).
			Where(sq.Expr("parent_id IN (SELECT id FROM child_pages WHERE magazine_id = ?)", id)).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, pageBlocks, args...); err != nil {
			return err
		}

		ownBlocks, args, err := r.sb.Delete("blocks").
			Where(sq.Eq{"parent_type": models.ParentMagazine, "parent_id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, ownBlocks, args...); err != nil {
			return err
		}

		// child_pages rows go with the magazine through ON DELETE CASCADE.
		query, args, err := r.sb.Delete("magazines").Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("magazine: %w", storage.ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanMagazine(row pgx.Row) (models.Magazine, error) {
	var m models.Magazine

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Slug,
		&m.Edition,
		&m.EditionNumber,
		&m.Description,
		&m.CoverImage,
		&m.SEO.MetaTitle,
		&m.SEO.MetaDescription,
		&m.SEO.MetaKeywords,
		&m.SEO.CanonicalURL,
		&m.SEO.OGImage,
		&m.SEO.RobotsMeta,
		&m.Status,
		&m.Featured,
		&m.PublishDate,
		&m.Views,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	return m, err
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}
