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

var childPageColumns = []string{
	"id", "magazine_id", "name", "slug", "description",
	"meta_title", "meta_description", "meta_keywords", "canonical_url", "og_image", "robots_meta",
	"status", "publish_date", "version", "created_at", "updated_at",
}

type ChildPageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewChildPageRepository(db *pgxpool.Pool) *ChildPageRepo {
	return &ChildPageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveChildPage inserts p and, when copyFrom is set, copies that parent's
// blocks into the new page with dense positions, all in one transaction.
func (r *ChildPageRepo) SaveChildPage(ctx context.Context, p models.ChildPage, copyFrom *models.BlockParent) (models.ChildPage, error) {
	const op = "repository.childpage_repository.SaveChildPage"

	var saved models.ChildPage

	err := r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		query, args, err := r.sb.Insert("child_pages").
			Columns(
				"magazine_id", "name", "slug", "description",
				"meta_title", "meta_description", "meta_keywords", "canonical_url", "og_image", "robots_meta",
				"status", "publish_date",
			).
			Values(
				p.ParentMagazineID, p.Name, p.Slug, p.Description,
				p.SEO.MetaTitle, p.SEO.MetaDescription, p.SEO.MetaKeywords, p.SEO.CanonicalURL, p.SEO.OGImage, p.SEO.RobotsMeta,
				p.Status, p.PublishDate,
			).
			Suffix("RETURNING " + strings.Join(childPageColumns, ", ")).
			ToSql()
		if err != nil {
			return err
		}

		saved, err = scanChildPage(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}

		if copyFrom == nil {
			return nil
		}

		copyQuery, copyArgs, err := r.sb.Insert("blocks").
			Columns("parent_type", "parent_id", "type", "position", "visible", "data").
			Select(
				sq.Select().
					Column("?::text", string(models.ParentChildPage)).
					Column("?::uuid", saved.ID).
					Columns("type", "ROW_NUMBER() OVER (ORDER BY position, created_at) - 1", "visible", "data").
					From("blocks").
					Where(sq.Eq{"parent_type": copyFrom.Type, "parent_id": copyFrom.ID}),
			).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, copyQuery, copyArgs...)
		return err
	})
	if err != nil {
		switch {
		case postgresql.IsUniqueViolation(err):
			return models.ChildPage{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		case postgresql.IsForeignKeyViolation(err):
			return models.ChildPage{}, fmt.Errorf("%s: magazine: %w", op, storage.ErrNotFound)
		}
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ChildPageRepo) GetChildPageByID(ctx context.Context, id uuid.UUID) (models.ChildPage, error) {
	const op = "repository.childpage_repository.GetChildPageByID"

	p, err := r.getOne(ctx, sq.Eq{"id": id})
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *ChildPageRepo) GetChildPageBySlug(ctx context.Context, magazineID uuid.UUID, slug string) (models.ChildPage, error) {
	const op = "repository.childpage_repository.GetChildPageBySlug"

	p, err := r.getOne(ctx, sq.Eq{"magazine_id": magazineID, "slug": slug})
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *ChildPageRepo) getOne(ctx context.Context, where sq.Eq) (models.ChildPage, error) {
	query, args, err := r.sb.Select(childPageColumns...).
		From("child_pages").
		Where(where).
		ToSql()
	if err != nil {
		return models.ChildPage{}, err
	}

	p, err := scanChildPage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.ChildPage{}, fmt.Errorf("child page: %w", storage.ErrNotFound)
		}
		return models.ChildPage{}, err
	}

	return p, nil
}

func (r *ChildPageRepo) ListChildPages(ctx context.Context, magazineID uuid.UUID) ([]models.ChildPage, error) {
	const op = "repository.childpage_repository.ListChildPages"

	query, args, err := r.sb.Select(childPageColumns...).
		From("child_pages").
		Where(sq.Eq{"magazine_id": magazineID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	pages := make([]models.ChildPage, 0)
	for rows.Next() {
		p, err := scanChildPage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}

func (r *ChildPageRepo) UpdateChildPage(ctx context.Context, p models.ChildPage) (models.ChildPage, error) {
	const op = "repository.childpage_repository.UpdateChildPage"

	query, args, err := r.sb.Update("child_pages").
		Set("name", p.Name).
		Set("slug", p.Slug).
		Set("description", p.Description).
		Set("meta_title", p.SEO.MetaTitle).
		Set("meta_description", p.SEO.MetaDescription).
		Set("meta_keywords", p.SEO.MetaKeywords).
		Set("canonical_url", p.SEO.CanonicalURL).
		Set("og_image", p.SEO.OGImage).
		Set("robots_meta", p.SEO.RobotsMeta).
		Set("status", p.Status).
		Set("publish_date", p.PublishDate).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + strings.Join(childPageColumns, ", ")).
		ToSql()
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanChildPage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case postgresql.IsNoRows(err):
			return models.ChildPage{}, fmt.Errorf("%s: child page: %w", op, storage.ErrNotFound)
		case postgresql.IsUniqueViolation(err):
			return models.ChildPage{}, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *ChildPageRepo) UpdateChildPageStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error {
	const op = "repository.childpage_repository.UpdateChildPageStatus"

	query, args, err := r.sb.Update("child_pages").
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
		return fmt.Errorf("%s: child page: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ChildPageRepo) DeleteChildPage(ctx context.Context, id uuid.UUID) error {
	const op = "repository.childpage_repository.DeleteChildPage"

	err := r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		blocksQuery, args, err := r.sb.Delete("blocks").
			Where(sq.Eq{"parent_type": models.ParentChildPage, "parent_id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, blocksQuery, args...); err != nil {
			return err
		}

		query, args, err := r.sb.Delete("child_pages").Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("child page: %w", storage.ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanChildPage(row pgx.Row) (models.ChildPage, error) {
	var p models.ChildPage

	err := row.Scan(
		&p.ID,
		&p.ParentMagazineID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.SEO.MetaTitle,
		&p.SEO.MetaDescription,
		&p.SEO.MetaKeywords,
		&p.SEO.CanonicalURL,
		&p.SEO.OGImage,
		&p.SEO.RobotsMeta,
		&p.Status,
		&p.PublishDate,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	return p, err
}
