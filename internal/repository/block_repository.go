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

var blockColumns = []string{
	"id", "parent_type", "parent_id", "type", "position", "visible", "data", "created_at", "updated_at",
}

var parentTables = map[models.ParentType]string{
	models.ParentMagazine:  "magazines",
	models.ParentChildPage: "child_pages",
}

type BlockRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBlockRepository(db *pgxpool.Pool) *BlockRepo {
	return &BlockRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BlockRepo) ListBlocks(ctx context.Context, parent models.BlockParent) ([]models.Block, error) {
	const op = "repository.block_repository.ListBlocks"

	blocks, err := r.listBlocks(ctx, r.db, parent, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}

func (r *BlockRepo) listBlocks(ctx context.Context, q querier, parent models.BlockParent, forUpdate bool) ([]models.Block, error) {
	builder := r.sb.Select(blockColumns...).
		From("blocks").
		Where(sq.Eq{"parent_type": parent.Type, "parent_id": parent.ID}).
		OrderBy("position", "created_at")
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]models.Block, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	return blocks, rows.Err()
}

func (r *BlockRepo) GetBlock(ctx context.Context, id uuid.UUID) (models.Block, error) {
	const op = "repository.block_repository.GetBlock"

	query, args, err := r.sb.Select(blockColumns...).
		From("blocks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	b, err := scanBlock(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Block{}, fmt.Errorf("%s: block: %w", op, storage.ErrNotFound)
		}
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// AddBlock appends b at the end of its parent's sequence. The parent row is
// locked so concurrent appends to the same parent get distinct positions.
func (r *BlockRepo) AddBlock(ctx context.Context, b models.Block) (models.Block, error) {
	const op = "repository.block_repository.AddBlock"

	var saved models.Block

	err := r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if err := r.lockParent(ctx, tx, b.Parent()); err != nil {
			return err
		}

		maxQuery, maxArgs, err := r.sb.Select("COALESCE(MAX(position) + 1, 0)").
			From("blocks").
			Where(sq.Eq{"parent_type": b.ParentType, "parent_id": b.ParentID}).
			ToSql()
		if err != nil {
			return err
		}

		var position int
		if err := tx.QueryRow(ctx, maxQuery, maxArgs...).Scan(&position); err != nil {
			return err
		}

		query, args, err := r.sb.Insert("blocks").
			Columns("parent_type", "parent_id", "type", "position", "visible", "data").
			Values(b.ParentType, b.ParentID, b.Type, position, b.Visible, b.Data).
			Suffix("RETURNING " + strings.Join(blockColumns, ", ")).
			ToSql()
		if err != nil {
			return err
		}

		saved, err = scanBlock(tx.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// UpdateBlock stores new data and visibility; type and position are kept.
func (r *BlockRepo) UpdateBlock(ctx context.Context, b models.Block) (models.Block, error) {
	const op = "repository.block_repository.UpdateBlock"

	query, args, err := r.sb.Update("blocks").
		Set("data", b.Data).
		Set("visible", b.Visible).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": b.ID}).
		Suffix("RETURNING " + strings.Join(blockColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanBlock(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Block{}, fmt.Errorf("%s: block: %w", op, storage.ErrNotFound)
		}
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *BlockRepo) ToggleVisibility(ctx context.Context, parent models.BlockParent, id uuid.UUID) (models.Block, error) {
	const op = "repository.block_repository.ToggleVisibility"

	query, args, err := r.sb.Update("blocks").
		Set("visible", sq.Expr("NOT visible")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "parent_type": parent.Type, "parent_id": parent.ID}).
		Suffix("RETURNING " + strings.Join(blockColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	b, err := scanBlock(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsNoRows(err) {
			return models.Block{}, fmt.Errorf("%s: block: %w", op, storage.ErrNotFound)
		}
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// DeleteBlock removes one block. Remaining positions keep their gaps until
// the next reorder.
func (r *BlockRepo) DeleteBlock(ctx context.Context, parent models.BlockParent, id uuid.UUID) error {
	const op = "repository.block_repository.DeleteBlock"

	query, args, err := r.sb.Delete("blocks").
		Where(sq.Eq{"id": id, "parent_type": parent.Type, "parent_id": parent.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: block: %w", op, storage.ErrNotFound)
	}

	return nil
}

// Reorder assigns position = index to every block of parent. ids must be a
// permutation of the parent's current block ids, otherwise a
// *models.ValidationError is returned and nothing changes.
func (r *BlockRepo) Reorder(ctx context.Context, parent models.BlockParent, ids []uuid.UUID) ([]models.Block, error) {
	const op = "repository.block_repository.Reorder"

	var result []models.Block

	err := r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if err := r.lockParent(ctx, tx, parent); err != nil {
			return err
		}

		current, err := r.listBlocks(ctx, tx, parent, true)
		if err != nil {
			return err
		}

		if err := checkPermutation(current, ids); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i, id := range ids {
			query, args, err := r.sb.Update("blocks").
				Set("position", i).
				Set("updated_at", now).
				Where(sq.Eq{"id": id}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return err
			}
		}

		result, err = r.listBlocks(ctx, tx, parent, false)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func checkPermutation(current []models.Block, ids []uuid.UUID) error {
	ve := &models.ValidationError{}

	if len(ids) != len(current) {
		ve.Add("ids", fmt.Sprintf("expected %d block ids, got %d", len(current), len(ids)))
	}

	known := make(map[uuid.UUID]bool, len(current))
	for _, b := range current {
		known[b.ID] = false
	}

	for i, id := range ids {
		seen, ok := known[id]
		switch {
		case !ok:
			ve.Add(fmt.Sprintf("ids[%d]", i), "block "+id.String()+" does not belong to this parent")
		case seen:
			ve.Add(fmt.Sprintf("ids[%d]", i), "duplicate block "+id.String())
		default:
			known[id] = true
		}
	}

	return ve.OrNil()
}

// lockParent takes a row lock on the owning document, serialising appends and
// reorders of one sequence. It fails with storage.ErrNotFound if the parent
// does not exist.
func (r *BlockRepo) lockParent(ctx context.Context, tx pgx.Tx, parent models.BlockParent) error {
	table, ok := parentTables[parent.Type]
	if !ok {
		return fmt.Errorf("unknown parent type %q", parent.Type)
	}

	query, args, err := r.sb.Select("id").
		From(table).
		Where(sq.Eq{"id": parent.ID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return err
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if postgresql.IsNoRows(err) {
			return fmt.Errorf("%s: %w", parent.Type, storage.ErrNotFound)
		}
		return err
	}

	return nil
}

func scanBlock(row pgx.Row) (models.Block, error) {
	var b models.Block

	err := row.Scan(
		&b.ID,
		&b.ParentType,
		&b.ParentID,
		&b.Type,
		&b.Position,
		&b.Visible,
		&b.Data,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if b.Data == nil {
		b.Data = map[string]any{}
	}

	return b, err
}
