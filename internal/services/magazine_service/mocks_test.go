package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMagazineRepository struct {
	mock.Mock
}

func (m *MockMagazineRepository) SaveMagazine(ctx context.Context, mag models.Magazine) (models.Magazine, error) {
	args := m.Called(ctx, mag)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineRepository) GetMagazineByID(ctx context.Context, id uuid.UUID) (models.Magazine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineRepository) GetMagazineBySlug(ctx context.Context, slug string) (models.Magazine, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockMagazineRepository) ListMagazines(ctx context.Context, filter models.MagazineFilter) ([]models.Magazine, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Magazine), args.Int(1), args.Error(2)
}

func (m *MockMagazineRepository) UpdateMagazine(ctx context.Context, mag models.Magazine) (models.Magazine, error) {
	args := m.Called(ctx, mag)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineRepository) UpdateMagazineStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error {
	args := m.Called(ctx, id, status, publishDate)
	return args.Error(0)
}

func (m *MockMagazineRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMagazineRepository) DeleteMagazine(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChildPageRepository struct {
	mock.Mock
}

func (m *MockChildPageRepository) SaveChildPage(ctx context.Context, p models.ChildPage, copyFrom *models.BlockParent) (models.ChildPage, error) {
	args := m.Called(ctx, p, copyFrom)
	return args.Get(0).(models.ChildPage), args.Error(1)
}

func (m *MockChildPageRepository) GetChildPageByID(ctx context.Context, id uuid.UUID) (models.ChildPage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ChildPage), args.Error(1)
}

func (m *MockChildPageRepository) GetChildPageBySlug(ctx context.Context, magazineID uuid.UUID, slug string) (models.ChildPage, error) {
	args := m.Called(ctx, magazineID, slug)
	return args.Get(0).(models.ChildPage), args.Error(1)
}

func (m *MockChildPageRepository) ListChildPages(ctx context.Context, magazineID uuid.UUID) ([]models.ChildPage, error) {
	args := m.Called(ctx, magazineID)
	return args.Get(0).([]models.ChildPage), args.Error(1)
}

func (m *MockChildPageRepository) UpdateChildPage(ctx context.Context, p models.ChildPage) (models.ChildPage, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.ChildPage), args.Error(1)
}

func (m *MockChildPageRepository) UpdateChildPageStatus(ctx context.Context, id uuid.UUID, status models.Status, publishDate *time.Time) error {
	args := m.Called(ctx, id, status, publishDate)
	return args.Error(0)
}

func (m *MockChildPageRepository) DeleteChildPage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memBlockRepo keeps block sequences in memory with the same position rules
// as the postgres repository.
type memBlockRepo struct {
	mu     sync.Mutex
	blocks map[uuid.UUID]models.Block
}

func newMemBlockRepo() *memBlockRepo {
	return &memBlockRepo{blocks: make(map[uuid.UUID]models.Block)}
}

func (r *memBlockRepo) ListBlocks(_ context.Context, parent models.BlockParent) ([]models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(parent), nil
}

func (r *memBlockRepo) list(parent models.BlockParent) []models.Block {
	out := make([]models.Block, 0)
	for _, b := range r.blocks {
		if b.Parent() == parent {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (r *memBlockRepo) GetBlock(_ context.Context, id uuid.UUID) (models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blocks[id]
	if !ok {
		return models.Block{}, fmt.Errorf("block %s: %w", id, storage.ErrNotFound)
	}
	return b, nil
}

func (r *memBlockRepo) AddBlock(_ context.Context, b models.Block) (models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 0
	for _, existing := range r.list(b.Parent()) {
		if existing.Position >= next {
			next = existing.Position + 1
		}
	}

	b.ID = uuid.New()
	b.Position = next
	r.blocks[b.ID] = b
	return b, nil
}

func (r *memBlockRepo) UpdateBlock(_ context.Context, b models.Block) (models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[b.ID]; !ok {
		return models.Block{}, storage.ErrNotFound
	}
	r.blocks[b.ID] = b
	return b, nil
}

func (r *memBlockRepo) ToggleVisibility(_ context.Context, parent models.BlockParent, id uuid.UUID) (models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blocks[id]
	if !ok || b.Parent() != parent {
		return models.Block{}, storage.ErrNotFound
	}
	b.Visible = !b.Visible
	r.blocks[id] = b
	return b, nil
}

func (r *memBlockRepo) DeleteBlock(_ context.Context, parent models.BlockParent, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blocks[id]
	if !ok || b.Parent() != parent {
		return storage.ErrNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *memBlockRepo) Reorder(_ context.Context, parent models.BlockParent, ids []uuid.UUID) ([]models.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.list(parent)
	if len(ids) != len(current) {
		return nil, models.NewValidationError("ids", "must list every block exactly once")
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		b, ok := r.blocks[id]
		if !ok || b.Parent() != parent {
			return nil, models.NewValidationError("ids", "must list every block exactly once")
		}
		if _, dup := seen[id]; dup {
			return nil, models.NewValidationError("ids", "must list every block exactly once")
		}
		seen[id] = struct{}{}
	}

	for i, id := range ids {
		b := r.blocks[id]
		b.Position = i
		r.blocks[id] = b
	}
	return r.list(parent), nil
}
