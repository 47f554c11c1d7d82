package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"
	redisapp "magazine_cms/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// BlockTypesKey is the hash holding custom block type definitions as id -> JSON.
const BlockTypesKey = "blocktypes:custom"

// replaceIfPresent overwrites a hash field only when it already exists.
// Returns 1 on write, 0 when the field is missing.
var replaceIfPresent = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
return 1
`)

type RedisBlockTypeRepo struct {
	client *redisapp.Client
}

func NewRedisBlockTypeRepo(client *redisapp.Client) *RedisBlockTypeRepo {
	return &RedisBlockTypeRepo{client: client}
}

// List returns the custom definitions in creation order.
func (r *RedisBlockTypeRepo) List(ctx context.Context) ([]models.BlockTypeDefinition, error) {
	const op = "repository.blocktype_repository.List"

	raw, err := r.client.HGetAll(ctx, BlockTypesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defs := make([]models.BlockTypeDefinition, 0, len(raw))
	for id, payload := range raw {
		def, err := decodeBlockType(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: decode %q: %w", op, id, err)
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool {
		ci, cj := defs[i].CreatedAt, defs[j].CreatedAt
		if ci != nil && cj != nil && !ci.Equal(*cj) {
			return ci.Before(*cj)
		}
		return defs[i].ID < defs[j].ID
	})

	return defs, nil
}

func (r *RedisBlockTypeRepo) Get(ctx context.Context, id string) (models.BlockTypeDefinition, error) {
	const op = "repository.blocktype_repository.Get"

	payload, err := r.client.HGet(ctx, BlockTypesKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.BlockTypeDefinition{}, fmt.Errorf("%s: block type %q: %w", op, id, storage.ErrNotFound)
		}
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	def, err := decodeBlockType(payload)
	if err != nil {
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	return def, nil
}

func (r *RedisBlockTypeRepo) Exists(ctx context.Context, id string) (bool, error) {
	const op = "repository.blocktype_repository.Exists"

	ok, err := r.client.HExists(ctx, BlockTypesKey, id).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// Create stores def only if its id is still free; a taken id yields ErrConflict.
func (r *RedisBlockTypeRepo) Create(ctx context.Context, def models.BlockTypeDefinition) error {
	const op = "repository.blocktype_repository.Create"

	payload, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ok, err := r.client.HSetNX(ctx, BlockTypesKey, def.ID, string(payload)).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: block type %q: %w", op, def.ID, storage.ErrConflict)
	}

	return nil
}

func (r *RedisBlockTypeRepo) Update(ctx context.Context, def models.BlockTypeDefinition) error {
	const op = "repository.blocktype_repository.Update"

	payload, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	written, err := replaceIfPresent.Run(ctx, r.client, []string{BlockTypesKey}, def.ID, string(payload)).Int()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if written == 0 {
		return fmt.Errorf("%s: block type %q: %w", op, def.ID, storage.ErrNotFound)
	}

	return nil
}

func (r *RedisBlockTypeRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.blocktype_repository.Delete"

	n, err := r.client.HDel(ctx, BlockTypesKey, id).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: block type %q: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func decodeBlockType(payload string) (models.BlockTypeDefinition, error) {
	var def models.BlockTypeDefinition
	if err := json.Unmarshal([]byte(payload), &def); err != nil {
		return models.BlockTypeDefinition{}, err
	}
	def.IsCustom = true
	if def.DefaultData == nil {
		def.DefaultData = map[string]any{}
	}
	return def, nil
}
