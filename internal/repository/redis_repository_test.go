package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	redisapp "magazine_cms/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return redisapp.Wrap(db), mock
}

func setupTokenRepo() (*repository.RedisTokenRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisTokenRepo(db), mock
}

func setupBlockTypeRepo() (*repository.RedisBlockTypeRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisBlockTypeRepo(db), mock
}

func TestSaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := "0f8fad5b-d9cb-469f-a165-70867728950e"
	token := "test_token"
	exp := 24 * time.Hour

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey(userID, token), "1", exp).SetVal("OK")
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey(userID, token), "1", exp).SetErr(redis.ErrClosed)
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := "user123"
	token := "test_token"

	t.Run("token exists", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).SetVal("1")
		exists, err := repo.GetRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("token not exists", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).RedisNil()
		exists, err := repo.GetRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey(userID, token)).SetErr(redis.ErrClosed)
		_, err := repo.GetRefreshToken(ctx, userID, token)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestDeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := "user123"
	token := "test_token"

	t.Run("successful delete", func(t *testing.T) {
		mock.ExpectDel(refreshTokenKey(userID, token)).SetVal(1)
		err := repo.DeleteRefreshToken(ctx, userID, token)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectDel(refreshTokenKey(userID, token)).SetErr(redis.ErrClosed)
		err := repo.DeleteRefreshToken(ctx, userID, token)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestDeleteAllUserTokens(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	userID := "user123"
	pattern := refreshTokenKey(userID, "*")

	t.Run("successful delete all", func(t *testing.T) {
		mock.ExpectScan(0, pattern, 100).SetVal([]string{"token1", "token2"}, 0)
		mock.ExpectDel("token1", "token2").SetVal(2)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		mock.ExpectScan(0, pattern, 100).SetVal([]string{}, 0)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("scan error", func(t *testing.T) {
		mock.ExpectScan(0, pattern, 100).SetErr(redis.ErrClosed)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	t.Run("del error", func(t *testing.T) {
		mock.ExpectScan(0, pattern, 100).SetVal([]string{"token1"}, 0)
		mock.ExpectDel("token1").SetErr(redis.ErrClosed)
		err := repo.DeleteAllUserTokens(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func refreshTokenKey(userID, token string) string {
	return "refresh:" + userID + ":" + token
}

func customBlockType(id string, created time.Time) models.BlockTypeDefinition {
	return models.BlockTypeDefinition{
		ID:       id,
		Name:     "Promo " + id,
		Category: "custom",
		Fields: []models.FieldDefinition{
			{ID: "title", Label: "Titolo", Type: models.FieldText, Required: true},
		},
		DefaultData: map[string]any{"title": ""},
		IsCustom:    true,
		CreatedAt:   &created,
	}
}

func encode(t *testing.T, def models.BlockTypeDefinition) string {
	t.Helper()
	payload, err := json.Marshal(def)
	require.NoError(t, err)
	return string(payload)
}

func TestRedisBlockTypeRepo_Create(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupBlockTypeRepo()
	def := customBlockType("promo", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	t.Run("free id", func(t *testing.T) {
		mock.ExpectHSetNX(repository.BlockTypesKey, "promo", encode(t, def)).SetVal(true)
		assert.NoError(t, repo.Create(ctx, def))
	})

	t.Run("taken id", func(t *testing.T) {
		mock.ExpectHSetNX(repository.BlockTypesKey, "promo", encode(t, def)).SetVal(false)
		err := repo.Create(ctx, def)
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectHSetNX(repository.BlockTypesKey, "promo", encode(t, def)).SetErr(redis.ErrClosed)
		err := repo.Create(ctx, def)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBlockTypeRepo_Get(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupBlockTypeRepo()
	def := customBlockType("promo", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	t.Run("found", func(t *testing.T) {
		mock.ExpectHGet(repository.BlockTypesKey, "promo").SetVal(encode(t, def))
		got, err := repo.Get(ctx, "promo")
		require.NoError(t, err)
		assert.Equal(t, "Promo promo", got.Name)
		assert.True(t, got.IsCustom)
		assert.Equal(t, map[string]any{"title": ""}, got.DefaultData)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectHGet(repository.BlockTypesKey, "ghost").RedisNil()
		_, err := repo.Get(ctx, "ghost")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		mock.ExpectHExists(repository.BlockTypesKey, "promo").SetVal(true)
		ok, err := repo.Exists(ctx, "promo")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRedisBlockTypeRepo_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupBlockTypeRepo()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	older := customBlockType("zeta", base)
	newer := customBlockType("alpha", base.Add(time.Hour))
	sameTime := customBlockType("beta", base.Add(time.Hour))

	mock.ExpectHGetAll(repository.BlockTypesKey).SetVal(map[string]string{
		"alpha": encode(t, newer),
		"beta":  encode(t, sameTime),
		"zeta":  encode(t, older),
	})

	defs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, []string{defs[0].ID, defs[1].ID, defs[2].ID})

	t.Run("corrupt payload", func(t *testing.T) {
		mock.ExpectHGetAll(repository.BlockTypesKey).SetVal(map[string]string{"bad": "{"})
		_, err := repo.List(ctx)
		assert.Error(t, err)
	})
}

func TestRedisBlockTypeRepo_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupBlockTypeRepo()
	def := customBlockType("promo", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	t.Run("update existing", func(t *testing.T) {
		mock.ExpectEvalSha(repository.ReplaceIfPresentHash, []string{repository.BlockTypesKey}, "promo", encode(t, def)).SetVal(int64(1))
		assert.NoError(t, repo.Update(ctx, def))
	})

	t.Run("update missing", func(t *testing.T) {
		mock.ExpectEvalSha(repository.ReplaceIfPresentHash, []string{repository.BlockTypesKey}, "promo", encode(t, def)).SetVal(int64(0))
		err := repo.Update(ctx, def)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete existing", func(t *testing.T) {
		mock.ExpectHDel(repository.BlockTypesKey, "promo").SetVal(1)
		assert.NoError(t, repo.Delete(ctx, "promo"))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock.ExpectHDel(repository.BlockTypesKey, "promo").SetVal(0)
		err := repo.Delete(ctx, "promo")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
