package repository

import (
	"fmt"
	"testing"
	"time"

	authdomain "calmirror-backend/internal/auth/domain"
	authdto "calmirror-backend/internal/auth/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}))
	return NewUserRepository(db)
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Upsert(&authdomain.User{
		Email:        "a@example.com",
		Name:         "Alice",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Repeat login without a fresh refresh token: identity fields update,
	// the stored refresh token survives.
	updated, err := repo.Upsert(&authdomain.User{
		Email:       "a@example.com",
		Name:        "Alice Renamed",
		AccessToken: "at-2",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, "at-2", updated.AccessToken)
	assert.Equal(t, "rt-1", updated.RefreshToken)
}

func TestUpdateTokensIsPartial(t *testing.T) {
	repo := newTestRepo(t)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	created, err := repo.Upsert(&authdomain.User{
		Email:        "b@example.com",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		TokenExpiry:  &expiry,
	})
	require.NoError(t, err)

	// Rotation without a refresh token or expiry: only the access token
	// changes.
	require.NoError(t, repo.UpdateTokens(created.ID, &authdto.TokenUpdate{AccessToken: "at-2"}))

	reloaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "at-2", reloaded.AccessToken)
	assert.Equal(t, "rt-1", reloaded.RefreshToken)
	require.NotNil(t, reloaded.TokenExpiry)

	newExpiry := expiry.Add(time.Hour)
	require.NoError(t, repo.UpdateTokens(created.ID, &authdto.TokenUpdate{
		AccessToken:  "at-3",
		RefreshToken: "rt-2",
		TokenExpiry:  &newExpiry,
	}))

	reloaded, err = repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rt-2", reloaded.RefreshToken)
}

func TestFindMissingUserReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	user, err := repo.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindByEmail("nope@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}
