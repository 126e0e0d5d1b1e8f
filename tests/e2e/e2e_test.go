package e2e

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"moviedeck/internal/api"
	"moviedeck/internal/database"
	"moviedeck/internal/domain"
	"moviedeck/internal/modules/auth"
	jwtsvc "moviedeck/internal/pkg/jwt"
	"moviedeck/internal/pkg/logger"
	"moviedeck/internal/server"
	"moviedeck/internal/storage"
	"moviedeck/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// E2ETestSuite runs the real client state layer against the real backend over
// HTTP: a gin server on an in-memory database, an api.Client pointed at it,
// and the composed store on top.
type E2ETestSuite struct {
	backend *httptest.Server
	local   *storage.Memory
	store   *store.Store
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	srv, err := server.New(db, jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour), logger.Default())
	require.NoError(t, err)

	_, err = server.SeedCatalog(db)
	require.NoError(t, err)

	backend := httptest.NewServer(srv.Router(1000, 1000))
	t.Cleanup(backend.Close)

	local := storage.NewMemory()
	client := api.NewClient(backend.URL+"/api", 5*time.Second, local, logger.Default())

	return &E2ETestSuite{
		backend: backend,
		local:   local,
		store:   store.New(client, local, logger.Default()),
	}
}

// restore builds a second store over the same persisted state, simulating a
// fresh process start.
func (s *E2ETestSuite) restore(t *testing.T) *store.Store {
	t.Helper()
	client := api.NewClient(s.backend.URL+"/api", 5*time.Second, s.local, logger.Default())
	return store.New(client, s.local, logger.Default())
}

func (s *E2ETestSuite) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := s.store.Auth.Register(context.Background(), auth.RegisterRequest{
		Username: username,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestFullUserJourney(t *testing.T) {
	suite := setupTestSuite(t)
	st := suite.store
	ctx := context.Background()

	user := suite.register(t, "alice")
	assert.True(t, st.Auth.Snapshot().IsAuthenticated)

	// search the seeded catalog
	results, err := st.Movies.Search(ctx, "dune", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	dune := results[0]
	assert.Equal(t, "Dune", dune.Title)

	// a title visible in the search results cannot be added again
	_, err = st.UserMovies.Add(ctx, user.ID, domain.CreateMovieData{
		Title: "  DUNE ", Year: 2021, RuntimeMinutes: 155,
	})
	require.Error(t, err)
	assert.Equal(t, "A movie with the same name already exists.", err.Error())

	// a fresh title goes through
	mine, err := st.UserMovies.Add(ctx, user.ID, domain.CreateMovieData{
		Title: "My Festival Film", Year: 2023, RuntimeMinutes: 74,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCustom, mine.Source)

	// favorite the catalog movie and hydrate the favorites list
	require.NoError(t, st.Favorites.Toggle(ctx, user.ID, dune.ID))
	assert.True(t, st.Favorites.IsFavorite(dune.ID))

	favs, err := st.Favorites.Fetch(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, dune.ID, favs[0].ID)
	assert.Equal(t, []string{dune.ID}, suite.local.FavoriteIDs())

	// unfavoriting drops both the ID and the hydrated record
	require.NoError(t, st.Favorites.Toggle(ctx, user.ID, dune.ID))
	assert.False(t, st.Favorites.IsFavorite(dune.ID))
	assert.Empty(t, st.Favorites.Snapshot().FavoriteMovies)
}

func TestEditSyncsSearchCopy(t *testing.T) {
	suite := setupTestSuite(t)
	st := suite.store
	ctx := context.Background()

	user := suite.register(t, "alice")

	mine, err := st.UserMovies.Add(ctx, user.ID, domain.CreateMovieData{
		Title: "Dune Fan Cut", Year: 2022, RuntimeMinutes: 60,
	})
	require.NoError(t, err)

	// the custom movie is not part of the catalog search
	_, err = st.Movies.Search(ctx, "dune fan", 1)
	require.Error(t, err)
	assert.Equal(t, "No movies found", err.Error())
	assert.Empty(t, st.Movies.Snapshot().Movies)

	results, err := st.Movies.Search(ctx, "dune", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = st.UserMovies.Edit(ctx, user.ID, mine.ID, domain.CreateMovieData{
		Title: "Dune Fan Cut Extended", Year: 2022, RuntimeMinutes: 80,
	})
	require.NoError(t, err)

	list := st.UserMovies.Snapshot().UserMovies
	require.Len(t, list, 1)
	assert.Equal(t, "Dune Fan Cut Extended", list[0].Title)

	// the unrelated catalog record in the search results stays untouched
	assert.Equal(t, results, st.Movies.Snapshot().Movies)

	require.NoError(t, st.UserMovies.Delete(ctx, user.ID, mine.ID))
	assert.Empty(t, st.UserMovies.Snapshot().UserMovies)
}

func TestSessionSurvivesRestart(t *testing.T) {
	suite := setupTestSuite(t)
	ctx := context.Background()

	user := suite.register(t, "alice")
	require.NoError(t, suite.store.Favorites.Toggle(ctx, user.ID, "cat-0002"))

	// a fresh store over the same local state picks the session back up
	st := suite.restore(t)
	assert.True(t, st.Auth.Snapshot().IsAuthenticated)
	assert.True(t, st.Favorites.IsFavorite("cat-0002"))

	verified, err := st.Auth.VerifyToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestLogoutClearsPersistedState(t *testing.T) {
	suite := setupTestSuite(t)
	st := suite.store
	ctx := context.Background()

	user := suite.register(t, "alice")
	require.NoError(t, st.Favorites.Toggle(ctx, user.ID, "cat-0001"))

	st.Logout()

	assert.False(t, st.Auth.Snapshot().IsAuthenticated)
	_, ok := suite.local.Token()
	assert.False(t, ok)
	assert.False(t, suite.local.HasFavoriteIDs())

	// without a token, verification fails fast
	_, err := st.Auth.VerifyToken(ctx)
	require.Error(t, err)
	assert.Equal(t, "No token found", err.Error())
}

func TestStaleTokenIsRejected(t *testing.T) {
	suite := setupTestSuite(t)
	ctx := context.Background()

	require.NoError(t, suite.local.SetToken("not-a-real-token"))
	st := suite.restore(t)

	// a persisted token counts as authenticated until the server says no
	assert.True(t, st.Auth.Snapshot().IsAuthenticated)

	_, err := st.Auth.VerifyToken(ctx)
	require.Error(t, err)

	state := st.Auth.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, "Token is invalid", state.Error)
	_, ok := suite.local.Token()
	assert.False(t, ok)
}
