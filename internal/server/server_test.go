package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"moviedeck/internal/database"
	"moviedeck/internal/domain"
	jwtsvc "moviedeck/internal/pkg/jwt"
	"moviedeck/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	srv, err := New(db, jwtsvc.New("test-secret", time.Hour), logger.Default())
	require.NoError(t, err)

	_, err = SeedCatalog(db)
	require.NoError(t, err)

	return srv, srv.Router(1000, 1000)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type sessionResponse struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn string      `json:"expiresIn"`
}

func registerUser(t *testing.T, r *gin.Engine, username string) sessionResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var session sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session
}

func errorField(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestRegister_DuplicateUsername(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already taken", errorField(t, w))
}

func TestLogin_ByUsernameAndEmail(t *testing.T) {
	_, r := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, login := range []string{"alice", "alice@example.com", "ALICE@EXAMPLE.COM"} {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
			"login": login, "password": "secret123",
		})
		assert.Equal(t, http.StatusOK, w.Code, "login %q", login)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"login": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errorField(t, w))
}

func TestVerify(t *testing.T) {
	_, r := newTestServer(t)
	session := registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Valid bool        `json:"valid"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Valid)
	assert.Equal(t, "alice", body.User.Username)

	w = doJSON(t, r, http.MethodPost, "/api/auth/verify", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is invalid", errorField(t, w))
}

func TestSearch_SubstringCaseInsensitive(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/movies/search", "", gin.H{"query": "dUnE"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []domain.Movie `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Dune", body.Items[0].Title)
	assert.Equal(t, domain.SourceCatalog, body.Items[0].Source)

	// an empty result is a valid empty list, not an error
	w = doJSON(t, r, http.MethodPost, "/api/movies/search", "", gin.H{"query": "zzzz"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}

func TestUserMovies_RequireAuthAndScope(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodGet, "/api/users/"+alice.User.ID+"/movies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// bob's token must not open alice's collection
	w = doJSON(t, r, http.MethodGet, "/api/users/"+alice.User.ID+"/movies", bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserMovies_CRUD(t *testing.T) {
	_, r := newTestServer(t)
	session := registerUser(t, r, "alice")
	base := "/api/users/" + session.User.ID + "/movies"

	w := doJSON(t, r, http.MethodPost, base, session.Token, gin.H{
		"title": "My Film", "year": 2023, "runtimeMinutes": 90,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.SourceCustom, created.Source)

	w = doJSON(t, r, http.MethodPost, base, session.Token, gin.H{
		"title": "  my film ", "year": 2024, "runtimeMinutes": 100,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A movie with the same name already exists.", errorField(t, w))

	w = doJSON(t, r, http.MethodPut, base+"/"+created.ID, session.Token, gin.H{
		"title": "My Film", "year": 2024, "runtimeMinutes": 95,
	})
	require.Equal(t, http.StatusOK, w.Code, "same title on the edited record is allowed")
	var updated domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 2024, updated.Year)

	w = doJSON(t, r, http.MethodGet, base, session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = doJSON(t, r, http.MethodDelete, base+"/"+created.ID, session.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, base+"/"+created.ID, session.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites_ToggleAndList(t *testing.T) {
	_, r := newTestServer(t)
	session := registerUser(t, r, "alice")
	base := "/api/users/" + session.User.ID + "/movies"

	fav := func(movieID string, isFavorite bool) *httptest.ResponseRecorder {
		return doJSON(t, r, http.MethodPut, fmt.Sprintf("%s/%s/favorite", base, movieID),
			session.Token, gin.H{"isFavorite": isFavorite})
	}

	w := fav("cat-0004", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// setting the same state twice stays idempotent
	w = fav("cat-0004", true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"?favorites=true", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favs []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, "Dune", favs[0].Title)

	w = fav("cat-0004", false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"?favorites=true", session.Token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	assert.Empty(t, favs)

	w = fav("nope", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMovie_RemovesFavorite(t *testing.T) {
	_, r := newTestServer(t)
	session := registerUser(t, r, "alice")
	base := "/api/users/" + session.User.ID + "/movies"

	w := doJSON(t, r, http.MethodPost, base, session.Token, gin.H{
		"title": "My Film", "year": 2023, "runtimeMinutes": 90,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, base+"/"+created.ID+"/favorite", session.Token, gin.H{"isFavorite": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, base+"/"+created.ID, session.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"?favorites=true", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favs []domain.Movie
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	assert.Empty(t, favs)
}
