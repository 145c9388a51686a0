package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"filmorate/internal/database"
	"filmorate/internal/modules/film"
	"filmorate/internal/modules/reference"
	"filmorate/internal/modules/user"
	"filmorate/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type apiSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorDetail    `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *apiSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, repository.SeedReferenceData(db))

	filmRepo := repository.NewFilmDBRepository(db)
	userRepo := repository.NewUserDBRepository(db)
	mpaRepo := repository.NewMpaDBRepository(db)
	genreRepo := repository.NewGenreDBRepository(db)

	log := zap.NewNop()
	userHandler := user.NewHandler(user.NewService(userRepo, log))
	filmHandler := film.NewHandler(film.NewService(filmRepo, mpaRepo, genreRepo, userRepo, log))
	referenceHandler := reference.NewHandler(mpaRepo, genreRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	filmHandler.RegisterRoutes(v1)
	userHandler.RegisterRoutes(v1)
	referenceHandler.RegisterRoutes(v1)

	return &apiSuite{router: r, db: db}
}

func (s *apiSuite) makeRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) *envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &env
}

func decodeData(t *testing.T, env *envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type userPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

type filmPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"releaseDate"`
	Duration    int    `json:"duration"`
	Mpa         struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"mpa"`
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Likes []int64 `json:"likes"`
}

func (s *apiSuite) createUser(t *testing.T, login string) userPayload {
	t.Helper()

	w := s.makeRequest(t, "POST", "/api/v1/users", map[string]any{
		"email":    login + "@mail.ru",
		"login":    login,
		"birthday": "1990-05-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u userPayload
	decodeData(t, parseEnvelope(t, w), &u)
	return u
}

func TestUsersAndFriendship(t *testing.T) {
	suite := setupSuite(t)

	var alice, bob, carol userPayload

	t.Run("POST /users defaults blank name to login", func(t *testing.T) {
		alice = suite.createUser(t, "alice")
		assert.Equal(t, "alice", alice.Name)
		assert.Equal(t, "1990-05-15", alice.Birthday)
		require.Greater(t, alice.ID, int64(0))
	})

	t.Run("POST /users rejects bad email", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/users", map[string]any{
			"email": "mail.ru",
			"login": "broken",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		env := parseEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
	})

	t.Run("PUT /users with unknown id", func(t *testing.T) {
		w := suite.makeRequest(t, "PUT", "/api/v1/users", map[string]any{
			"id":    9999,
			"email": "ghost@mail.ru",
			"login": "ghost",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PUT /users/:id/friends/:friendId is symmetric", func(t *testing.T) {
		bob = suite.createUser(t, "bob")

		w := suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/users/%d/friends/%d", alice.ID, bob.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var friends []userPayload
		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/users/%d/friends", alice.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, parseEnvelope(t, w), &friends)
		require.Len(t, friends, 1)
		assert.Equal(t, "bob", friends[0].Login)

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/users/%d/friends", bob.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, parseEnvelope(t, w), &friends)
		require.Len(t, friends, 1)
		assert.Equal(t, "alice", friends[0].Login)
	})

	t.Run("PUT /users/:id/friends/:id rejects self", func(t *testing.T) {
		w := suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/users/%d/friends/%d", alice.ID, alice.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /users/:id/friends/common/:otherId", func(t *testing.T) {
		carol = suite.createUser(t, "carol")
		w := suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/users/%d/friends/%d", alice.ID, carol.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/users/%d/friends/%d", bob.ID, carol.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/users/%d/friends/common/%d", alice.ID, bob.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var common []userPayload
		decodeData(t, parseEnvelope(t, w), &common)
		require.Len(t, common, 1)
		assert.Equal(t, "carol", common[0].Login)
	})

	t.Run("DELETE /users/:id/friends/:friendId severs both sides", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/users/%d/friends/%d", bob.ID, alice.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var friends []userPayload
		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/users/%d/friends", alice.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, parseEnvelope(t, w), &friends)
		require.Len(t, friends, 1)
		assert.Equal(t, "carol", friends[0].Login)
	})
}

func TestFilmsLikesAndPopularity(t *testing.T) {
	suite := setupSuite(t)

	alice := suite.createUser(t, "alice")
	bob := suite.createUser(t, "bob")

	var matrix, clerks filmPayload

	t.Run("POST /films resolves mpa and genres", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/films", map[string]any{
			"name":        "Матрица",
			"description": "Избранный против машин",
			"releaseDate": "1999-03-31",
			"duration":    136,
			"mpa":         map[string]any{"id": 4},
			"genres":      []map[string]any{{"id": 4}, {"id": 6}, {"id": 4}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		decodeData(t, parseEnvelope(t, w), &matrix)
		assert.Equal(t, "R", matrix.Mpa.Name)
		require.Len(t, matrix.Genres, 2)
		assert.Equal(t, "Триллер", matrix.Genres[0].Name)
		assert.Equal(t, "1999-03-31", matrix.ReleaseDate)
		assert.Equal(t, []int64{}, matrix.Likes)
	})

	t.Run("POST /films rejects release date before cinema existed", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/films", map[string]any{
			"name":        "too old",
			"releaseDate": "1890-01-01",
			"duration":    60,
			"mpa":         map[string]any{"id": 1},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /films with unknown genre", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/films", map[string]any{
			"name":        "unknown genre",
			"releaseDate": "2000-01-01",
			"duration":    90,
			"mpa":         map[string]any{"id": 1},
			"genres":      []map[string]any{{"id": 99}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PUT /films/:id/like/:userId", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/films", map[string]any{
			"name":        "Клерки",
			"releaseDate": "1994-10-19",
			"duration":    92,
			"mpa":         map[string]any{"id": 4},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		decodeData(t, parseEnvelope(t, w), &clerks)

		for _, userID := range []int64{alice.ID, bob.ID} {
			w = suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/films/%d/like/%d", clerks.ID, userID), nil)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/films/%d", clerks.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got filmPayload
		decodeData(t, parseEnvelope(t, w), &got)
		assert.Equal(t, []int64{alice.ID, bob.ID}, got.Likes)
	})

	t.Run("PUT /films/:id/like/:userId with unknown user", func(t *testing.T) {
		w := suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/films/%d/like/9999", clerks.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /films/popular orders by like count", func(t *testing.T) {
		w := suite.makeRequest(t, "PUT", fmt.Sprintf("/api/v1/films/%d/like/%d", matrix.ID, alice.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest(t, "GET", "/api/v1/films/popular?count=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var popular []filmPayload
		decodeData(t, parseEnvelope(t, w), &popular)
		require.Len(t, popular, 2)
		assert.Equal(t, clerks.ID, popular[0].ID)
		assert.Equal(t, matrix.ID, popular[1].ID)

		w = suite.makeRequest(t, "GET", "/api/v1/films/popular?count=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, parseEnvelope(t, w), &popular)
		require.Len(t, popular, 1)
		assert.Equal(t, clerks.ID, popular[0].ID)
	})

	t.Run("DELETE /films/:id/like/:userId is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := suite.makeRequest(t, "DELETE",
				fmt.Sprintf("/api/v1/films/%d/like/%d", clerks.ID, bob.ID), nil)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/films/%d", clerks.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got filmPayload
		decodeData(t, parseEnvelope(t, w), &got)
		assert.Equal(t, []int64{alice.ID}, got.Likes)
	})

	t.Run("DELETE /films/:id removes the film", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/films/%d", matrix.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/films/%d", matrix.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/films/%d", matrix.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReferenceData(t *testing.T) {
	suite := setupSuite(t)

	t.Run("GET /mpa", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/mpa", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var ratings []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		decodeData(t, parseEnvelope(t, w), &ratings)
		require.Len(t, ratings, 5)
		assert.Equal(t, "G", ratings[0].Name)
		assert.Equal(t, "NC-17", ratings[4].Name)
	})

	t.Run("GET /mpa/:id", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/mpa/3", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var rating struct {
			Name string `json:"name"`
		}
		decodeData(t, parseEnvelope(t, w), &rating)
		assert.Equal(t, "PG-13", rating.Name)

		w = suite.makeRequest(t, "GET", "/api/v1/mpa/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /genres", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/genres", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var genres []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		decodeData(t, parseEnvelope(t, w), &genres)
		require.Len(t, genres, 6)
		assert.Equal(t, "Комедия", genres[0].Name)
	})

	t.Run("GET /genres/:id", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/genres/6", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var genre struct {
			Name string `json:"name"`
		}
		decodeData(t, parseEnvelope(t, w), &genre)
		assert.Equal(t, "Боевик", genre.Name)

		w = suite.makeRequest(t, "GET", "/api/v1/genres/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
