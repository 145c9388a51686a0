// Package reference exposes the read-only MPA rating and genre lookups.
// The data is seeded out of band; there is no write path and therefore no
// service layer, the handler sits straight on the repositories.
package reference

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"filmorate/internal/pkg/response"
	"filmorate/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mpa    repository.MpaRepository
	genres repository.GenreRepository
}

func NewHandler(mpa repository.MpaRepository, genres repository.GenreRepository) *Handler {
	return &Handler{mpa: mpa, genres: genres}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/mpa", h.ListMpa)
	rg.GET("/mpa/:id", h.GetMpa)
	rg.GET("/genres", h.ListGenres)
	rg.GET("/genres/:id", h.GetGenre)
}

func (h *Handler) ListMpa(c *gin.Context) {
	ratings, err := h.mpa.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	response.Success(c, http.StatusOK, ratings)
}

func (h *Handler) GetMpa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rating, err := h.mpa.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("mpa rating with id %d not found", id))
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	response.Success(c, http.StatusOK, rating)
}

func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.genres.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	response.Success(c, http.StatusOK, genres)
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	genre, err := h.genres.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("genre with id %d not found", id))
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	response.Success(c, http.StatusOK, genre)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "id must be an integer")
		return 0, false
	}
	return id, true
}
