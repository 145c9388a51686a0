package film

import (
	"errors"
	"net/http"
	"strconv"

	"filmorate/internal/pkg/response"
	"filmorate/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	films := rg.Group("/films")
	{
		films.GET("", h.List)
		films.POST("", h.Create)
		films.PUT("", h.Update)
		films.GET("/popular", h.Popular)
		films.GET("/:id", h.Get)
		films.DELETE("/:id", h.Delete)
		films.PUT("/:id/like/:userId", h.AddLike)
		films.DELETE("/:id/like/:userId", h.RemoveLike)
	}
}

func (h *Handler) List(c *gin.Context) {
	films, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, films)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Create(c *gin.Context) {
	var req FilmRequest
	if !bindFilmRequest(c, &req) {
		return
	}
	created, err := h.svc.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Update(c *gin.Context) {
	var req FilmRequest
	if !bindFilmRequest(c, &req) {
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) AddLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.svc.AddLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) RemoveLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.svc.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) Popular(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "count must be an integer")
		return
	}
	films, err := h.svc.GetPopular(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, films)
}

func bindFilmRequest(c *gin.Context, req *FilmRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_ARGUMENT", "validation failed", errs)
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be an integer")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidArgument):
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
