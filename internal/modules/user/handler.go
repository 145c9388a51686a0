package user

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
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.PUT("", h.Update)
		users.GET("/:id", h.Get)
		users.DELETE("/:id", h.Delete)
		users.PUT("/:id/friends/:friendId", h.AddFriend)
		users.DELETE("/:id/friends/:friendId", h.RemoveFriend)
		users.GET("/:id/friends", h.Friends)
		users.GET("/:id/friends/common/:otherId", h.CommonFriends)
	}
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) Create(c *gin.Context) {
	var req UserRequest
	if !bindUserRequest(c, &req) {
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
	var req UserRequest
	if !bindUserRequest(c, &req) {
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

func (h *Handler) AddFriend(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	if err := h.svc.AddFriend(c.Request.Context(), userID, friendID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	if err := h.svc.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) Friends(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	friends, err := h.svc.GetFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, friends)
}

func (h *Handler) CommonFriends(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return
	}
	friends, err := h.svc.GetCommonFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, friends)
}

func bindUserRequest(c *gin.Context, req *UserRequest) bool {
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
