package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/facegate/facegate-backend/internal/domain/errors"
	"github.com/facegate/facegate-backend/internal/handlers/dto"
	"github.com/facegate/facegate-backend/internal/services"
)

// UserHandler lida com requisições HTTP de consulta e remoção de usuários
type UserHandler struct {
	faceService *services.FaceService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(faceService *services.FaceService) *UserHandler {
	return &UserHandler{
		faceService: faceService,
	}
}

// ListUsers lista usuários registrados com paginação
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	page, err := h.faceService.ListUsers(c.Request.Context(), limit, skip)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			dto.NewInternalErrorResponse("Failed to retrieve users", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(page))
}

// GetUser busca um usuário por ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.faceService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError,
			dto.NewInternalErrorResponse("Failed to retrieve user", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailResponse(user))
}

// DeleteUser remove um usuário, a entrada no índice facial e a imagem armazenada
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.faceService.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError,
			dto.NewInternalErrorResponse("Failed to delete user", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToDeleteUserResponse(user))
}
