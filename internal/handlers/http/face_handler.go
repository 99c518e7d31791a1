package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facegate/facegate-backend/internal/domain/errors"
	"github.com/facegate/facegate-backend/internal/domain/valueobjects"
	"github.com/facegate/facegate-backend/internal/handlers/dto"
	"github.com/facegate/facegate-backend/internal/handlers/middleware"
	"github.com/facegate/facegate-backend/internal/services"
)

// FaceHandler lida com requisições HTTP de registro, autenticação e
// verificação de rostos
type FaceHandler struct {
	faceService *services.FaceService
}

// NewFaceHandler cria um novo FaceHandler
func NewFaceHandler(faceService *services.FaceService) *FaceHandler {
	return &FaceHandler{
		faceService: faceService,
	}
}

// Register registra um novo rosto associado a um nome
func (h *FaceHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response := dto.NewErrorResponse("Name is required")
		response.Details = dto.ValidationDetails(err)
		c.JSON(http.StatusBadRequest, response)
		return
	}

	name, err := valueobjects.NewPersonName(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Name is required"))
		return
	}

	image, contentType := middleware.ImageFromContext(c)

	user, err := h.faceService.Register(c.Request.Context(), services.RegisterInput{
		Name:        name,
		Image:       image,
		ContentType: contentType,
	})
	if err != nil {
		h.registerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegisterResponse(user))
}

func (h *FaceHandler) registerError(c *gin.Context, err error) {
	var duplicate *errors.FaceAlreadyRegisteredError

	switch {
	case errs.Is(err, errors.ErrNoFaceDetected):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			"No face detected in the image. Please provide a clear face image."))
	case errs.Is(err, errors.ErrMultipleFaces):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			"Multiple faces detected. Please provide an image with only one face."))
	case errs.As(err, &duplicate):
		response := dto.ConflictResponse{
			Success: false,
			Error:   "This face is already registered",
		}
		if duplicate.Existing != nil {
			response.ExistingUser = &dto.ExistingUserInfo{
				ID:   duplicate.Existing.ID,
				Name: duplicate.Existing.Name,
			}
		}
		c.JSON(http.StatusConflict, response)
	default:
		c.JSON(http.StatusInternalServerError,
			dto.NewInternalErrorResponse("Failed to register face", err))
	}
}

// Authenticate autentica um rosto contra todos os rostos registrados
func (h *FaceHandler) Authenticate(c *gin.Context) {
	var req dto.ThresholdRequest
	if err := c.ShouldBind(&req); err != nil {
		response := dto.AuthErrorResponse{
			Success: false,
			Error:   "Invalid threshold",
			Details: dto.ValidationDetails(err),
		}
		c.JSON(http.StatusBadRequest, response)
		return
	}

	image, _ := middleware.ImageFromContext(c)

	result, err := h.faceService.Authenticate(c.Request.Context(), image, req.Threshold)
	if err != nil {
		h.authenticateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthenticateResponse(result))
}

func (h *FaceHandler) authenticateError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrNoFaceInImage):
		c.JSON(http.StatusBadRequest, dto.AuthErrorResponse{
			Success: false,
			Error:   "No face detected in the provided image",
		})
	case errs.Is(err, errors.ErrFaceNotRecognized):
		c.JSON(http.StatusUnauthorized, dto.AuthErrorResponse{
			Success: false,
			Error:   "Face not recognized. User not registered.",
		})
	case errs.Is(err, errors.ErrUserRecordMissing):
		c.JSON(http.StatusUnauthorized, dto.AuthErrorResponse{
			Success: false,
			Error:   "User record not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.AuthErrorResponse{
			Success: false,
			Error:   "Authentication failed",
			Details: err.Error(),
		})
	}
}

// Verify verifica se um rosto corresponde a um usuário específico
func (h *FaceHandler) Verify(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.ThresholdRequest
	if err := c.ShouldBind(&req); err != nil {
		response := dto.VerifyErrorResponse{
			Success: false,
			Error:   "Invalid threshold",
			Details: dto.ValidationDetails(err),
		}
		c.JSON(http.StatusBadRequest, response)
		return
	}

	image, _ := middleware.ImageFromContext(c)

	result, err := h.faceService.Verify(c.Request.Context(), userID, image, req.Threshold)
	if err != nil {
		h.verifyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVerifyResponse(result))
}

func (h *FaceHandler) verifyError(c *gin.Context, err error) {
	var mismatch *errors.FaceMismatchError

	switch {
	case errs.Is(err, errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.VerifyErrorResponse{
			Success: false,
			Error:   "User not found",
		})
	case errs.Is(err, errors.ErrNoFaceInImage):
		c.JSON(http.StatusBadRequest, dto.VerifyErrorResponse{
			Success: false,
			Error:   "No face detected in the provided image",
		})
	case errs.As(err, &mismatch):
		c.JSON(http.StatusUnauthorized, dto.VerifyErrorResponse{
			Success:  false,
			Error:    "Face does not match the registered user",
			UserID:   mismatch.User.ID,
			UserName: mismatch.User.Name,
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.VerifyErrorResponse{
			Success: false,
			Error:   "Verification failed",
			Details: err.Error(),
		})
	}
}
