package dto

import (
	"time"

	"github.com/facegate/facegate-backend/internal/domain/entities"
	"github.com/facegate/facegate-backend/internal/services"
)

// RegisterRequest representa os campos de formulário do registro
type RegisterRequest struct {
	Name string `form:"name" binding:"required"`
}

// ThresholdRequest representa o campo opcional de limiar de similaridade
type ThresholdRequest struct {
	Threshold float64 `form:"threshold" binding:"omitempty,gte=0,lte=100"`
}

// RegisterResponse é a resposta 201 do registro
type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    RegisterData `json:"data"`
}

// RegisterData são os campos públicos do registro criado
type RegisterData struct {
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	FaceID     string    `json:"faceId"`
	ImageURL   string    `json:"imageUrl"`
	Confidence *float64  `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthenticateResponse é a resposta 200 da autenticação
type AuthenticateResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Authenticated bool             `json:"authenticated"`
	Data          AuthenticateData `json:"data"`
}

// AuthenticateData são os dados do usuário autenticado
type AuthenticateData struct {
	UserID     string  `json:"userId"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
	ImageURL   string  `json:"imageUrl"`
}

// VerifyResponse é a resposta 200 da verificação
type VerifyResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Verified bool       `json:"verified"`
	Data     VerifyData `json:"data"`
}

// VerifyData são os dados da verificação bem-sucedida
type VerifyData struct {
	UserID     string  `json:"userId"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
}

// ToRegisterResponse converte o usuário criado para a resposta do registro
func ToRegisterResponse(user *entities.User) RegisterResponse {
	return RegisterResponse{
		Success: true,
		Message: "Face registered successfully",
		Data: RegisterData{
			UserID:     user.ID,
			Name:       user.Name,
			FaceID:     user.CorrelationID(),
			ImageURL:   user.S3ImageURL,
			Confidence: user.Confidence,
			CreatedAt:  user.CreatedAt,
		},
	}
}

// ToAuthenticateResponse converte um match para a resposta da autenticação
func ToAuthenticateResponse(result *services.MatchResult) AuthenticateResponse {
	return AuthenticateResponse{
		Success:       true,
		Message:       "Authentication successful",
		Authenticated: true,
		Data: AuthenticateData{
			UserID:     result.User.ID,
			Name:       result.User.Name,
			Similarity: result.Similarity,
			Confidence: result.Confidence,
			ImageURL:   result.User.S3ImageURL,
		},
	}
}

// ToVerifyResponse converte um match para a resposta da verificação
func ToVerifyResponse(result *services.MatchResult) VerifyResponse {
	return VerifyResponse{
		Success:  true,
		Message:  "Face verified successfully",
		Verified: true,
		Data: VerifyData{
			UserID:     result.User.ID,
			Name:       result.User.Name,
			Similarity: result.Similarity,
			Confidence: result.Confidence,
		},
	}
}
