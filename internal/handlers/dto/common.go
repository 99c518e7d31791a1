package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse é o envelope padrão de erro da API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthErrorResponse é o envelope de erro de autenticação, carregando o
// flag authenticated explícito
type AuthErrorResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error"`
	Authenticated bool   `json:"authenticated"`
	Details       string `json:"details,omitempty"`
}

// VerifyErrorResponse é o envelope de erro de verificação. Em mismatch,
// a identidade alvo acompanha a resposta para contexto.
type VerifyErrorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Verified bool   `json:"verified"`
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Details  string `json:"details,omitempty"`
}

// ConflictResponse é o envelope do 409 de rosto já registrado
type ConflictResponse struct {
	Success      bool              `json:"success"`
	Error        string            `json:"error"`
	ExistingUser *ExistingUserInfo `json:"existingUser"`
}

// ExistingUserInfo identifica o usuário já dono do rosto duplicado
type ExistingUserInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewErrorResponse cria um envelope de erro simples
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// NewInternalErrorResponse cria um envelope 500 com o detalhe do erro
func NewInternalErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{Success: false, Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

// ValidationDetails extrai uma descrição legível de erros de binding.
// Erros do validator viram "campo: regra"; os demais mantêm a mensagem.
func ValidationDetails(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, strings.ToLower(fieldErr.Field())+": "+fieldErr.Tag())
	}
	return strings.Join(details, ", ")
}
