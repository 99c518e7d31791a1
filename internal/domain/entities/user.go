package entities

import (
	"errors"
	"time"

	"github.com/facegate/facegate-backend/internal/domain/ports"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário com rosto registrado.
// FaceID é o correlation id gerado no momento do registro e liga o
// registro local à entrada correspondente no índice do provedor;
// RekognitionFaceID é o id atribuído pelo provedor ao indexar o rosto.
// FaceID é nulo apenas em registros legados/incompletos.
type User struct {
	ID                string
	Name              string
	FaceID            *string
	S3ImageKey        string
	S3ImageURL        string
	RekognitionFaceID string
	BoundingBox       *ports.BoundingBox
	Confidence        *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasIndexedFace verifica se o usuário possui um rosto indexado no provedor
func (u *User) HasIndexedFace() bool {
	return u.RekognitionFaceID != ""
}

// CorrelationID retorna o correlation id, ou vazio para registros legados
func (u *User) CorrelationID() string {
	if u.FaceID == nil {
		return ""
	}
	return *u.FaceID
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}

	if u.S3ImageKey == "" {
		return errors.New("image storage key is required")
	}

	if u.RekognitionFaceID == "" {
		return errors.New("provider face id is required")
	}

	return nil
}
