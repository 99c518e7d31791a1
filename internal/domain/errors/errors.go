package errors

import (
	"errors"
	"fmt"

	"github.com/facegate/facegate-backend/internal/domain/entities"
)

// Business errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNoFaceDetected    = errors.New("no face detected in the image")
	ErrMultipleFaces     = errors.New("multiple faces detected in the image")
	ErrNoFaceInImage     = errors.New("no face detected in the provided image")
	ErrFaceNotRecognized = errors.New("face not recognized")
	ErrUserRecordMissing = errors.New("user record not found")
)

// FaceAlreadyRegisteredError indica que o rosto enviado já corresponde
// a um usuário registrado. Existing pode ser nulo quando a entrada do
// índice não resolve para nenhum registro local.
type FaceAlreadyRegisteredError struct {
	Existing *entities.User
}

func (e *FaceAlreadyRegisteredError) Error() string {
	return "this face is already registered"
}

// FaceMismatchError indica que o rosto enviado não corresponde ao
// usuário alvo da verificação; carrega a identidade alvo para resposta
type FaceMismatchError struct {
	User *entities.User
}

func (e *FaceMismatchError) Error() string {
	return "face does not match the registered user"
}

// FaceIndexError encapsula uma falha de indexação do provedor,
// preservando as razões de rejeição quando reportadas
type FaceIndexError struct {
	Reasons []string
	Err     error
}

func (e *FaceIndexError) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("face could not be indexed: %v", e.Reasons)
	}
	if e.Err != nil {
		return "face could not be indexed: " + e.Err.Error()
	}
	return "no face detected in the image"
}

func (e *FaceIndexError) Unwrap() error {
	return e.Err
}
