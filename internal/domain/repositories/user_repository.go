package repositories

import (
	"context"

	"github.com/facegate/facegate-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência do registro de
// usuários. Cada operação é independentemente atômica na camada de
// armazenamento; não há transações atravessando operações.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByFaceID(ctx context.Context, faceID string) (*entities.User, error)
	FindByRekognitionFaceID(ctx context.Context, rekognitionFaceID string) (*entities.User, error)
	FindByName(ctx context.Context, name string) (*entities.User, error)
	List(ctx context.Context, filters ListFilters) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entities.User) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByRekognitionFaceID(ctx context.Context, rekognitionFaceID string) error
}

// ListFilters contém parâmetros de paginação para listagem.
// A ordenação é sempre por data de criação decrescente.
type ListFilters struct {
	Limit int // máximo de itens (default: 100)
	Skip  int // offset para paginação
}
