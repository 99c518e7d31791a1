package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/facegate/facegate-backend/internal/domain/entities"
	domainerrors "github.com/facegate/facegate-backend/internal/domain/errors"
	"github.com/facegate/facegate-backend/internal/domain/ports"
	"github.com/facegate/facegate-backend/internal/domain/repositories"
	"github.com/facegate/facegate-backend/internal/domain/valueobjects"
)

const (
	// DefaultThreshold é o limiar de similaridade padrão para
	// autenticação e verificação
	DefaultThreshold = 80

	// duplicateCheckThreshold é o limiar mais estrito usado na checagem
	// de duplicidade pré-registro, para minimizar falsas rejeições
	duplicateCheckThreshold = 95

	authenticateMaxMatches = 1
	verifyMaxMatches       = 5
)

// FaceService orquestra os fluxos de registro, autenticação e
// verificação compondo o provedor facial, o object store e o registro
// de usuários. Os gateways nunca se chamam entre si.
type FaceService struct {
	userRepo repositories.UserRepository
	provider ports.FaceProvider
	storage  ports.ObjectStorage
	logger   ports.Logger
}

// NewFaceService cria um novo FaceService
func NewFaceService(
	userRepo repositories.UserRepository,
	provider ports.FaceProvider,
	storage ports.ObjectStorage,
	logger ports.Logger,
) *FaceService {
	return &FaceService{
		userRepo: userRepo,
		provider: provider,
		storage:  storage,
		logger:   logger,
	}
}

// RegisterInput representa os dados para registrar um rosto
type RegisterInput struct {
	Name        valueobjects.PersonName
	Image       []byte
	ContentType string
}

// MatchResult é o resultado de uma autenticação ou verificação bem-sucedida
type MatchResult struct {
	User       *entities.User
	Similarity float64
	Confidence float64
}

// UserPage é uma página da listagem de usuários
type UserPage struct {
	Users   []*entities.User
	Total   int64
	Limit   int
	Skip    int
	HasMore bool
}

// Register executa o fluxo de registro: detecta exatamente um rosto,
// checa duplicidade, faz upload da imagem, indexa o rosto e só então
// persiste o registro. Nenhum registro parcial é criado: se a indexação
// falha depois do upload, o objeto enviado é removido (compensação) e o
// erro original é propagado.
func (s *FaceService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	name := input.Name.String()
	s.logger.Info("registering face", "name", name)

	faces, err := s.provider.DetectFaces(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	if len(faces) == 0 {
		return nil, domainerrors.ErrNoFaceDetected
	}
	if len(faces) > 1 {
		return nil, domainerrors.ErrMultipleFaces
	}

	// Checagem de duplicidade com limiar estrito antes de qualquer
	// efeito colateral externo
	existing, err := s.provider.SearchByImage(ctx, input.Image, authenticateMaxMatches, duplicateCheckThreshold)
	if err != nil {
		return nil, err
	}

	if len(existing.Matches) > 0 {
		match := existing.Matches[0]
		matchedUser, err := s.userRepo.FindByFaceID(ctx, match.CorrelationID)
		if err != nil {
			return nil, err
		}
		s.logger.Warn("duplicate registration attempt",
			"name", name,
			"similarity", match.Similarity,
		)
		return nil, &domainerrors.FaceAlreadyRegisteredError{Existing: matchedUser}
	}

	correlationID := uuid.NewString()
	fileName := fmt.Sprintf("%s-%d.jpg", input.Name.Slug(), time.Now().UnixMilli())

	stored, err := s.storage.Upload(ctx, input.Image, fileName, input.ContentType)
	if err != nil {
		return nil, err
	}

	indexed, err := s.provider.IndexFace(ctx, stored.Key, correlationID)
	if err != nil {
		// Compensação: remover o blob para não deixar objeto órfão.
		// Best-effort; a falha da indexação é o erro que importa.
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			s.logger.Warn("failed to delete uploaded image during rollback",
				"key", stored.Key,
				"error", delErr,
			)
		}
		return nil, err
	}

	user := &entities.User{
		Name:              name,
		FaceID:            &correlationID,
		S3ImageKey:        stored.Key,
		S3ImageURL:        stored.URL,
		RekognitionFaceID: indexed.ProviderFaceID,
		BoundingBox:       indexed.BoundingBox,
		Confidence:        indexed.Confidence,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("face registered",
		"user_id", user.ID,
		"face_id", correlationID,
		"provider_face_id", indexed.ProviderFaceID,
	)

	return user, nil
}

// Authenticate busca o rosto enviado contra toda a coleção e resolve o
// melhor match para um registro local. Um match do provedor sem registro
// correspondente nunca é tratado como sucesso.
func (s *FaceService) Authenticate(ctx context.Context, image []byte, threshold float64) (*MatchResult, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	result, err := s.provider.SearchByImage(ctx, image, authenticateMaxMatches, threshold)
	if err != nil {
		return nil, err
	}

	if result.NoFaceInImage {
		return nil, domainerrors.ErrNoFaceInImage
	}

	if len(result.Matches) == 0 {
		return nil, domainerrors.ErrFaceNotRecognized
	}

	match := result.Matches[0]
	user, err := s.userRepo.FindByFaceID(ctx, match.CorrelationID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("face match without local record", "face_id", match.CorrelationID)
		return nil, domainerrors.ErrUserRecordMissing
	}

	return &MatchResult{
		User:       user,
		Similarity: match.Similarity,
		Confidence: match.Confidence,
	}, nil
}

// Verify confirma se o rosto enviado corresponde ao usuário alvo. A
// busca usa uma rede mais ampla (5 matches) porque o chamador já afirma
// uma identidade; um rosto que corresponde a outro usuário registrado
// resulta em mismatch, não em "não reconhecido".
func (s *FaceService) Verify(ctx context.Context, userID string, image []byte, threshold float64) (*MatchResult, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	result, err := s.provider.SearchByImage(ctx, image, verifyMaxMatches, threshold)
	if err != nil {
		return nil, err
	}

	if result.NoFaceInImage {
		return nil, domainerrors.ErrNoFaceInImage
	}

	target := user.CorrelationID()
	for _, match := range result.Matches {
		if target != "" && match.CorrelationID == target {
			return &MatchResult{
				User:       user,
				Similarity: match.Similarity,
				Confidence: match.Confidence,
			}, nil
		}
	}

	return nil, &domainerrors.FaceMismatchError{User: user}
}

// GetUser busca um usuário por ID
func (s *FaceService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários paginados, mais recentes primeiro
func (s *FaceService) ListUsers(ctx context.Context, limit, skip int) (*UserPage, error) {
	if limit < 1 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	users, err := s.userRepo.List(ctx, repositories.ListFilters{Limit: limit, Skip: skip})
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users:   users,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: int64(skip+len(users)) < total,
	}, nil
}

// DeleteUser remove o usuário e seus recursos externos. Os recursos
// externos são derrubados antes do registro local: uma falha no meio da
// sequência deixa, no pior caso, um registro local apontando para
// recursos já removidos, recuperável repetindo a deleção.
func (s *FaceService) DeleteUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	if user.HasIndexedFace() {
		if err := s.provider.DeleteFace(ctx, user.RekognitionFaceID); err != nil {
			return nil, err
		}
	}

	if user.S3ImageKey != "" {
		if err := s.storage.Delete(ctx, user.S3ImageKey); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("user deleted", "user_id", id, "name", user.Name)

	return user, nil
}
