package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/facegate/facegate-backend/internal/domain/entities"
	"github.com/facegate/facegate-backend/internal/domain/ports"
	"github.com/facegate/facegate-backend/internal/domain/repositories"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	model, err := r.toModel(user)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(model.CreatedAt, 0)
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByFaceID(ctx context.Context, faceID string) (*entities.User, error) {
	return r.findOne(ctx, "face_id = ?", faceID)
}

func (r *UserRepository) FindByRekognitionFaceID(ctx context.Context, rekognitionFaceID string) (*entities.User, error) {
	return r.findOne(ctx, "rekognition_face_id = ?", rekognitionFaceID)
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*entities.User, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *UserRepository) List(ctx context.Context, filters repositories.ListFilters) ([]*entities.User, error) {
	var models []*UserModel

	limit := filters.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	skip := filters.Skip
	if skip < 0 {
		skip = 0
	}

	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model, err := r.toModel(user)
	if err != nil {
		return err
	}

	// autoUpdateTime renova updated_at em todo Save
	model.UpdatedAt = 0
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{}).Error
}

func (r *UserRepository) DeleteByRekognitionFaceID(ctx context.Context, rekognitionFaceID string) error {
	return r.db.WithContext(ctx).Where("rekognition_face_id = ?", rekognitionFaceID).Delete(&UserModel{}).Error
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var model UserModel

	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// Conversores

func (r *UserRepository) toModel(user *entities.User) (*UserModel, error) {
	var boundingBox []byte
	if user.BoundingBox != nil {
		b, err := json.Marshal(user.BoundingBox)
		if err != nil {
			return nil, fmt.Errorf("failed to encode bounding box: %w", err)
		}
		boundingBox = b
	}

	model := &UserModel{
		ID:                user.ID,
		Name:              user.Name,
		FaceID:            user.FaceID,
		S3ImageKey:        user.S3ImageKey,
		S3ImageURL:        user.S3ImageURL,
		RekognitionFaceID: user.RekognitionFaceID,
		BoundingBox:       boundingBox,
		Confidence:        user.Confidence,
	}

	if !user.CreatedAt.IsZero() {
		model.CreatedAt = user.CreatedAt.Unix()
	}
	if !user.UpdatedAt.IsZero() {
		model.UpdatedAt = user.UpdatedAt.Unix()
	}

	return model, nil
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	var boundingBox *ports.BoundingBox
	if len(model.BoundingBox) > 0 {
		boundingBox = &ports.BoundingBox{}
		if err := json.Unmarshal(model.BoundingBox, boundingBox); err != nil {
			return nil, fmt.Errorf("failed to decode bounding box: %w", err)
		}
	}

	return &entities.User{
		ID:                model.ID,
		Name:              model.Name,
		FaceID:            model.FaceID,
		S3ImageKey:        model.S3ImageKey,
		S3ImageURL:        model.S3ImageURL,
		RekognitionFaceID: model.RekognitionFaceID,
		BoundingBox:       boundingBox,
		Confidence:        model.Confidence,
		CreatedAt:         time.Unix(model.CreatedAt, 0),
		UpdatedAt:         time.Unix(model.UpdatedAt, 0),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
