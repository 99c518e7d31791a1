package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/facegate/facegate-backend/internal/domain/ports"
)

// keyPrefix é o namespace fixo das imagens de rosto no bucket
const keyPrefix = "faces/"

// s3API é o subconjunto do cliente S3 usado pelo gateway
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implementa ports.ObjectStorage sobre o Amazon S3
type S3Storage struct {
	client s3API
	bucket string
	region string
}

// NewS3Storage cria um novo S3Storage
func NewS3Storage(client s3API, bucket, region string) ports.ObjectStorage {
	return &S3Storage{
		client: client,
		bucket: bucket,
		region: region,
	}
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, fileName, contentType string) (*ports.StoredObject, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	// Prefixar com uuid garante unicidade global da chave; uploads de
	// bytes idênticos criam objetos distintos
	key := fmt.Sprintf("%s%s-%s", keyPrefix, uuid.NewString(), fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading image to s3: %w", err)
	}

	return &ports.StoredObject{
		Key:    key,
		URL:    s.URLFor(key),
		Bucket: s.bucket,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting image from s3: %w", err)
	}
	return nil
}

// URLFor deriva a URL pública de uma chave, sem round trip ao S3
func (s *S3Storage) URLFor(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
