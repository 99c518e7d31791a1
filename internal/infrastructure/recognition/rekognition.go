package recognition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	domainerrors "github.com/facegate/facegate-backend/internal/domain/errors"
	"github.com/facegate/facegate-backend/internal/domain/ports"
)

// rekognitionAPI é o subconjunto do cliente Rekognition usado pelo gateway
type rekognitionAPI interface {
	ListCollections(ctx context.Context, params *rekognition.ListCollectionsInput, optFns ...func(*rekognition.Options)) (*rekognition.ListCollectionsOutput, error)
	CreateCollection(ctx context.Context, params *rekognition.CreateCollectionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateCollectionOutput, error)
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
	IndexFaces(ctx context.Context, params *rekognition.IndexFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.IndexFacesOutput, error)
	SearchFacesByImage(ctx context.Context, params *rekognition.SearchFacesByImageInput, optFns ...func(*rekognition.Options)) (*rekognition.SearchFacesByImageOutput, error)
	DeleteFaces(ctx context.Context, params *rekognition.DeleteFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DeleteFacesOutput, error)
}

// RekognitionProvider implementa ports.FaceProvider sobre o Amazon Rekognition
type RekognitionProvider struct {
	client       rekognitionAPI
	collectionID string
	bucket       string
	logger       ports.Logger
}

// NewRekognitionProvider cria um novo RekognitionProvider.
// bucket é o bucket S3 referenciado pela indexação (IndexFace opera
// sobre o objeto já armazenado, não sobre bytes).
func NewRekognitionProvider(client rekognitionAPI, collectionID, bucket string, logger ports.Logger) ports.FaceProvider {
	return &RekognitionProvider{
		client:       client,
		collectionID: collectionID,
		bucket:       bucket,
		logger:       logger,
	}
}

// EnsureCollection cria a coleção configurada se ainda não existir.
// Checagem create-if-absent idempotente no provedor; uma corrida entre
// chamadas concorrentes produz no máximo uma tentativa duplicada de
// criação que o provedor rejeita.
func (p *RekognitionProvider) EnsureCollection(ctx context.Context) error {
	listOut, err := p.client.ListCollections(ctx, &rekognition.ListCollectionsInput{})
	if err != nil {
		return fmt.Errorf("error listing collections: %w", err)
	}

	for _, id := range listOut.CollectionIds {
		if id == p.collectionID {
			return nil
		}
	}

	_, err = p.client.CreateCollection(ctx, &rekognition.CreateCollectionInput{
		CollectionId: aws.String(p.collectionID),
	})
	if err != nil {
		var exists *rektypes.ResourceAlreadyExistsException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("error creating collection %s: %w", p.collectionID, err)
	}

	p.logger.Info("created rekognition collection", "collection_id", p.collectionID)
	return nil
}

func (p *RekognitionProvider) DetectFaces(ctx context.Context, image []byte) ([]ports.DetectedFace, error) {
	out, err := p.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image: &rektypes.Image{
			Bytes: image,
		},
		Attributes: []rektypes.Attribute{rektypes.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("error detecting faces: %w", err)
	}

	faces := make([]ports.DetectedFace, 0, len(out.FaceDetails))
	for _, detail := range out.FaceDetails {
		faces = append(faces, ports.DetectedFace{
			BoundingBox: toBoundingBox(detail.BoundingBox),
			Confidence:  toFloat64Ptr(detail.Confidence),
		})
	}

	return faces, nil
}

func (p *RekognitionProvider) IndexFace(ctx context.Context, storageKey, correlationID string) (*ports.IndexedFace, error) {
	if err := p.EnsureCollection(ctx); err != nil {
		return nil, err
	}

	out, err := p.client.IndexFaces(ctx, &rekognition.IndexFacesInput{
		CollectionId: aws.String(p.collectionID),
		Image: &rektypes.Image{
			S3Object: &rektypes.S3Object{
				Bucket: aws.String(p.bucket),
				Name:   aws.String(storageKey),
			},
		},
		ExternalImageId:     aws.String(correlationID),
		MaxFaces:            aws.Int32(1),
		QualityFilter:       rektypes.QualityFilterAuto,
		DetectionAttributes: []rektypes.Attribute{rektypes.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("error indexing face: %w", err)
	}

	if len(out.FaceRecords) == 0 {
		if len(out.UnindexedFaces) > 0 {
			reasons := make([]string, 0, len(out.UnindexedFaces[0].Reasons))
			for _, r := range out.UnindexedFaces[0].Reasons {
				reasons = append(reasons, string(r))
			}
			return nil, &domainerrors.FaceIndexError{Reasons: reasons}
		}
		return nil, &domainerrors.FaceIndexError{}
	}

	face := out.FaceRecords[0].Face

	return &ports.IndexedFace{
		ProviderFaceID: aws.ToString(face.FaceId),
		CorrelationID:  aws.ToString(face.ExternalImageId),
		ImageID:        aws.ToString(face.ImageId),
		BoundingBox:    toBoundingBox(face.BoundingBox),
		Confidence:     toFloat64Ptr(face.Confidence),
	}, nil
}

func (p *RekognitionProvider) SearchByImage(ctx context.Context, image []byte, maxMatches int, threshold float64) (*ports.FaceSearchResult, error) {
	if err := p.EnsureCollection(ctx); err != nil {
		return nil, err
	}

	out, err := p.client.SearchFacesByImage(ctx, &rekognition.SearchFacesByImageInput{
		CollectionId:       aws.String(p.collectionID),
		Image:              &rektypes.Image{Bytes: image},
		MaxFaces:           aws.Int32(int32(maxMatches)),
		FaceMatchThreshold: aws.Float32(float32(threshold)),
	})
	if err != nil {
		// "Nenhum rosto na imagem de consulta" é condição de entrada do
		// cliente, não falha do provedor: vira resultado tipado
		var invalidParam *rektypes.InvalidParameterException
		if errors.As(err, &invalidParam) && strings.Contains(invalidParam.ErrorMessage(), "no faces") {
			return &ports.FaceSearchResult{NoFaceInImage: true}, nil
		}
		return nil, fmt.Errorf("error searching faces by image: %w", err)
	}

	matches := make([]ports.FaceMatch, 0, len(out.FaceMatches))
	for _, m := range out.FaceMatches {
		if m.Face == nil {
			continue
		}
		matches = append(matches, ports.FaceMatch{
			ProviderFaceID: aws.ToString(m.Face.FaceId),
			CorrelationID:  aws.ToString(m.Face.ExternalImageId),
			Similarity:     float64(aws.ToFloat32(m.Similarity)),
			Confidence:     float64(aws.ToFloat32(m.Face.Confidence)),
		})
	}

	return &ports.FaceSearchResult{
		Matches:                matches,
		SearchedFaceBox:        toBoundingBox(out.SearchedFaceBoundingBox),
		SearchedFaceConfidence: toFloat64Ptr(out.SearchedFaceConfidence),
	}, nil
}

func (p *RekognitionProvider) DeleteFace(ctx context.Context, providerFaceID string) error {
	_, err := p.client.DeleteFaces(ctx, &rekognition.DeleteFacesInput{
		CollectionId: aws.String(p.collectionID),
		FaceIds:      []string{providerFaceID},
	})
	if err != nil {
		return fmt.Errorf("error deleting face %s: %w", providerFaceID, err)
	}
	return nil
}

// Conversores

func toBoundingBox(box *rektypes.BoundingBox) *ports.BoundingBox {
	if box == nil {
		return nil
	}
	return &ports.BoundingBox{
		Width:  float64(aws.ToFloat32(box.Width)),
		Height: float64(aws.ToFloat32(box.Height)),
		Left:   float64(aws.ToFloat32(box.Left)),
		Top:    float64(aws.ToFloat32(box.Top)),
	}
}

func toFloat64Ptr(f *float32) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
