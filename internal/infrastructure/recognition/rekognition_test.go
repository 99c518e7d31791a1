package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/facegate/facegate-backend/internal/domain/errors"
	"github.com/facegate/facegate-backend/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)        {}
func (nopLogger) Error(string, ...any)       {}
func (nopLogger) Debug(string, ...any)       {}
func (nopLogger) Warn(string, ...any)        {}
func (l nopLogger) With(...any) ports.Logger { return l }

type fakeRekognition struct {
	collections []string
	listErr     error

	createCalls  int
	createErr    error
	detectOut    *rekognition.DetectFacesOutput
	detectErr    error
	indexInputs  []*rekognition.IndexFacesInput
	indexOut     *rekognition.IndexFacesOutput
	indexErr     error
	searchInputs []*rekognition.SearchFacesByImageInput
	searchOut    *rekognition.SearchFacesByImageOutput
	searchErr    error
	deleteInputs []*rekognition.DeleteFacesInput
	deleteErr    error
}

func (f *fakeRekognition) ListCollections(context.Context, *rekognition.ListCollectionsInput, ...func(*rekognition.Options)) (*rekognition.ListCollectionsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &rekognition.ListCollectionsOutput{CollectionIds: f.collections}, nil
}

func (f *fakeRekognition) CreateCollection(_ context.Context, params *rekognition.CreateCollectionInput, _ ...func(*rekognition.Options)) (*rekognition.CreateCollectionOutput, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.collections = append(f.collections, aws.ToString(params.CollectionId))
	return &rekognition.CreateCollectionOutput{}, nil
}

func (f *fakeRekognition) DetectFaces(context.Context, *rekognition.DetectFacesInput, ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	if f.detectOut != nil {
		return f.detectOut, nil
	}
	return &rekognition.DetectFacesOutput{}, nil
}

func (f *fakeRekognition) IndexFaces(_ context.Context, params *rekognition.IndexFacesInput, _ ...func(*rekognition.Options)) (*rekognition.IndexFacesOutput, error) {
	f.indexInputs = append(f.indexInputs, params)
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	if f.indexOut != nil {
		return f.indexOut, nil
	}
	return &rekognition.IndexFacesOutput{}, nil
}

func (f *fakeRekognition) SearchFacesByImage(_ context.Context, params *rekognition.SearchFacesByImageInput, _ ...func(*rekognition.Options)) (*rekognition.SearchFacesByImageOutput, error) {
	f.searchInputs = append(f.searchInputs, params)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchOut != nil {
		return f.searchOut, nil
	}
	return &rekognition.SearchFacesByImageOutput{}, nil
}

func (f *fakeRekognition) DeleteFaces(_ context.Context, params *rekognition.DeleteFacesInput, _ ...func(*rekognition.Options)) (*rekognition.DeleteFacesOutput, error) {
	f.deleteInputs = append(f.deleteInputs, params)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &rekognition.DeleteFacesOutput{}, nil
}

func newProvider(client *fakeRekognition) ports.FaceProvider {
	return NewRekognitionProvider(client, "test-collection", "my-bucket", nopLogger{})
}

func TestEnsureCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("não recria coleção existente", func(t *testing.T) {
		client := &fakeRekognition{collections: []string{"other", "test-collection"}}
		provider := newProvider(client)

		require.NoError(t, provider.EnsureCollection(ctx))
		assert.Zero(t, client.createCalls)
	})

	t.Run("cria coleção ausente", func(t *testing.T) {
		client := &fakeRekognition{collections: []string{"other"}}
		provider := newProvider(client)

		require.NoError(t, provider.EnsureCollection(ctx))
		assert.Equal(t, 1, client.createCalls)
	})

	t.Run("criação concorrente duplicada é absorvida", func(t *testing.T) {
		client := &fakeRekognition{createErr: &rektypes.ResourceAlreadyExistsException{}}
		provider := newProvider(client)

		require.NoError(t, provider.EnsureCollection(ctx))
	})

	t.Run("propaga falha de listagem", func(t *testing.T) {
		client := &fakeRekognition{listErr: errors.New("rekognition boom")}
		provider := newProvider(client)

		require.Error(t, provider.EnsureCollection(ctx))
	})
}

func TestDetectFaces(t *testing.T) {
	ctx := context.Background()

	t.Run("mapeia rostos detectados", func(t *testing.T) {
		client := &fakeRekognition{detectOut: &rekognition.DetectFacesOutput{
			FaceDetails: []rektypes.FaceDetail{
				{
					BoundingBox: &rektypes.BoundingBox{
						Width:  aws.Float32(0.5),
						Height: aws.Float32(0.4),
						Left:   aws.Float32(0.1),
						Top:    aws.Float32(0.2),
					},
					Confidence: aws.Float32(99.5),
				},
				{},
			},
		}}
		provider := newProvider(client)

		faces, err := provider.DetectFaces(ctx, []byte("img"))
		require.NoError(t, err)
		require.Len(t, faces, 2)

		assert.InDelta(t, 0.5, faces[0].BoundingBox.Width, 0.001)
		assert.InDelta(t, 99.5, *faces[0].Confidence, 0.001)
		assert.Nil(t, faces[1].BoundingBox)
	})
}

func TestIndexFace(t *testing.T) {
	ctx := context.Background()

	t.Run("indexa referenciando o objeto no bucket", func(t *testing.T) {
		client := &fakeRekognition{
			collections: []string{"test-collection"},
			indexOut: &rekognition.IndexFacesOutput{
				FaceRecords: []rektypes.FaceRecord{{
					Face: &rektypes.Face{
						FaceId:          aws.String("rek-face-1"),
						ExternalImageId: aws.String("corr-1"),
						ImageId:         aws.String("img-1"),
						Confidence:      aws.Float32(99.1),
						BoundingBox:     &rektypes.BoundingBox{Width: aws.Float32(0.3)},
					},
				}},
			},
		}
		provider := newProvider(client)

		indexed, err := provider.IndexFace(ctx, "faces/key-1", "corr-1")
		require.NoError(t, err)

		assert.Equal(t, "rek-face-1", indexed.ProviderFaceID)
		assert.Equal(t, "corr-1", indexed.CorrelationID)
		assert.InDelta(t, 99.1, *indexed.Confidence, 0.001)

		input := client.indexInputs[0]
		assert.Equal(t, "my-bucket", aws.ToString(input.Image.S3Object.Bucket))
		assert.Equal(t, "faces/key-1", aws.ToString(input.Image.S3Object.Name))
		assert.Equal(t, "corr-1", aws.ToString(input.ExternalImageId))
		assert.Equal(t, int32(1), aws.ToInt32(input.MaxFaces))
	})

	t.Run("garante a coleção antes de indexar", func(t *testing.T) {
		client := &fakeRekognition{
			indexOut: &rekognition.IndexFacesOutput{
				FaceRecords: []rektypes.FaceRecord{{Face: &rektypes.Face{FaceId: aws.String("f")}}},
			},
		}
		provider := newProvider(client)

		_, err := provider.IndexFace(ctx, "faces/key-1", "corr-1")
		require.NoError(t, err)
		assert.Equal(t, 1, client.createCalls)
	})

	t.Run("falha com razões quando nenhum rosto é indexado", func(t *testing.T) {
		client := &fakeRekognition{
			collections: []string{"test-collection"},
			indexOut: &rekognition.IndexFacesOutput{
				UnindexedFaces: []rektypes.UnindexedFace{{
					Reasons: []rektypes.Reason{rektypes.ReasonLowFaceQuality, rektypes.ReasonExtremePose},
				}},
			},
		}
		provider := newProvider(client)

		_, err := provider.IndexFace(ctx, "faces/key-1", "corr-1")
		require.Error(t, err)

		var indexErr *domainerrors.FaceIndexError
		require.ErrorAs(t, err, &indexErr)
		assert.Contains(t, indexErr.Reasons, "LOW_FACE_QUALITY")
	})

	t.Run("falha genérica quando não há registros nem razões", func(t *testing.T) {
		client := &fakeRekognition{collections: []string{"test-collection"}}
		provider := newProvider(client)

		_, err := provider.IndexFace(ctx, "faces/key-1", "corr-1")

		var indexErr *domainerrors.FaceIndexError
		require.ErrorAs(t, err, &indexErr)
		assert.Empty(t, indexErr.Reasons)
	})
}

func TestSearchByImage(t *testing.T) {
	ctx := context.Background()

	t.Run("mapeia matches ordenados pelo provedor", func(t *testing.T) {
		client := &fakeRekognition{
			collections: []string{"test-collection"},
			searchOut: &rekognition.SearchFacesByImageOutput{
				SearchedFaceConfidence: aws.Float32(99.9),
				FaceMatches: []rektypes.FaceMatch{
					{
						Similarity: aws.Float32(97.3),
						Face: &rektypes.Face{
							FaceId:          aws.String("rek-1"),
							ExternalImageId: aws.String("corr-1"),
							Confidence:      aws.Float32(99.2),
						},
					},
					{Similarity: aws.Float32(90)},
				},
			},
		}
		provider := newProvider(client)

		result, err := provider.SearchByImage(ctx, []byte("img"), 5, 80)
		require.NoError(t, err)

		// Match sem Face é descartado
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "corr-1", result.Matches[0].CorrelationID)
		assert.InDelta(t, 97.3, result.Matches[0].Similarity, 0.001)
		assert.False(t, result.NoFaceInImage)

		input := client.searchInputs[0]
		assert.Equal(t, int32(5), aws.ToInt32(input.MaxFaces))
		assert.InDelta(t, 80, aws.ToFloat32(input.FaceMatchThreshold), 0.001)
	})

	t.Run("imagem sem rosto vira resultado tipado", func(t *testing.T) {
		client := &fakeRekognition{
			collections: []string{"test-collection"},
			searchErr: &rektypes.InvalidParameterException{
				Message: aws.String("There are no faces in the image. Should be at least 1."),
			},
		}
		provider := newProvider(client)

		result, err := provider.SearchByImage(ctx, []byte("img"), 1, 80)
		require.NoError(t, err)
		assert.True(t, result.NoFaceInImage)
		assert.Empty(t, result.Matches)
	})

	t.Run("outros erros de validação propagam", func(t *testing.T) {
		client := &fakeRekognition{
			collections: []string{"test-collection"},
			searchErr: &rektypes.InvalidParameterException{
				Message: aws.String("Invalid image format"),
			},
		}
		provider := newProvider(client)

		_, err := provider.SearchByImage(ctx, []byte("img"), 1, 80)
		require.Error(t, err)
	})
}

func TestDeleteFace(t *testing.T) {
	ctx := context.Background()

	t.Run("remove pelo id do provedor", func(t *testing.T) {
		client := &fakeRekognition{}
		provider := newProvider(client)

		require.NoError(t, provider.DeleteFace(ctx, "rek-face-1"))

		require.Len(t, client.deleteInputs, 1)
		assert.Equal(t, []string{"rek-face-1"}, client.deleteInputs[0].FaceIds)
		assert.Equal(t, "test-collection", aws.ToString(client.deleteInputs[0].CollectionId))
	})

	t.Run("propaga falha do cliente", func(t *testing.T) {
		client := &fakeRekognition{deleteErr: errors.New("rekognition boom")}
		provider := newProvider(client)

		require.Error(t, provider.DeleteFace(ctx, "rek-face-1"))
	})
}
