package ports

import "context"

// BoundingBox é a caixa delimitadora de um rosto, em coordenadas
// relativas ao tamanho da imagem (0..1), como reportado pelo provedor.
type BoundingBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// DetectedFace representa um rosto detectado em uma imagem
type DetectedFace struct {
	BoundingBox *BoundingBox
	Confidence  *float64
}

// IndexedFace é o resultado da indexação de um rosto na coleção
type IndexedFace struct {
	ProviderFaceID string
	CorrelationID  string
	ImageID        string
	BoundingBox    *BoundingBox
	Confidence     *float64
}

// FaceMatch é uma correspondência retornada pela busca, ordenada por
// similaridade decrescente pelo provedor
type FaceMatch struct {
	ProviderFaceID string
	CorrelationID  string
	Similarity     float64
	Confidence     float64
}

// FaceSearchResult é o resultado tipado da busca por imagem.
// NoFaceInImage distingue "nenhum rosto na imagem de consulta" de um
// erro do provedor: é uma condição de entrada do cliente, não uma falha.
type FaceSearchResult struct {
	Matches                []FaceMatch
	SearchedFaceBox        *BoundingBox
	SearchedFaceConfidence *float64
	NoFaceInImage          bool
}

// FaceProvider define a interface para o serviço externo de
// reconhecimento facial (detecção, indexação e busca por similaridade)
type FaceProvider interface {
	// EnsureCollection garante que a coleção configurada exista.
	// Idempotente; seguro para chamadas concorrentes.
	EnsureCollection(ctx context.Context) error

	// DetectFaces detecta rostos na imagem bruta (zero, um ou vários)
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// IndexFace indexa o rosto do objeto já armazenado (referenciado
	// pela chave no object store), associado ao correlation id
	IndexFace(ctx context.Context, storageKey, correlationID string) (*IndexedFace, error)

	// SearchByImage busca correspondências acima do threshold (0–100)
	SearchByImage(ctx context.Context, image []byte, maxMatches int, threshold float64) (*FaceSearchResult, error)

	// DeleteFace remove um rosto indexado pelo id atribuído pelo provedor
	DeleteFace(ctx context.Context, providerFaceID string) error
}
