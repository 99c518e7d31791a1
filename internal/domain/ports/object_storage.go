package ports

import "context"

// StoredObject é o resultado de um upload no object store
type StoredObject struct {
	Key    string
	URL    string
	Bucket string
}

// ObjectStorage define a interface para o armazenamento binário de imagens
type ObjectStorage interface {
	// Upload armazena a imagem sob uma chave única gerada e retorna a
	// chave e a URL pública derivada (sem round trip adicional)
	Upload(ctx context.Context, data []byte, fileName, contentType string) (*StoredObject, error)

	// Delete remove o objeto pela chave (best-effort, idempotente)
	Delete(ctx context.Context, key string) error

	// URLFor deriva a URL pública de uma chave, sem chamada de rede
	URLFor(key string) string
}
