package awsclient

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/facegate/facegate-backend/internal/infrastructure/config"
)

// Clients agrupa os clientes AWS compartilhados pela aplicação
type Clients struct {
	S3          *s3.Client
	Rekognition *rekognition.Client
}

// New constrói os clientes S3 e Rekognition a partir da configuração.
// Credenciais estáticas quando fornecidas; caso contrário a cadeia
// padrão do SDK (ambiente, perfil, IAM role) é usada.
func New(ctx context.Context, cfg *config.AWSConfig) (*Clients, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	return &Clients{
		S3:          s3.NewFromConfig(awsCfg),
		Rekognition: rekognition.NewFromConfig(awsCfg),
	}, nil
}
