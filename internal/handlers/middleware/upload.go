package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facegate/facegate-backend/internal/handlers/dto"
)

const (
	// ImageBytesKey e ImageContentTypeKey são as chaves de contexto onde
	// o middleware deposita a imagem extraída do multipart
	ImageBytesKey       = "upload_image_bytes"
	ImageContentTypeKey = "upload_image_content_type"

	imageFieldName = "image"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageUpload extrai e valida o arquivo de imagem do formulário
// multipart, rejeitando ausência, tipo não suportado ou tamanho
// excessivo antes do handler rodar
func ImageUpload(maxSizeMB int64) gin.HandlerFunc {
	maxBytes := maxSizeMB * 1024 * 1024

	return func(c *gin.Context) {
		fileHeader, err := c.FormFile(imageFieldName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("Face image is required"))
			return
		}

		if fileHeader.Size > maxBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(fmt.Sprintf("Image exceeds the maximum size of %d MB", maxSizeMB)))
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedContentTypes[contentType] {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("Only JPEG, PNG and WebP images are allowed"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewInternalErrorResponse("Failed to read uploaded image", err))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewInternalErrorResponse("Failed to read uploaded image", err))
			return
		}

		if int64(len(data)) > maxBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(fmt.Sprintf("Image exceeds the maximum size of %d MB", maxSizeMB)))
			return
		}

		c.Set(ImageBytesKey, data)
		c.Set(ImageContentTypeKey, contentType)
		c.Next()
	}
}

// ImageFromContext recupera a imagem depositada pelo middleware
func ImageFromContext(c *gin.Context) ([]byte, string) {
	data, _ := c.Get(ImageBytesKey)
	contentType := c.GetString(ImageContentTypeKey)

	bytes, ok := data.([]byte)
	if !ok {
		return nil, contentType
	}
	return bytes, contentType
}
