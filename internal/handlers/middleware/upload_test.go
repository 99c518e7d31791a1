package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func uploadRequest(t *testing.T, fieldName, contentType string, size int) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="face.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("falha criando parte: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), size)); err != nil {
		t.Fatalf("falha escrevendo bytes: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("falha fechando multipart: %v", err)
	}

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func setupUploadRouter(maxSizeMB int64) (*gin.Engine, *[]byte) {
	gin.SetMode(gin.TestMode)

	var captured []byte
	router := gin.New()
	router.POST("/upload", ImageUpload(maxSizeMB), func(c *gin.Context) {
		data, contentType := ImageFromContext(c)
		captured = data
		c.JSON(http.StatusOK, gin.H{"size": len(data), "contentType": contentType})
	})

	return router, &captured
}

func TestImageUpload(t *testing.T) {
	t.Run("rejeita requisição sem imagem", func(t *testing.T) {
		router, _ := setupUploadRouter(5)

		req := httptest.NewRequest("POST", "/upload", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", w.Code)
		}
	})

	t.Run("rejeita campo de arquivo com outro nome", func(t *testing.T) {
		router, _ := setupUploadRouter(5)

		req := uploadRequest(t, "photo", "image/jpeg", 10)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", w.Code)
		}
	})

	t.Run("rejeita tipo de conteúdo não suportado", func(t *testing.T) {
		router, _ := setupUploadRouter(5)

		req := uploadRequest(t, "image", "application/pdf", 10)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", w.Code)
		}
	})

	t.Run("rejeita imagem acima do limite", func(t *testing.T) {
		router, _ := setupUploadRouter(1)

		req := uploadRequest(t, "image", "image/jpeg", 2*1024*1024)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", w.Code)
		}
	})

	t.Run("deposita bytes e content type no contexto", func(t *testing.T) {
		router, captured := setupUploadRouter(5)

		req := uploadRequest(t, "image", "image/png", 128)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}
		if len(*captured) != 128 {
			t.Errorf("esperava 128 bytes no contexto, obteve %d", len(*captured))
		}
	})

	t.Run("aceita webp", func(t *testing.T) {
		router, _ := setupUploadRouter(5)

		req := uploadRequest(t, "image", "image/webp", 64)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
	})
}
