package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facegate/facegate-backend/internal/domain/entities"
)

func seedUsers(n int) *stubRepo {
	repo := &stubRepo{}
	for i := 0; i < n; i++ {
		repo.users = append(repo.users, &entities.User{
			ID:   "user-" + string(rune('a'+i)),
			Name: "User",
		})
	}
	return repo
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("200 com paginação", func(t *testing.T) {
		router := setupRouter(seedUsers(25), &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/users?limit=10&skip=0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		users := data["users"].([]any)
		if len(users) != 10 {
			t.Errorf("esperava 10 usuários, obteve %d", len(users))
		}
		pagination := data["pagination"].(map[string]any)
		if pagination["hasMore"] != true {
			t.Error("esperava hasMore=true")
		}
		if pagination["total"] != float64(25) {
			t.Errorf("esperava total 25, obteve %v", pagination["total"])
		}
	})

	t.Run("200 sem hasMore quando a coleção é menor que a página", func(t *testing.T) {
		router := setupRouter(seedUsers(5), &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/users?limit=10&skip=0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		users := data["users"].([]any)
		pagination := data["pagination"].(map[string]any)
		if len(users) != 5 || pagination["hasMore"] != false {
			t.Errorf("esperava 5 usuários sem hasMore, obteve %d/%v", len(users), pagination["hasMore"])
		}
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("200 com detalhe do usuário", func(t *testing.T) {
		repo := &stubRepo{users: []*entities.User{
			{ID: "user-1", Name: "Alice", S3ImageURL: "https://img"},
		}}
		router := setupRouter(repo, &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/users/user-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		if data["name"] != "Alice" || data["imageUrl"] != "https://img" {
			t.Errorf("detalhe errado: %v", data)
		}
	})

	t.Run("404 para usuário inexistente", func(t *testing.T) {
		router := setupRouter(&stubRepo{}, &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/users/user-999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("esperava 404, obteve %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "User not found" {
			t.Errorf("mensagem errada: %v", body["error"])
		}
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("200 removendo usuário e recursos", func(t *testing.T) {
		repo := &stubRepo{users: []*entities.User{
			{ID: "user-1", Name: "Alice", RekognitionFaceID: "rek-1", S3ImageKey: "faces/k"},
		}}
		router := setupRouter(repo, &stubProvider{})

		req := httptest.NewRequest("DELETE", "/api/face/users/user-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		if data["userId"] != "user-1" || data["name"] != "Alice" {
			t.Errorf("dados errados: %v", data)
		}
		if len(repo.users) != 0 {
			t.Error("usuário não foi removido")
		}
	})

	t.Run("404 para usuário inexistente", func(t *testing.T) {
		router := setupRouter(&stubRepo{}, &stubProvider{})

		req := httptest.NewRequest("DELETE", "/api/face/users/user-999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("esperava 404, obteve %d", w.Code)
		}
	})
}

func TestSystemHandler(t *testing.T) {
	t.Run("health responde 200 com timestamp", func(t *testing.T) {
		router := setupRouter(&stubRepo{}, &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["success"] != true || body["timestamp"] == nil {
			t.Errorf("corpo errado: %v", body)
		}
	})

	t.Run("rota desconhecida responde 404 com envelope padrão", func(t *testing.T) {
		router := setupRouter(&stubRepo{}, &stubProvider{})

		req := httptest.NewRequest("GET", "/api/face/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("esperava 404, obteve %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["success"] != false {
			t.Error("esperava success=false no 404")
		}
	})
}
