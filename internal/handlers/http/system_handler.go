package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler expõe endpoints informativos do serviço (health, info, docs)
type SystemHandler struct {
	version string
}

// NewSystemHandler cria um novo SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version}
}

// Health responde o health check
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Face Recognition API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Info responde o banner do serviço com o mapa de endpoints
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Face Recognition API Server",
		"version": h.version,
		"endpoints": gin.H{
			"health":       "GET /api/face/health",
			"register":     "POST /api/face/register",
			"authenticate": "POST /api/face/authenticate",
			"verify":       "POST /api/face/verify/:userId",
			"getUsers":     "GET /api/face/users",
			"getUser":      "GET /api/face/users/:userId",
			"deleteUser":   "DELETE /api/face/users/:userId",
		},
		"documentation": "/api/docs",
	})
}

// Docs responde a documentação da API em JSON
func (h *SystemHandler) Docs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":   "Face Recognition API Documentation",
		"version": h.version,
		"baseUrl": "/api/face",
		"endpoints": []gin.H{
			{
				"method":      "POST",
				"path":        "/register",
				"description": "Register a new face with user name",
				"contentType": "multipart/form-data",
				"parameters": gin.H{
					"name":  gin.H{"type": "string", "required": true, "description": "User name"},
					"image": gin.H{"type": "file", "required": true, "description": "Face image (JPEG, PNG, WebP)"},
				},
				"responses": gin.H{
					"201": "Face registered successfully",
					"400": "Invalid input or no face detected",
					"409": "Face already registered",
				},
			},
			{
				"method":      "POST",
				"path":        "/authenticate",
				"description": "Authenticate a face against all registered faces",
				"contentType": "multipart/form-data",
				"parameters": gin.H{
					"image":     gin.H{"type": "file", "required": true, "description": "Face image to authenticate"},
					"threshold": gin.H{"type": "number", "required": false, "description": "Similarity threshold (default: 80)"},
				},
				"responses": gin.H{
					"200": "Authentication successful",
					"400": "No face detected",
					"401": "Face not recognized",
				},
			},
			{
				"method":      "POST",
				"path":        "/verify/:userId",
				"description": "Verify if a face matches a specific registered user",
				"contentType": "multipart/form-data",
				"parameters": gin.H{
					"userId":    gin.H{"type": "string", "required": true, "in": "path", "description": "User ID to verify against"},
					"image":     gin.H{"type": "file", "required": true, "description": "Face image to verify"},
					"threshold": gin.H{"type": "number", "required": false, "description": "Similarity threshold (default: 80)"},
				},
				"responses": gin.H{
					"200": "Face verified successfully",
					"400": "No face detected",
					"401": "Face does not match",
					"404": "User not found",
				},
			},
			{
				"method":      "GET",
				"path":        "/users",
				"description": "Get all registered users",
				"parameters": gin.H{
					"limit": gin.H{"type": "number", "required": false, "in": "query", "description": "Max results (default: 100)"},
					"skip":  gin.H{"type": "number", "required": false, "in": "query", "description": "Offset for pagination"},
				},
				"responses": gin.H{
					"200": "List of users with pagination",
				},
			},
			{
				"method":      "GET",
				"path":        "/users/:userId",
				"description": "Get a specific user by ID",
				"responses": gin.H{
					"200": "User details",
					"404": "User not found",
				},
			},
			{
				"method":      "DELETE",
				"path":        "/users/:userId",
				"description": "Delete a user and their face data",
				"responses": gin.H{
					"200": "User deleted successfully",
					"404": "User not found",
				},
			},
		},
	})
}
