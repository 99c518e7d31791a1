package dto

import (
	"time"

	"github.com/facegate/facegate-backend/internal/domain/entities"
	"github.com/facegate/facegate-backend/internal/services"
)

// UserSummary é o formato de um usuário na listagem
type UserSummary struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDetail é o formato do detalhe de um usuário
type UserDetail struct {
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	Confidence *float64  `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Pagination descreve a página retornada pela listagem
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Skip    int   `json:"skip"`
	HasMore bool  `json:"hasMore"`
}

// ListUsersResponse é a resposta 200 da listagem de usuários
type ListUsersResponse struct {
	Success bool          `json:"success"`
	Data    ListUsersData `json:"data"`
}

// ListUsersData agrupa usuários e paginação
type ListUsersData struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// UserDetailResponse é a resposta 200 do detalhe de usuário
type UserDetailResponse struct {
	Success bool       `json:"success"`
	Data    UserDetail `json:"data"`
}

// DeleteUserResponse é a resposta 200 da deleção de usuário
type DeleteUserResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    DeleteUserData `json:"data"`
}

// DeleteUserData identifica o usuário removido
type DeleteUserData struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// ToListUsersResponse converte uma página de usuários para a resposta da listagem
func ToListUsersResponse(page *services.UserPage) ListUsersResponse {
	users := make([]UserSummary, len(page.Users))
	for i, user := range page.Users {
		users[i] = UserSummary{
			UserID:    user.ID,
			Name:      user.Name,
			ImageURL:  user.S3ImageURL,
			CreatedAt: user.CreatedAt,
		}
	}

	return ListUsersResponse{
		Success: true,
		Data: ListUsersData{
			Users: users,
			Pagination: Pagination{
				Total:   page.Total,
				Limit:   page.Limit,
				Skip:    page.Skip,
				HasMore: page.HasMore,
			},
		},
	}
}

// ToUserDetailResponse converte uma entidade User para a resposta de detalhe
func ToUserDetailResponse(user *entities.User) UserDetailResponse {
	return UserDetailResponse{
		Success: true,
		Data: UserDetail{
			UserID:     user.ID,
			Name:       user.Name,
			ImageURL:   user.S3ImageURL,
			Confidence: user.Confidence,
			CreatedAt:  user.CreatedAt,
			UpdatedAt:  user.UpdatedAt,
		},
	}
}

// ToDeleteUserResponse converte o usuário removido para a resposta da deleção
func ToDeleteUserResponse(user *entities.User) DeleteUserResponse {
	return DeleteUserResponse{
		Success: true,
		Message: "User deleted successfully",
		Data: DeleteUserData{
			UserID: user.ID,
			Name:   user.Name,
		},
	}
}
