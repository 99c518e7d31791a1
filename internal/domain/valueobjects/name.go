package valueobjects

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName   = errors.New("name is required")
	ErrNameTooLong = errors.New("name is too long")
)

const maxNameLength = 100

// PersonName é um value object que garante que nomes sejam sempre
// não-vazios e normalizados (sem espaços nas bordas)
type PersonName struct {
	value string
}

// NewPersonName cria um novo PersonName validado
func NewPersonName(name string) (PersonName, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return PersonName{}, ErrEmptyName
	}

	if len(name) > maxNameLength {
		return PersonName{}, ErrNameTooLong
	}

	return PersonName{value: name}, nil
}

// String retorna o valor do nome
func (n PersonName) String() string {
	return n.value
}

// Slug retorna o nome em minúsculas com espaços trocados por hífens,
// adequado para compor nomes de arquivo
func (n PersonName) Slug() string {
	return strings.ToLower(strings.Join(strings.Fields(n.value), "-"))
}
