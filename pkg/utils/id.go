package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// GenerateID gera um id alfanumérico, com prefixo opcional (ex.: "view_")
func GenerateID(prefix string) (string, error) {
	id, err := gonanoid.Generate(characters, idLength)
	if err != nil {
		return "", err
	}
	return prefix + id, nil
}
