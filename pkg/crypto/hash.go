package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hash.go: хеширование административного API токена (bcrypt)
//
// В окружении хранится только bcrypt-хеш токена (API_TOKEN_HASH);
// сам токен предъявляется клиентом в заголовке Authorization.

// Ошибки хеширования
var (
	ErrEmptyToken    = errors.New("token cannot be empty")
	ErrTokenMismatch = errors.New("token does not match hash")
	ErrInvalidHash   = errors.New("invalid token hash format")
	ErrTokenTooLong  = errors.New("token exceeds maximum length of 72 bytes")
)

// DefaultCost - стоимость хеширования по умолчанию
const DefaultCost = 12

// MaxTokenLength - ограничение bcrypt на длину входа (72 байта)
const MaxTokenLength = 72

// HashToken хеширует токен с использованием bcrypt
// Соль генерируется автоматически
func HashToken(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}
	if len(token) > MaxTokenLength {
		return "", ErrTokenTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyToken проверяет соответствие токена хешу
// Сравнение constant-time, защита от timing attacks обеспечивается bcrypt
func VerifyToken(token, hash string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if hash == "" {
		return ErrInvalidHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrTokenMismatch
		}
		return ErrInvalidHash
	}
	return nil
}

// TokenMatches - удобная bool-обёртка над VerifyToken
func TokenMatches(token, hash string) bool {
	return VerifyToken(token, hash) == nil
}
