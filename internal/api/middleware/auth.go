package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"dancespiele/pkg/crypto"
)

// Auth - middleware аутентификации административного API
//
// Назначение:
// Защищает endpoints управления порогами и журналом от неавторизованного
// доступа. Клиент предъявляет токен в заголовке Authorization: Bearer <token>,
// сервер хранит только его bcrypt-хеш (API_TOKEN_HASH).
//
// Функции:
// - Извлечение токена из заголовка Authorization
// - Сверка с bcrypt-хешем (constant-time внутри bcrypt)
// - Возврат 401 Unauthorized при отсутствии или несовпадении токена
//
// Если tokenHash пуст, аутентификация отключена и все запросы пропускаются
// (локальное развертывание).
func Auth(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "Missing Authorization header")
				return
			}

			if !crypto.TokenMatches(token, tokenHash) {
				unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization: Bearer <token>
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// unauthorized отправляет 401 в JSON формате API
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
