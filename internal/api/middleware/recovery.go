package middleware

import (
	"net/http"
	"runtime/debug"

	"dancespiele/pkg/utils"
)

// Recovery - middleware восстановления после паники в handlers
//
// Перехватывает panic, логирует сообщение и stack trace, возвращает
// клиенту 500 Internal Server Error. Сервер продолжает обслуживать
// последующие запросы.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				utils.Error("panic in http handler",
					utils.Any("panic", err),
					utils.String("path", r.URL.Path),
					utils.String("stack", string(debug.Stack())),
				)

				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
