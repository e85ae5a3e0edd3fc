package middleware

import (
	"net/http"
	"time"

	"dancespiele/pkg/utils"
)

// Logging - middleware логирования HTTP запросов
//
// Записывает метод, путь, статус ответа, длительность обработки,
// адрес клиента и размер ответа через структурированный логгер.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func Logging(next http.Handler) http.Handler {
	log := utils.L().WithComponent("api")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter чтобы захватить status code
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		log.Info("http request",
			utils.String("method", r.Method),
			utils.String("path", r.URL.Path),
			utils.Int("status", wrapped.statusCode),
			utils.Duration("duration", time.Since(start)),
			utils.String("remote", r.RemoteAddr),
			utils.Int64("bytes", wrapped.written),
		)
	})
}
