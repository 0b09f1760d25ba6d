package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hubtracker/scheduling-service/internal/api/handlers"
)

// Роли пользователей, приходящие из каталога пользователей
const (
	RoleAdmin   = "admin"
	RoleTrainee = "trainee"
	RoleFinance = "finance"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает X-User-ID и X-User-Role из заголовков и кладет их в
// контекст запроса. Запросы без X-User-ID отклоняются, роль по
// умолчанию - trainee. Аутентификацию выполняет внешний шлюз, сервис
// доверяет его заголовкам.
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				log.Warn("%s %s - Missing X-User-ID header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "missing X-User-ID header")
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("%s %s - Invalid X-User-ID header: %q", r.Method, r.URL.Path, userIDStr)
				handlers.RespondUnauthorized(w, "invalid X-User-ID header")
				return
			}

			role := r.Header.Get("X-User-Role")
			switch role {
			case RoleAdmin, RoleTrainee, RoleFinance:
			default:
				role = RoleTrainee
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только запросы с ролью admin
func RequireAdmin(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				log.Warn("%s %s - Admin role required", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, "admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole возвращает роль пользователя из контекста запроса
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// IsAdmin проверяет, что запрос выполнен администратором
func IsAdmin(ctx context.Context) bool {
	role, ok := GetRole(ctx)
	return ok && role == RoleAdmin
}
