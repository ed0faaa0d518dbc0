package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuslink-dev/campuslink/internal/domain"
	jwt_internal "github.com/campuslink-dev/campuslink/internal/jwt"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

func Auth(jwtService jwt_internal.JwtService, facultyOnly bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessCookie, err := r.Cookie("accessToken")
			if err == http.ErrNoCookie {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			} else if err != nil {
				log.Print(err)
				http.Error(w, "Invalid cookie", http.StatusInternalServerError)
				return
			}

			token, err := jwtService.DecodeToken(accessCookie.Value)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			uid, _ := claims["uid"].(string)
			name, _ := claims["name"].(string)
			role, _ := claims["role"].(string)
			if uid == "" {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			if facultyOnly && role != string(domain.RoleFaculty) {
				http.Error(w, "Access denied. Only for faculty", http.StatusForbidden)
				return
			}

			user := &domain.User{
				Id:   uid,
				Name: name,
				Role: domain.UserRole(role),
			}

			next(w, r.WithContext(ContextWithUser(r.Context(), user)))
		}
	}
}

func FacultyOnly(jwtService jwt_internal.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, true)
}

func NeedAuth(jwtService jwt_internal.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, false)
}

// ContextWithUser attaches the acting user, the same way Auth does.
// Handler tests use it to simulate an authenticated request.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userClaimsKey, user)
}

// GetUserFromContext returns the authenticated user, or nil outside the
// auth middleware.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
