package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alumninet/alumninet/internal/entity"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor"

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository) *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// RequireAuth resolves the bearer token into an explicit Actor and stores
// it in the request context. The user row is re-read on every request so a
// deactivated account or disabled university locks out immediately, not at
// token expiry.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		if !user.IsActive() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
			c.Abort()
			return
		}

		if user.Role != entity.RoleSuperadmin {
			if user.University == nil || !user.University.IsEnabled() {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "university access is disabled"})
				c.Abort()
				return
			}
		}

		c.Set(actorKey, entity.Actor{
			ID:           user.ID,
			Name:         user.Name,
			Role:         user.Role,
			UniversityID: user.UniversityID,
		})
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := ActorFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}

// ActorFromContext returns the Actor stored by RequireAuth.
func ActorFromContext(c *gin.Context) (entity.Actor, error) {
	value, exists := c.Get(actorKey)
	if !exists {
		return entity.Actor{}, apperror.ErrUnauthorized
	}

	actor, ok := value.(entity.Actor)
	if !ok {
		return entity.Actor{}, apperror.ErrUnauthorized
	}

	return actor, nil
}
