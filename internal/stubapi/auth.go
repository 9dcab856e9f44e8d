package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gymdesk/console/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by the auth middleware.
const (
	contextUserIDKey   = "userID"
	contextUserRoleKey = "userRole"
)

// jwtClaims is the token payload: subject id plus role.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// tokenIssuer mints the HS256 bearer tokens the contract's login
// endpoints return.
type tokenIssuer struct {
	secret string
	ttl    time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) tokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return tokenIssuer{secret: secret, ttl: ttl}
}

func (i tokenIssuer) issue(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			Issuer:    "gymdesk-stub",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(i.secret))
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// authMiddleware validates the bearer token and stashes the caller's
// identity in the request context.
func authMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
				return
			}
			abortWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserRoleKey, claims.Role)
		c.Next()
	}
}

// requireRole allows only callers whose token carries one of the roles.
// Must run after authMiddleware.
func requireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(contextUserRoleKey)
		role, ok := raw.(domain.Role)
		if !exists || !ok {
			abortWithError(c, http.StatusInternalServerError, "User role not found in context")
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role %q does not have permission", role))
	}
}

func callerID(c *gin.Context) string {
	raw, _ := c.Get(contextUserIDKey)
	id, _ := raw.(string)
	return id
}
