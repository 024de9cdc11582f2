package mw

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/model"
)

// Context keys set by the Auth middleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// TokenIssuer signs and validates the JWTs used for API authentication.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenIssuer builds a TokenIssuer from the auth configuration.
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
	}
}

// Issue creates a signed token carrying the user's id and role.
func (ti *TokenIssuer) Issue(userID int64, role model.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": string(role),
		"exp":  time.Now().Add(ti.ttl).Unix(),
		"iss":  ti.issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// parse validates the token signature and expiry and extracts the claims.
func (ti *TokenIssuer) parse(tokenString string) (userID int64, role model.Role, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	}, jwt.WithIssuer(ti.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, "", errors.New("token has no subject")
	}
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return 0, "", fmt.Errorf("invalid subject %q: %w", sub, err)
	}

	roleClaim, _ := claims["role"].(string)
	if roleClaim == "" {
		return 0, "", errors.New("token has no role")
	}

	return userID, model.Role(roleClaim), nil
}

// Auth is a middleware requiring a valid Bearer token. On success the user
// id and role are stored on the request context.
func (ti *TokenIssuer) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, role, err := ti.parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole is a middleware allowing only the listed roles past. It must
// run after Auth.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CtxRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// UserID returns the authenticated user's id from the request context.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(CtxUserID)
	userID, _ := id.(int64)
	return userID
}

// RoleOf returns the authenticated user's role from the request context.
func RoleOf(c *gin.Context) model.Role {
	r, _ := c.Get(CtxRole)
	role, _ := r.(model.Role)
	return role
}
