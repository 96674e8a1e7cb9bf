package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jengzang/hotel-bookings-go/pkg/response"
)

// AdminRole is the role claim required on admin tokens
const AdminRole = "admin"

// SubjectKey is the context key holding the authenticated token subject
const SubjectKey = "admin_subject"

// AdminClaims are the claims of an admin bearer token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 admin token
func IssueAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseAdminToken validates an HS256 admin token and returns its claims
func ParseAdminToken(secret, tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Role != AdminRole {
		return nil, errors.New("token is not an admin token")
	}
	return claims, nil
}

// AdminAuth requires a valid admin bearer token. An empty secret disables the check.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.Unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := ParseAdminToken(secret, tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
