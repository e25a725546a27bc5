package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"movie_backend/internal/api"
)

// Context keys for the identity attached by AuthRequired.
const (
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextIsAdmin = "isAdmin"
)

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and attaches the decoded identity claims to the request context.
// A missing bearer credential and a failed verification both yield 401,
// with distinguishable messages.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Authentication failed. No token provided."})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 3. Extract claims (payload)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
				c.Set(ContextUserID, uint(sub))
			}
			if email, ok := claims["email"].(string); ok {
				c.Set(ContextEmail, email)
			}
			if admin, ok := claims["admin"].(bool); ok {
				c.Set(ContextIsAdmin, admin)
			}
		}
		// 4. Pass control to the next handler
		c.Next()
	}
}

// AdminRequired returns a middleware that rejects requests whose authenticated
// identity does not carry the admin role. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextIsAdmin)
		if isAdmin, _ := v.(bool); !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "Action Forbidden"})
			return
		}
		c.Next()
	}
}

// IdentityRequired returns a middleware that rejects requests with no
// authenticated identity attached. It gates routes that need some identity
// but no particular role, independently of AdminRequired.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserIDFromContext はAuthRequiredが設定した認証済みユーザーIDを取り出します。
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
