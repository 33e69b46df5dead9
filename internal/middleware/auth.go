package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/tripmarket/pkg/response"
)

// ContextUserKey gin 上下文中的当前用户ID键
const ContextUserKey = "user_id"

// Claims JWT 载荷
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken 为用户签发 token（会话签发本身是外部协作方，这里仅供测试与工具使用）
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseBearer(c *gin.Context, secret string) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(h, "Bearer "), &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// RequireAuth 强制要求有效身份
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := parseBearer(c, secret)
		if !ok {
			response.Unauthorized(c, "invalid or missing token")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, uid)
		c.Next()
	}
}

// OptionalAuth 身份可选：匿名请求放行但不注入用户（未读角标接口匿名返回 0 而非报错）
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := parseBearer(c, secret); ok {
			c.Set(ContextUserKey, uid)
		}
		c.Next()
	}
}

// CurrentUser 取当前用户ID；匿名返回 ""
func CurrentUser(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
