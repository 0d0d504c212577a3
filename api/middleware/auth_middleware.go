package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/artfolio/gallery-backend/api"
	"github.com/artfolio/gallery-backend/api/common"
	"github.com/gin-gonic/gin"
)

// jwtServiceAccessor 获取 JWT 服务
var jwtServiceAccessor = api.GetJWTService

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

// JWTAuth Bearer Token 认证中间件
// 验证通过后将用户身份写入请求上下文，后续处理器只依赖上下文取身份
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			c.Abort()
			return
		}

		if err := handleJwtAuth(c, parts[1]); err != nil {
			common.RespondError(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}

func handleJwtAuth(c *gin.Context, token string) error {
	jwtService := jwtServiceAccessor()
	if jwtService == nil {
		return errors.New("JWT service not initialized")
	}

	claims, err := jwtService.ParseToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return errors.New("token is not an access token")
	}

	userIDValue, ok := claims["user_id"]
	if !ok {
		return errors.New("user_id not found in token claims")
	}
	userID, ok := userIDValue.(float64)
	if !ok {
		return errors.New("user_id in token is not a valid number")
	}

	usernameValue, ok := claims["username"]
	if !ok {
		return errors.New("username not found in token claims")
	}
	username, ok := usernameValue.(string)
	if !ok {
		return errors.New("username in token is not a valid string")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	c.Set(ContextUserIDKey, uint(userID))
	c.Set(ContextUsernameKey, username)
	c.Set(ContextRoleKey, role)

	return nil
}
