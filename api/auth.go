package api

import (
	"github.com/artfolio/gallery-backend/internal/auth"
)

var jwtService *auth.JWTService

// SetJWTService 注入全局 JWT 服务，启动时调用一次
func SetJWTService(service *auth.JWTService) {
	jwtService = service
}

// GetJWTService 获取全局 JWT 服务
func GetJWTService() *auth.JWTService {
	return jwtService
}
