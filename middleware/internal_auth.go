package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalAuthMiddleware 内部接口认证中间件
// 口令由入口处从配置注入，空口令时内部接口不可用
func InternalAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取请求头中的认证信息
		authToken := c.GetHeader("X-Internal-Auth")

		// 验证认证信息
		if token == "" || authToken != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
			})
			return
		}

		c.Next()
	}
}
