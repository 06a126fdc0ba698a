package middleware

import (
	"github.com/notevault/note-vault-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfo 注入应用名称和版本信息
func AppInfo(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
