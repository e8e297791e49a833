package manager

import (
	"github.com/gin-gonic/gin"
)

// RouteGroups 控制器挂载的四类路由分组。
type RouteGroups struct {
	Open  *gin.RouterGroup
	Inner *gin.RouterGroup
	Debug *gin.RouterGroup
	Ops   *gin.RouterGroup
}

// NewRouteGroups 创建博客服务使用的路由分组：公开接口与内部接口共用 /api 前缀。
func NewRouteGroups(router *gin.Engine) RouteGroups {
	return RouteGroups{
		Open:  router.Group("/api"),
		Inner: router.Group("/api/internal"),
		Debug: router.Group("/debug"),
		Ops:   router.Group("/ops"),
	}
}

// RegisterAllRoutes 注册所有路由。
// 博客服务只依赖 Controller 插件，控制器通过 adapter/http 包的 init 注册。
func RegisterAllRoutes(router *gin.Engine) {
	groups := NewRouteGroups(router)
	MustInitControllers(groups.Open, groups.Inner, groups.Debug, groups.Ops)
}
