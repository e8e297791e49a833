package http

import (
	"errors"
	"io"
	"sync"

	"github.com/gin-gonic/gin"

	"blog-service/ddd/application/app"
	"blog-service/ddd/application/cqe"
	"blog-service/pkg/errno"
	"blog-service/pkg/manager"
	"blog-service/pkg/restapi"
)

var (
	viewControllerOnce sync.Once
	singletonViewCtrl  ViewController
)

// ViewControllerPlugin 将浏览统计控制器注册到 manager 中。
type ViewControllerPlugin struct{}

func (p *ViewControllerPlugin) Name() string {
	return "viewController"
}

func (p *ViewControllerPlugin) MustCreateController() manager.Controller {
	viewControllerOnce.Do(func() {
		singletonViewCtrl = newViewController(app.DefaultViewApp(), app.DefaultIdentityApp())
	})
	return singletonViewCtrl
}

// ViewController 浏览统计控制器接口。
type ViewController interface {
	manager.Controller
	RecordView(ctx *gin.Context)
	Analytics(ctx *gin.Context)
}

type viewControllerImpl struct {
	views app.ViewApp
	ids   app.IdentityApp
}

func newViewController(views app.ViewApp, ids app.IdentityApp) ViewController {
	return &viewControllerImpl{views: views, ids: ids}
}

func (c *viewControllerImpl) RegisterOpenApi(group *gin.RouterGroup) {
	v1 := group.Group("blog/v1")
	{
		v1.POST("/articles/:id/view", c.RecordView)
		v1.GET("/admin/articles/:id/analytics", c.Analytics)
	}
}

func (c *viewControllerImpl) RegisterInnerApi(group *gin.RouterGroup) {}
func (c *viewControllerImpl) RegisterDebugApi(group *gin.RouterGroup) {}
func (c *viewControllerImpl) RegisterOpsApi(group *gin.RouterGroup)   {}

// RecordView 不要求登录；浏览者以客户端 IP 区分。
func (c *viewControllerImpl) RecordView(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	var req cqe.RecordViewReq
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "body"))
		return
	}
	out, err := c.views.RecordView(ctx.Request.Context(), &cqe.RecordViewCmd{
		ArticleID:   id,
		Fingerprint: ctx.ClientIP(),
		ViewerID:    optionalViewerID(ctx),
		UserAgent:   ctx.Request.UserAgent(),
		SessionID:   req.SessionID,
	})
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

func (c *viewControllerImpl) Analytics(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	out, err := c.views.GetAnalytics(ctx.Request.Context(), actor, id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}
