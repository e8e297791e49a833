package http

import (
	"sync"

	"github.com/gin-gonic/gin"

	"blog-service/ddd/application/app"
	"blog-service/ddd/application/cqe"
	"blog-service/pkg/errno"
	"blog-service/pkg/manager"
	"blog-service/pkg/restapi"
)

var (
	articleControllerOnce sync.Once
	singletonArticleCtrl  ArticleController
)

// ArticleControllerPlugin 将文章控制器注册到 manager 中。
type ArticleControllerPlugin struct{}

func (p *ArticleControllerPlugin) Name() string {
	return "articleController"
}

func (p *ArticleControllerPlugin) MustCreateController() manager.Controller {
	articleControllerOnce.Do(func() {
		singletonArticleCtrl = newArticleController(app.DefaultArticleApp(), app.DefaultTrendingApp(), app.DefaultIdentityApp())
	})
	return singletonArticleCtrl
}

// ArticleController 文章控制器接口。
type ArticleController interface {
	manager.Controller
	ListPublished(ctx *gin.Context)
	Trending(ctx *gin.Context)
	GetBySlug(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	AdminList(ctx *gin.Context)
	AdminGet(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type articleControllerImpl struct {
	articles app.ArticleApp
	trending app.TrendingApp
	ids      app.IdentityApp
}

func newArticleController(articles app.ArticleApp, trending app.TrendingApp, ids app.IdentityApp) ArticleController {
	return &articleControllerImpl{articles: articles, trending: trending, ids: ids}
}

// RegisterOpenApi 注册公开接口与需要登录的管理接口。
func (c *articleControllerImpl) RegisterOpenApi(group *gin.RouterGroup) {
	v1 := group.Group("blog/v1")
	{
		v1.GET("/articles", c.ListPublished)
		v1.GET("/articles/trending", c.Trending)
		v1.GET("/articles/slug/:slug", c.GetBySlug)
		v1.GET("/articles/:id", c.GetByID)

		v1.GET("/admin/articles", c.AdminList)
		v1.POST("/admin/articles", c.Create)
		v1.GET("/admin/articles/:id", c.AdminGet)
		v1.PUT("/admin/articles/:id", c.Update)
		v1.DELETE("/admin/articles/:id", c.Delete)
	}
}

func (c *articleControllerImpl) RegisterInnerApi(group *gin.RouterGroup) {}
func (c *articleControllerImpl) RegisterDebugApi(group *gin.RouterGroup) {}
func (c *articleControllerImpl) RegisterOpsApi(group *gin.RouterGroup)   {}

func (c *articleControllerImpl) ListPublished(ctx *gin.Context) {
	var req cqe.ListArticlesReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "query"))
		return
	}
	restapi.Success(ctx, c.articles.ListPublished(ctx.Request.Context(), &req))
}

func (c *articleControllerImpl) Trending(ctx *gin.Context) {
	var req cqe.TrendingReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "query"))
		return
	}
	restapi.Success(ctx, c.trending.ListTrending(ctx.Request.Context(), &req))
}

func (c *articleControllerImpl) GetBySlug(ctx *gin.Context) {
	out, err := c.articles.GetPublishedBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

func (c *articleControllerImpl) GetByID(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	out, err := c.articles.GetPublishedByID(ctx.Request.Context(), id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

func (c *articleControllerImpl) AdminList(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	list, err := c.articles.ListForAdmin(ctx.Request.Context(), actor)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, list)
}

func (c *articleControllerImpl) AdminGet(ctx *gin.Context) {
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
	out, err := c.articles.GetForAdmin(ctx.Request.Context(), actor, id)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

func (c *articleControllerImpl) Create(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	var req cqe.CreateArticleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "body"))
		return
	}
	out, err := c.articles.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Created(ctx, "Article created successfully", out)
}

func (c *articleControllerImpl) Update(ctx *gin.Context) {
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
	var req cqe.UpdateArticleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "body"))
		return
	}
	out, err := c.articles.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.SuccessWithMessage(ctx, "Article updated successfully", out)
}

func (c *articleControllerImpl) Delete(ctx *gin.Context) {
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
	if err := c.articles.Delete(ctx.Request.Context(), actor, id); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.SuccessWithMessage(ctx, "Article deleted successfully", nil)
}
