package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"blog-service/ddd/application/cqe"
	"blog-service/ddd/application/dto"
	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/domain/service"
	"blog-service/ddd/infrastructure/database/persistence"
	"blog-service/pkg/assert"
	"blog-service/pkg/config"
	"blog-service/pkg/errno"
	"blog-service/pkg/htmltext"
	"blog-service/pkg/logger"
)

const excerptRunes = 200

// ArticleApp 文章应用服务：审批状态机以及公开读取。
type ArticleApp interface {
	Create(ctx context.Context, actor *entity.Actor, req *cqe.CreateArticleReq) (*dto.ArticleDto, error)
	Update(ctx context.Context, actor *entity.Actor, id uint64, req *cqe.UpdateArticleReq) (*dto.ArticleDto, error)
	Delete(ctx context.Context, actor *entity.Actor, id uint64) error

	GetPublishedByID(ctx context.Context, id uint64) (*dto.ArticleDto, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*dto.ArticleDto, error)
	ListPublished(ctx context.Context, req *cqe.ListArticlesReq) []dto.ArticleDto

	GetForAdmin(ctx context.Context, actor *entity.Actor, id uint64) (*dto.ArticleDto, error)
	ListForAdmin(ctx context.Context, actor *entity.Actor) ([]dto.ArticleDto, error)
}

// ArticleAppDeps 文章应用服务的依赖。
type ArticleAppDeps struct {
	Articles      drepo.ArticleRepository
	Views         drepo.ViewEventRepository
	Notifications drepo.NotificationRepository
	Notifier      NotificationApp
	Config        config.BlogConfig
	Now           func() time.Time
}

type articleAppImpl struct {
	articles      drepo.ArticleRepository
	views         drepo.ViewEventRepository
	notifications drepo.NotificationRepository
	notifier      NotificationApp
	cfg           config.BlogConfig
	now           func() time.Time
}

var (
	articleAppOnce sync.Once
	articleApp     ArticleApp
)

// DefaultArticleApp 返回默认的应用服务实现。
func DefaultArticleApp() ArticleApp {
	articleAppOnce.Do(func() {
		assert.NotCircular()
		articleApp = NewArticleApp(ArticleAppDeps{
			Articles:      persistence.NewArticleRepository(),
			Views:         persistence.NewViewEventRepository(),
			Notifications: persistence.NewNotificationRepository(),
			Notifier:      DefaultNotificationApp(),
			Config:        config.GetGlobalConfig().Blog,
		})
	})
	return articleApp
}

func NewArticleApp(deps ArticleAppDeps) ArticleApp {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &articleAppImpl{
		articles:      deps.Articles,
		views:         deps.Views,
		notifications: deps.Notifications,
		notifier:      deps.Notifier,
		cfg:           deps.Config.Normalized(),
		now:           now,
	}
}

func requireManage(actor *entity.Actor) error {
	if actor == nil {
		return errno.ErrUnauthorized
	}
	if !service.CanManage(actor) {
		return errno.ErrForbidden
	}
	return nil
}

func requireApprove(actor *entity.Actor) error {
	if actor == nil {
		return errno.ErrUnauthorized
	}
	if !service.CanApprove(actor) {
		return errno.ErrForbidden
	}
	return nil
}

// Create 创建文章。无审批权限的作者只能创建草稿，并通知所有审批人。
func (a *articleAppImpl) Create(ctx context.Context, actor *entity.Actor, req *cqe.CreateArticleReq) (*dto.ArticleDto, error) {
	if err := requireManage(actor); err != nil {
		return nil, err
	}
	article, err := req.ToArticle()
	if err != nil {
		return nil, err
	}
	slug, err := service.UniqueSlug(ctx, a.articles, article.Title, 0)
	if err != nil {
		return nil, errno.Dependency(err, "generate slug")
	}
	article.Slug = slug
	article.AuthorID = actor.ID
	if article.Excerpt == "" {
		article.Excerpt = htmltext.Excerpt(article.Body, excerptRunes)
	}

	canApprove := service.CanApprove(actor)
	article.SetApproval(canApprove && req.RequestedApproval(), a.now())

	if err := a.articles.Create(ctx, article); err != nil {
		return nil, errno.Dependency(err, "create article")
	}
	logger.WithContext(ctx).Infof("article created id=%d slug=%s actor_id=%d status=%s", article.ID, article.Slug, actor.ID, article.Status())

	if !canApprove {
		a.notify(ctx, article, entity.NotificationArticleCreated, actor)
	}
	out := dto.NewArticleDto(article)
	return &out, nil
}

// Update 更新文章。审批人的审核决定总是生效；非审批人的实质性修改会撤销审核并通知审批人。
func (a *articleAppImpl) Update(ctx context.Context, actor *entity.Actor, id uint64, req *cqe.UpdateArticleReq) (*dto.ArticleDto, error) {
	if err := requireManage(actor); err != nil {
		return nil, err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return nil, err
	}
	article, err := a.articles.GetByID(ctx, id)
	if err != nil {
		return nil, errno.Dependency(err, "load article")
	}
	if article == nil {
		return nil, errno.ErrArticleNotFound
	}

	// An empty excerpt asks for the derived one, so resending it is not an edit.
	if patch.Excerpt != nil && strings.TrimSpace(*patch.Excerpt) == "" {
		body := article.Body
		if patch.Body != nil {
			body = *patch.Body
		}
		derived := htmltext.Excerpt(body, excerptRunes)
		patch.Excerpt = &derived
	}

	// Both checks run against the stored state before the patch is applied.
	contentChanged := patch.ContentChanged(article)
	titleChanged := patch.TitleChanged(article)

	patch.Apply(article)
	if titleChanged {
		slug, err := service.UniqueSlug(ctx, a.articles, article.Title, article.ID)
		if err != nil {
			return nil, errno.Dependency(err, "generate slug")
		}
		article.Slug = slug
	}

	canApprove := service.CanApprove(actor)
	switch {
	case canApprove:
		approved := article.Approved()
		if patch.Approved != nil {
			approved = *patch.Approved
		}
		article.SetApproval(approved, a.now())
	case contentChanged:
		article.SetApproval(false, a.now())
	}

	if err := a.articles.Update(ctx, article); err != nil {
		return nil, errno.Dependency(err, "update article")
	}
	logger.WithContext(ctx).Infof("article updated id=%d actor_id=%d content_changed=%v status=%s", article.ID, actor.ID, contentChanged, article.Status())

	if !canApprove && contentChanged {
		a.notify(ctx, article, entity.NotificationArticleUpdated, actor)
	}
	out := dto.NewArticleDto(article)
	return &out, nil
}

// Delete 删除文章并级联删除浏览记录与相关通知。各步骤独立执行，中途失败时可能部分完成。
func (a *articleAppImpl) Delete(ctx context.Context, actor *entity.Actor, id uint64) error {
	if err := requireApprove(actor); err != nil {
		return err
	}
	article, err := a.articles.GetByID(ctx, id)
	if err != nil {
		return errno.Dependency(err, "load article")
	}
	if article == nil {
		return errno.ErrArticleNotFound
	}
	if err := a.views.DeleteByArticle(ctx, id); err != nil {
		return errno.Dependency(err, "delete article views")
	}
	if err := a.notifications.DeleteByRelated(ctx, id, entity.RelatedTypeArticle); err != nil {
		return errno.Dependency(err, "delete article notifications")
	}
	if err := a.articles.Delete(ctx, id); err != nil {
		return errno.Dependency(err, "delete article")
	}
	logger.WithContext(ctx).Infof("article deleted id=%d actor_id=%d", id, actor.ID)
	return nil
}

func (a *articleAppImpl) notify(ctx context.Context, article *entity.Article, action entity.NotificationType, actor *entity.Actor) {
	if a.notifier == nil {
		return
	}
	if res := a.notifier.NotifyApprovers(ctx, article, action, actor); res.Err() != nil {
		logger.WithContext(ctx).Warnf("article notification incomplete article_id=%d action=%s error=%v", article.ID, action, res.Err())
	}
}

func (a *articleAppImpl) GetPublishedByID(ctx context.Context, id uint64) (*dto.ArticleDto, error) {
	article, err := a.articles.GetByID(ctx, id)
	return a.publicView(article, err)
}

func (a *articleAppImpl) GetPublishedBySlug(ctx context.Context, slug string) (*dto.ArticleDto, error) {
	article, err := a.articles.GetBySlug(ctx, slug)
	return a.publicView(article, err)
}

func (a *articleAppImpl) publicView(article *entity.Article, err error) (*dto.ArticleDto, error) {
	if err != nil {
		return nil, errno.Dependency(err, "load article")
	}
	if article == nil || !article.IsPublic() {
		return nil, errno.ErrArticleNotFound
	}
	out := dto.NewArticleDto(article)
	return &out, nil
}

// ListPublished 公开列表；search 优先于 tag。查询失败时返回空列表。
func (a *articleAppImpl) ListPublished(ctx context.Context, req *cqe.ListArticlesReq) []dto.ArticleDto {
	if req == nil {
		req = &cqe.ListArticlesReq{}
	}
	limit := cqe.NormalizeLimit(req.Limit, a.cfg.DefaultListLimit, a.cfg.MaxListLimit)

	var (
		list []*entity.Article
		err  error
	)
	switch {
	case req.Search != "":
		list, err = a.articles.Search(ctx, req.Search, limit)
	case req.Tag != "":
		list, err = a.articles.ListByTag(ctx, req.Tag, limit)
	default:
		list, err = a.articles.ListPublished(ctx, limit)
	}
	if err != nil {
		logger.WithContext(ctx).Warnf("article: public list failed search=%q tag=%q error=%v", req.Search, req.Tag, err)
		return []dto.ArticleDto{}
	}
	return dto.NewArticleDtos(list)
}

func (a *articleAppImpl) GetForAdmin(ctx context.Context, actor *entity.Actor, id uint64) (*dto.ArticleDto, error) {
	if err := requireManage(actor); err != nil {
		return nil, err
	}
	article, err := a.articles.GetByID(ctx, id)
	if err != nil {
		return nil, errno.Dependency(err, "load article")
	}
	if article == nil {
		return nil, errno.ErrArticleNotFound
	}
	out := dto.NewArticleDto(article)
	return &out, nil
}

// ListForAdmin 只要求已认证，不校验管理权限。
func (a *articleAppImpl) ListForAdmin(ctx context.Context, actor *entity.Actor) ([]dto.ArticleDto, error) {
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	list, err := a.articles.ListAllForAdmin(ctx)
	if err != nil {
		logger.WithContext(ctx).Warnf("article: admin list failed actor_id=%d error=%v", actor.ID, err)
		return []dto.ArticleDto{}, nil
	}
	return dto.NewArticleDtos(list), nil
}
