package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"blog-service/ddd/application/cqe"
	"blog-service/ddd/application/dto"
	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/domain/service"
	"blog-service/ddd/infrastructure/database/persistence"
	"blog-service/pkg/assert"
	"blog-service/pkg/config"
	"blog-service/pkg/errno"
	"blog-service/pkg/logger"
)

// NotificationApp 应用服务接口，负责审批通知的扇出以及通知查询。
type NotificationApp interface {
	NotifyApprovers(ctx context.Context, article *entity.Article, action entity.NotificationType, actor *entity.Actor) *FanoutResult
	ListNotifications(ctx context.Context, actor *entity.Actor, req *cqe.ListNotificationsReq) (*dto.ListNotificationsResponse, error)
	UnreadCount(ctx context.Context, actor *entity.Actor) (*dto.UnreadCountDto, error)
	MarkRead(ctx context.Context, actor *entity.Actor, id uint64) error
	MarkAllRead(ctx context.Context, actor *entity.Actor) (*dto.MarkAllReadDto, error)
}

// FanoutResult 一次扇出的结果；单个接收者失败不影响其他接收者。
type FanoutResult struct {
	Recipients int
	Delivered  int
	Failures   map[uint64]error
	ResolveErr error
}

// Err joins every failure of the fan-out, or returns nil.
func (r *FanoutResult) Err() error {
	if r == nil {
		return nil
	}
	errs := make([]error, 0, len(r.Failures)+1)
	if r.ResolveErr != nil {
		errs = append(errs, fmt.Errorf("resolve approvers: %w", r.ResolveErr))
	}
	for id, err := range r.Failures {
		errs = append(errs, fmt.Errorf("recipient %d: %w", id, err))
	}
	return errors.Join(errs...)
}

// NotificationAppDeps 通知应用服务的依赖。
type NotificationAppDeps struct {
	Notifications drepo.NotificationRepository
	Actors        drepo.ActorRepository
	Config        config.BlogConfig
	Now           func() time.Time
}

type notificationAppImpl struct {
	repo      drepo.NotificationRepository
	approvers *service.ApproverResolver
	cfg       config.BlogConfig
	now       func() time.Time
}

var (
	notificationAppOnce sync.Once
	notificationApp     NotificationApp
)

// DefaultNotificationApp 返回默认的应用服务实现。
func DefaultNotificationApp() NotificationApp {
	notificationAppOnce.Do(func() {
		assert.NotCircular()
		notificationApp = NewNotificationApp(NotificationAppDeps{
			Notifications: persistence.NewNotificationRepository(),
			Actors:        persistence.NewActorRepository(),
			Config:        config.GetGlobalConfig().Blog,
		})
	})
	return notificationApp
}

// NewNotificationApp 使用显式依赖构建应用服务。
func NewNotificationApp(deps NotificationAppDeps) NotificationApp {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &notificationAppImpl{
		repo:      deps.Notifications,
		approvers: service.NewApproverResolver(deps.Actors),
		cfg:       deps.Config.Normalized(),
		now:       now,
	}
}

func notificationText(action entity.NotificationType, actorName, articleTitle string) (string, string) {
	if action == entity.NotificationArticleUpdated {
		return "Article updated - requires re-approval",
			fmt.Sprintf("%s updated the article \"%s\" and it requires re-approval", actorName, articleTitle)
	}
	return "New article pending approval",
		fmt.Sprintf("%s created a new article \"%s\" that requires approval", actorName, articleTitle)
}

func (a *notificationAppImpl) NotifyApprovers(ctx context.Context, article *entity.Article, action entity.NotificationType, actor *entity.Actor) *FanoutResult {
	log := logger.WithContext(ctx)
	approvers, err := a.approvers.ListApprovers(ctx)
	if err != nil {
		log.Errorf("notification: resolve approvers failed article_id=%d error=%v", article.ID, err)
		return &FanoutResult{ResolveErr: err}
	}
	if len(approvers) == 0 {
		log.Infof("notification: no approvers to notify article_id=%d action=%s", article.ID, action)
		return &FanoutResult{}
	}

	title, message := notificationText(action, actor.DisplayName(), article.Title)
	result := &FanoutResult{Recipients: len(approvers), Failures: map[uint64]error{}}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(a.cfg.NotifyConcurrency)
	for _, approver := range approvers {
		recipient := approver.ID
		g.Go(func() error {
			n := entity.NewArticleNotification(recipient, action, title, message, article.ID)
			n.CreatedAt = a.now()
			err := a.repo.Create(ctx, n)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures[recipient] = err
				return nil
			}
			result.Delivered++
			return nil
		})
	}
	_ = g.Wait()

	if len(result.Failures) > 0 {
		log.Warnf("notification: fan-out partially failed article_id=%d action=%s delivered=%d failed=%d error=%v",
			article.ID, action, result.Delivered, len(result.Failures), result.Err())
	} else {
		log.Infof("notification: fan-out done article_id=%d action=%s recipients=%d", article.ID, action, result.Delivered)
	}
	return result
}

func (a *notificationAppImpl) ListNotifications(ctx context.Context, actor *entity.Actor, req *cqe.ListNotificationsReq) (*dto.ListNotificationsResponse, error) {
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	if req == nil {
		req = &cqe.ListNotificationsReq{}
	}
	req.Normalize(a.cfg.DefaultListLimit, a.cfg.MaxListLimit)

	resp := &dto.ListNotificationsResponse{
		Notifications: []dto.NotificationDto{},
		Page:          req.Page,
		Limit:         req.Limit,
	}
	list, err := a.repo.ListByUser(ctx, actor.ID, req.UnreadOnly, req.Offset(), req.Limit)
	if err != nil {
		logger.WithContext(ctx).Warnf("notification: list failed user_id=%d error=%v", actor.ID, err)
		return resp, nil
	}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, dto.NewNotificationDto(n))
	}
	unread, err := a.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		logger.WithContext(ctx).Warnf("notification: count unread failed user_id=%d error=%v", actor.ID, err)
	}
	resp.UnreadCount = unread
	return resp, nil
}

func (a *notificationAppImpl) UnreadCount(ctx context.Context, actor *entity.Actor) (*dto.UnreadCountDto, error) {
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	unread, err := a.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, errno.Dependency(err, "count unread notifications")
	}
	return &dto.UnreadCountDto{UnreadCount: unread}, nil
}

// MarkRead 仅允许通知的接收者标记；不存在或不属于该用户时返回 404，已读时为空操作。
func (a *notificationAppImpl) MarkRead(ctx context.Context, actor *entity.Actor, id uint64) error {
	if actor == nil {
		return errno.ErrUnauthorized
	}
	n, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return errno.Dependency(err, "load notification")
	}
	if n == nil || n.UserID != actor.ID {
		return errno.ErrNotificationNotFound
	}
	now := a.now()
	if !n.MarkRead(now) {
		return nil
	}
	if err := a.repo.MarkRead(ctx, n.ID, actor.ID, now); err != nil {
		return errno.Dependency(err, "mark notification read")
	}
	return nil
}

func (a *notificationAppImpl) MarkAllRead(ctx context.Context, actor *entity.Actor) (*dto.MarkAllReadDto, error) {
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	updated, err := a.repo.MarkAllRead(ctx, actor.ID, a.now())
	if err != nil {
		return nil, errno.Dependency(err, "mark all notifications read")
	}
	return &dto.MarkAllReadDto{Updated: updated}, nil
}
