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
	notificationControllerOnce sync.Once
	singletonNotificationCtrl  NotificationController
)

// NotificationControllerPlugin 将通知控制器注册到共享的 manager 中。
type NotificationControllerPlugin struct{}

func (p *NotificationControllerPlugin) Name() string {
	return "notificationController"
}

func (p *NotificationControllerPlugin) MustCreateController() manager.Controller {
	notificationControllerOnce.Do(func() {
		singletonNotificationCtrl = newNotificationController(app.DefaultNotificationApp(), app.DefaultIdentityApp())
	})
	return singletonNotificationCtrl
}

// NotificationController 控制器接口。
type NotificationController interface {
	manager.Controller
	List(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
}

type notificationControllerImpl struct {
	app app.NotificationApp
	ids app.IdentityApp
}

func newNotificationController(notifications app.NotificationApp, ids app.IdentityApp) NotificationController {
	return &notificationControllerImpl{app: notifications, ids: ids}
}

// RegisterOpenApi 注册当前用户的通知接口，用户只能访问自己的通知。
func (c *notificationControllerImpl) RegisterOpenApi(group *gin.RouterGroup) {
	v1 := group.Group("blog/v1")
	{
		v1.GET("/notifications", c.List)
		v1.GET("/notifications/unread-count", c.UnreadCount)
		v1.PUT("/notifications/read-all", c.MarkAllRead)
		v1.PUT("/notifications/:id/read", c.MarkRead)
	}
}

func (c *notificationControllerImpl) RegisterInnerApi(group *gin.RouterGroup) {}
func (c *notificationControllerImpl) RegisterDebugApi(group *gin.RouterGroup) {}
func (c *notificationControllerImpl) RegisterOpsApi(group *gin.RouterGroup)   {}

// List 列出当前用户的通知列表以及未读数量。
func (c *notificationControllerImpl) List(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	var req cqe.ListNotificationsReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		restapi.Failed(ctx, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, "query"))
		return
	}
	resp, err := c.app.ListNotifications(ctx.Request.Context(), actor, &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

func (c *notificationControllerImpl) UnreadCount(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	resp, err := c.app.UnreadCount(ctx.Request.Context(), actor)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// MarkRead 将指定通知标记为已读。
func (c *notificationControllerImpl) MarkRead(ctx *gin.Context) {
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
	if err := c.app.MarkRead(ctx.Request.Context(), actor, id); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.SuccessWithMessage(ctx, "Notification marked as read", nil)
}

func (c *notificationControllerImpl) MarkAllRead(ctx *gin.Context) {
	actor, err := requireActor(ctx, c.ids)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	resp, err := c.app.MarkAllRead(ctx.Request.Context(), actor)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.SuccessWithMessage(ctx, "All notifications marked as read", resp)
}
