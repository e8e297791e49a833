package http

import "blog-service/pkg/manager"

func init() {
	manager.RegisterControllerPlugin(&ArticleControllerPlugin{})
	manager.RegisterControllerPlugin(&ViewControllerPlugin{})
	manager.RegisterControllerPlugin(&NotificationControllerPlugin{})
}
