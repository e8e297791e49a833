package errno

import "net/http"

// Errno 定义业务错误码。
type Errno struct {
	Code    int
	Message string
}

// Error 实现 error 接口。
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrParameterInvalid = &Errno{Code: 400, Message: "Invalid parameter %s"}
	ErrUnauthorized     = &Errno{Code: 401, Message: "Unauthorized"}
	ErrForbidden        = &Errno{Code: 403, Message: "Forbidden"}
	ErrNotFound         = &Errno{Code: 404, Message: "Not found"}

	ErrArticleNotFound      = &Errno{Code: 404, Message: "Article not found"}
	ErrNotificationNotFound = &Errno{Code: 404, Message: "Notification not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrDatabase       = &Errno{Code: 501, Message: "Database error"}
	ErrDependency     = &Errno{Code: 503, Message: "Dependency unavailable"}
	ErrUnknown        = &Errno{Code: 510, Message: "Unknown error"}
)

// HTTPStatus maps a business code to the HTTP status written to clients.
func HTTPStatus(code int) int {
	switch {
	case code >= 400 && code < 500:
		return code
	case code == ErrDependency.Code || code == ErrDatabase.Code:
		return http.StatusServiceUnavailable
	case code >= 500:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
