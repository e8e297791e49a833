package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-service/pkg/errno"
	"blog-service/pkg/logger"
)

// Response 统一响应结构。
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 返回 200 成功响应。
func Success(ctx *gin.Context, data interface{}) {
	SuccessWithMessage(ctx, errno.OK.Message, data)
}

// SuccessWithMessage 返回带自定义提示的成功响应。
func SuccessWithMessage(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, Response{Success: true, Code: errno.OK.Code, Message: message, Data: data})
}

// Created 返回 201 响应。
func Created(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, Response{Success: true, Code: http.StatusCreated, Message: message, Data: data})
}

// Failed 根据错误码写出失败响应。
func Failed(ctx *gin.Context, err error) {
	code, _ := errno.Resolve(err)
	FailedWithStatus(ctx, err, errno.HTTPStatus(code))
}

// FailedWithStatus 使用指定的 HTTP 状态码写出失败响应。
func FailedWithStatus(ctx *gin.Context, err error, status int) {
	code, msg := errno.Resolve(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(ctx.Request.Context()).Errorf("request failed path=%s error=%v", ctx.FullPath(), err)
	}
	ctx.AbortWithStatusJSON(status, Response{Success: false, Code: code, Message: msg})
}
