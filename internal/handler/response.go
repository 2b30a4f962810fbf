package handler

import (
	"github.com/blues/crowdmint/internal/errs"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ErrResponse 按错误码选择状态码
func ErrResponse(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), Response{
		Success: false,
		Code:    errs.CodeOf(err),
		Message: errs.MessageOf(err),
		Data:    nil,
	})
}
