package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"go.uber.org/zap"
)

// 错误码
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// TimestampLayout 与浏览器 toISOString 输出一致
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// now 便于测试替换
var now = time.Now

// Response 统一响应结构
type Response struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// ErrorBody 错误信息
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// FieldError 字段校验错误
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func timestamp() string {
	return now().UTC().Format(TimestampLayout)
}

// Success 返回成功响应
func Success(c *gin.Context, data any) {
	SuccessWithStatus(c, http.StatusOK, data)
}

// Created 返回201响应
func Created(c *gin.Context, data any) {
	SuccessWithStatus(c, http.StatusCreated, data)
}

// SuccessWithStatus 以指定状态码返回成功响应
func SuccessWithStatus(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Error 错误响应
func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: timestamp(),
	})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string, details any) {
	Error(c, http.StatusBadRequest, CodeValidation, message, details)
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// NotFound 404错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message, nil)
}

// Conflict 409错误响应
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message, nil)
}

// InternalServerError 500错误响应，不向客户端暴露细节
func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误", nil)
}

// isMalformedJSON 判断是否为请求体JSON格式错误
func isMalformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// BindError 请求参数绑定失败时统一返回400
func BindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	var validationErrs validator.ValidationErrors
	switch {
	case isMalformedJSON(err):
		BadRequest(c, "请求体不是合法的JSON", nil)
	case errors.As(err, &typeErr):
		BadRequest(c, fmt.Sprintf("字段 %s 类型错误", typeErr.Field), nil)
	case errors.As(err, &validationErrs):
		BadRequest(c, "参数校验失败", ValidationDetails(validationErrs))
	default:
		BadRequest(c, "参数错误", err.Error())
	}
}

// ValidationDetails 转换校验错误为字段列表
func ValidationDetails(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// HandleError 通用错误处理：JSON解析错误返回400，其余记录日志后返回500
func HandleError(c *gin.Context, err error, context string) {
	if isMalformedJSON(err) {
		BadRequest(c, "请求体不是合法的JSON", nil)
		return
	}
	_ = c.Error(err)
	logger.Error(context,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.Stack("stack"),
	)
	InternalServerError(c)
}
