// Package errs 定义客户端核心的错误分类
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误码
const (
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeBelowMinimum          = "BELOW_MINIMUM"
	CodeInvalidArgument       = "INVALID_ARGUMENT"
	CodeFormatError           = "FORMAT_ERROR"
	CodeNotRecipient          = "NOT_RECIPIENT"
	CodeNotFound              = "NOT_FOUND"
	CodeStateInconsistency    = "STATE_INCONSISTENCY"
	CodeContributionFailed    = "CONTRIBUTION_FAILED"
	CodeWithdrawRequestFailed = "WITHDRAW_REQUEST_FAILED"
	CodeVoteFailed            = "VOTE_FAILED"
	CodeWithdrawFailed        = "WITHDRAW_FAILED"
	CodeFundraisingFailed     = "FUNDRAISING_FAILED"
	CodeExternalCallFailed    = "EXTERNAL_CALL_FAILED"
)

// 预定义错误，用于 errors.Is 比较
var (
	ErrInvalidAmount         = &Error{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrBelowMinimum          = &Error{Code: CodeBelowMinimum, Message: "amount below minimum contribution"}
	ErrInvalidArgument       = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrFormat                = &Error{Code: CodeFormatError, Message: "unexpected record format"}
	ErrNotRecipient          = &Error{Code: CodeNotRecipient, Message: "only the recipient can withdraw"}
	ErrNotFound              = &Error{Code: CodeNotFound, Message: "not found"}
	ErrStateInconsistency    = &Error{Code: CodeStateInconsistency, Message: "state inconsistency"}
	ErrContributionFailed    = &Error{Code: CodeContributionFailed, Message: "contribution failed"}
	ErrWithdrawRequestFailed = &Error{Code: CodeWithdrawRequestFailed, Message: "withdraw request failed"}
	ErrVoteFailed            = &Error{Code: CodeVoteFailed, Message: "vote failed"}
	ErrWithdrawFailed        = &Error{Code: CodeWithdrawFailed, Message: "withdraw failed"}
	ErrFundraisingFailed     = &Error{Code: CodeFundraisingFailed, Message: "start fundraising failed"}
	ErrExternalCallFailed    = &Error{Code: CodeExternalCallFailed, Message: "external call failed"}
)

// Error 业务错误
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 按错误码比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建错误
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf 格式化创建错误
func Newf(code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装底层错误，消息取底层错误原文
func Wrap(code string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: cause.Error(), Cause: cause}
}

// InvalidAmount 金额非法
func InvalidAmount(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidAmount, format, args...)
}

// FormatError 链上数据格式异常
func FormatError(format string, args ...interface{}) *Error {
	return Newf(CodeFormatError, format, args...)
}

// CodeOf 提取错误码，非业务错误返回空串
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MessageOf 提取面向用户的消息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsValidation 本地校验错误，不会到达外部调用
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidAmount, CodeBelowMinimum, CodeInvalidArgument, CodeNotRecipient:
		return true
	}
	return false
}

// IsExternal 外部合约调用失败
func IsExternal(err error) bool {
	switch CodeOf(err) {
	case CodeContributionFailed, CodeWithdrawRequestFailed, CodeVoteFailed,
		CodeWithdrawFailed, CodeFundraisingFailed, CodeExternalCallFailed:
		return true
	}
	return false
}

// HTTPStatus 错误码对应的 HTTP 状态
func HTTPStatus(err error) int {
	switch code := CodeOf(err); {
	case IsValidation(err) && code != CodeNotRecipient:
		return http.StatusBadRequest
	case code == CodeNotRecipient:
		return http.StatusForbidden
	case code == CodeNotFound:
		return http.StatusNotFound
	case code == CodeStateInconsistency:
		return http.StatusConflict
	case code == CodeFormatError, IsExternal(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
