package analysis

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidOutput 模型或演示数据不符合约定格式
	ErrInvalidOutput = errors.New("invalid analysis output")
)

const (
	detailNoKey       = "服务器免费额度已用完，请在'高级设置'中填写您自己的 API Key。"
	detailNoBaseUrl   = "API Base URL 配置缺失。"
	detailQuota       = "API 调用失败：服务器免费额度可能已耗尽，请尝试提供您自己的 API Key。"
	detailUpstream    = "API 调用失败：%v"
	detailBadOutput   = "模型返回的数据格式不正确：%v"
	detailInvalidBody = "请求参数错误：%v"
)

// HTTPError 携带 HTTP 状态码的业务错误，由 handler 转为 {"detail": ...}
type HTTPError struct {
	Code   int
	Detail string
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Detail, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Detail)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func newHTTPError(code int, detail string, err error) *HTTPError {
	return &HTTPError{Code: code, Detail: detail, Err: err}
}

// StatusOf 取错误对应的 HTTP 状态码和描述，未知错误按 500 处理
func StatusOf(err error) (int, string) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Code, he.Detail
	}
	return http.StatusInternalServerError, err.Error()
}
