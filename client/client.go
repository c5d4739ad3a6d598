// Package client 命理分析服务的 Go 客户端，一次分析对应一次 POST {baseURL}/analyze
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"LifeKLine/cmn/destiny"
)

const (
	DefaultBaseURL = "http://localhost:8000/api"

	analyzePath = "/analyze"
	contentJSON = "application/json"
)

// StatusError 服务端返回了非 2xx 状态码
type StatusError struct {
	StatusCode int
	Detail     string // 响应体中的 detail 字段，没有时为空
	Body       string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("analyze failed: %d %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("analyze failed: %d %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	http    *fasthttp.Client
	strict  bool
	z       *zap.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithStrictResponse 对返回结果做结构校验，默认关闭
func WithStrictResponse() Option {
	return func(c *Client) {
		c.strict = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.z = logger
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &fasthttp.Client{Name: "lifekline-client"},
		z:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// AnalyzeDestiny 提交排盘信息并返回分析结果；ctx 的截止时间作为请求超时
func (c *Client) AnalyzeDestiny(ctx context.Context, input destiny.UserInput) (*destiny.LifeDestinyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + analyzePath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(contentJSON)
	req.Header.Set(fasthttp.HeaderAccept, contentJSON)
	req.SetBodyRaw(body)

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		if hasDeadline && errors.Is(err, fasthttp.ErrTimeout) {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		c.z.Debug("analyze request failed", zap.String("url", c.baseURL+analyzePath), zap.Error(err))
		return nil, fmt.Errorf("analyze request: %w", err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		se := &StatusError{StatusCode: status, Body: string(resp.Body())}
		var reply struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(resp.Body(), &reply) == nil {
			se.Detail = reply.Detail
		}
		c.z.Debug("analyze rejected", zap.Int("status", status), zap.String("detail", se.Detail))
		return nil, se
	}

	var result destiny.LifeDestinyResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	if c.strict {
		if err := result.Validate(); err != nil {
			return nil, err
		}
	}

	return &result, nil
}
