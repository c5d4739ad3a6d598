package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var (
	// ErrQuota 上游返回 401/402/429，通常意味着密钥无效或额度耗尽
	ErrQuota = errors.New("llm quota exhausted or key rejected")
	// ErrEmptyContent 模型没有返回任何内容
	ErrEmptyContent = errors.New("llm returned empty content")
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 30000
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// StatusError 上游返回了非 200 状态码
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request failed: %d - %s", e.StatusCode, e.Body)
}

type Service interface {
	Chat(ctx context.Context, cfg Config, system, user string) (string, error)
}

// openAIImpl OpenAI 兼容的 /chat/completions 接口
type openAIImpl struct {
	client *http.Client
}

func NewService() Service {
	return &openAIImpl{client: &http.Client{Timeout: timeout}}
}

// NewServiceWithClient 使用指定的 http.Client，便于测试
func NewServiceWithClient(client *http.Client) Service {
	return &openAIImpl{client: client}
}

func (s *openAIImpl) Chat(ctx context.Context, cfg Config, system, user string) (string, error) {
	if cfg.BaseUrl == "" {
		return "", fmt.Errorf("llm base url not set")
	}

	requestBody := ChatRequest{
		Model: cfg.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		z.Error("json marshal fail", zap.Error(err))
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseUrl+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		z.Error("new request fail", zap.Error(err))
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			z.Error("close response body fail", zap.Error(err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		z.Error("read response body fail", zap.Error(err))
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusTooManyRequests:
		z.Warn("llm rejected the key", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w (%d)", ErrQuota, resp.StatusCode)
	default:
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		z.Error("json unmarshal fail", zap.Error(err))
		return "", fmt.Errorf("decode llm response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		z.Warn("no response message found")
		return "", ErrEmptyContent
	}

	return chatResp.Choices[0].Message.Content, nil
}
