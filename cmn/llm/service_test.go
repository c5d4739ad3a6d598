package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	svc := NewServiceWithClient(srv.Client())
	out, err := svc.Chat(context.Background(), Config{ApiKey: "sk-test", BaseUrl: srv.URL + "/v1", Model: "m"}, "sys", "usr")
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 30000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
}

func TestChatStatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantQuota bool
		wantEmpty bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, true, false},
		{"payment required", http.StatusPaymentRequired, `{}`, true, false},
		{"rate limited", http.StatusTooManyRequests, `{}`, true, false},
		{"server error", http.StatusInternalServerError, `boom`, false, false},
		{"no choices", http.StatusOK, `{"choices":[]}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewServiceWithClient(srv.Client()).Chat(context.Background(), Config{BaseUrl: srv.URL}, "s", "u")
			require.Error(t, err)
			assert.Equal(t, tt.wantQuota, errors.Is(err, ErrQuota))
			assert.Equal(t, tt.wantEmpty, errors.Is(err, ErrEmptyContent))

			if tt.status == http.StatusInternalServerError {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, "boom", se.Body)
			}
		})
	}
}

func TestChatRequiresBaseUrl(t *testing.T) {
	_, err := NewService().Chat(context.Background(), Config{}, "s", "u")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	defaultConfig = Config{ApiKey: "sys-key", BaseUrl: "https://sys/v1", Model: "sys-model"}
	t.Cleanup(func() { defaultConfig = Config{} })

	assert.Equal(t, defaultConfig, Resolve("", "  ", ""))
	assert.Equal(t, Config{ApiKey: "mine", BaseUrl: "https://mine/v1", Model: "x"}, Resolve(" mine ", "https://mine/v1/", "x"))
}
