package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LifeKLine/cmn/destiny"
	"LifeKLine/cmn/llm"
)

const sampleOutput = `{
	"summary": "命局清朗",
	"summaryScore": 8,
	"chartPoints": [
		{"age":1,"year":1990,"superLuck":"童限","ganZhi":"庚午","open":50,"close":55,"high":60,"low":45,"score":55,"reason":"开局平稳"},
		{"age":2,"year":1991,"superLuck":"童限","ganZhi":"辛未","open":55,"close":52,"high":58,"low":50,"score":52,"reason":"小有波折"}
	]
}`

// fakeLLM 记录调用次数并返回预设内容
type fakeLLM struct {
	mu      sync.Mutex
	calls   int
	lastCfg llm.Config
	content string
	err     error
}

func (f *fakeLLM) Chat(_ context.Context, cfg llm.Config, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastCfg = cfg
	return f.content, f.err
}

func (f *fakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func llmInput() destiny.UserInput {
	input := testInput()
	input.APIKey = destiny.String("sk-user")
	input.APIBaseURL = destiny.String("https://llm.example.com/v1/")
	input.ModelName = destiny.String("test-model")
	return input
}

func newTestService(t *testing.T, fake *fakeLLM, opts ...Option) (Service, *mapCache) {
	t.Helper()

	cache := newMapCache()
	opts = append([]Option{WithRand(seeded)}, opts...)
	return NewService(newTestDB(t), cache, fake, opts...), cache
}

func TestAnalyzeUsesLLMThenCache(t *testing.T) {
	ctx := context.Background()
	fake := &fakeLLM{content: "```json\n" + sampleOutput + "\n```"}
	svc, cache := newTestService(t, fake)

	first, err := svc.Analyze(ctx, llmInput())
	require.NoError(t, err)
	require.Len(t, first.ChartData, 2)
	assert.Equal(t, "命局清朗", first.Analysis.Summary)

	assert.Equal(t, llm.Config{ApiKey: "sk-user", BaseUrl: "https://llm.example.com/v1", Model: "test-model"}, fake.lastCfg)

	svc.Wait()
	assert.Equal(t, 1, cache.Len())

	// 换一个密钥不影响命中
	again := llmInput()
	again.APIKey = destiny.String("sk-other")
	second, err := svc.Analyze(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyzeFallsBackToDB(t *testing.T) {
	ctx := context.Background()
	fake := &fakeLLM{content: sampleOutput}
	db := newTestDB(t)

	warm := NewService(db, newMapCache(), fake)
	first, err := warm.Analyze(ctx, llmInput())
	require.NoError(t, err)
	warm.Wait()

	// 缓存为空，从数据库读出并回填缓存
	cache := newMapCache()
	cold := NewService(db, cache, fake)
	second, err := cold.Analyze(ctx, llmInput())
	require.NoError(t, err)
	cold.Wait()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, 1, cache.Len())
}

func TestAnalyzeIgnoresCacheFailure(t *testing.T) {
	fake := &fakeLLM{content: sampleOutput}
	svc := NewService(newTestDB(t), failingCache{}, fake)

	result, err := svc.Analyze(context.Background(), llmInput())
	require.NoError(t, err)
	assert.Len(t, result.ChartData, 2)
	svc.Wait()
}

func TestGenerateModes(t *testing.T) {
	demo := filepath.Join(t.TempDir(), "mock_data.json")
	require.NoError(t, os.WriteFile(demo, []byte(sampleOutput), 0o644))

	fake := &fakeLLM{}
	svc, _ := newTestService(t, fake, WithDemoFile(demo))

	withKey := func(key string) destiny.UserInput {
		input := testInput()
		input.APIKey = destiny.String(key)
		return input
	}

	result, err := svc.Generate(context.Background(), withKey("DEMO"))
	require.NoError(t, err)
	assert.Len(t, result.ChartData, 2)
	assert.Equal(t, "无性格分析", result.Analysis.Personality)

	result, err = svc.Generate(context.Background(), withKey("random"))
	require.NoError(t, err)
	assert.Equal(t, GenerateRandom(testInput(), seeded()), result)

	result, err = svc.Generate(context.Background(), withKey("Formula"))
	require.NoError(t, err)
	assert.Equal(t, GenerateFormula(testInput(), seeded()), result)

	assert.Zero(t, fake.Calls())
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    func() destiny.UserInput
		llmErr   error
		content  string
		wantCode int
		wantIs   error
	}{
		{
			name:     "no key",
			input:    testInput,
			wantCode: http.StatusPaymentRequired,
		},
		{
			name: "no base url",
			input: func() destiny.UserInput {
				input := testInput()
				input.APIKey = destiny.String("sk-user")
				return input
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "quota",
			input:    llmInput,
			llmErr:   fmt.Errorf("%w (429)", llm.ErrQuota),
			wantCode: http.StatusPaymentRequired,
			wantIs:   llm.ErrQuota,
		},
		{
			name:     "upstream failure",
			input:    llmInput,
			llmErr:   &llm.StatusError{StatusCode: 500, Body: "boom"},
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "invalid output",
			input:    llmInput,
			content:  `{"summary":"no chart"}`,
			wantCode: http.StatusBadGateway,
			wantIs:   ErrInvalidOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cache := newTestService(t, &fakeLLM{content: tt.content, err: tt.llmErr})

			_, err := svc.Analyze(context.Background(), tt.input())
			require.Error(t, err)

			code, detail := StatusOf(err)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, detail)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			svc.Wait()
			assert.Zero(t, cache.Len())
		})
	}
}

func TestGenerateDemoFileMissing(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{}, WithDemoFile(filepath.Join(t.TempDir(), "absent.json")))

	input := testInput()
	input.APIKey = destiny.String("demo")
	_, err := svc.Generate(context.Background(), input)
	require.Error(t, err)

	code, _ := StatusOf(err)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestAnalyzeWithoutCache(t *testing.T) {
	svc := NewService(newTestDB(t), nil, &fakeLLM{}, WithRand(seeded))

	input := testInput()
	input.APIKey = destiny.String("random")
	result, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ChartData)
	svc.Wait()
}

type mapCache struct {
	mu    sync.Mutex
	items map[string]*destiny.LifeDestinyResult
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]*destiny.LifeDestinyResult{}}
}

func (c *mapCache) Get(_ context.Context, hash string) (*destiny.LifeDestinyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[hash], nil
}

func (c *mapCache) Set(_ context.Context, hash string, result *destiny.LifeDestinyResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[hash] = result
	return nil
}

func (c *mapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (*destiny.LifeDestinyResult, error) {
	return nil, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, *destiny.LifeDestinyResult) error {
	return errors.New("cache down")
}
