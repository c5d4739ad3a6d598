package analysis

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"LifeKLine/cmn/destiny"
	"LifeKLine/cmn/llm"
)

// 后台写入缓存与数据库的超时
const saveTimeout = 10 * time.Second

type Service interface {
	// Analyze 依次查缓存、数据库，都未命中时生成并在后台保存
	Analyze(ctx context.Context, input destiny.UserInput) (*destiny.LifeDestinyResult, error)
	// Generate 直接生成，不读写缓存
	Generate(ctx context.Context, input destiny.UserInput) (*destiny.LifeDestinyResult, error)
	// Wait 等待所有后台保存结束
	Wait()
}

type service struct {
	db       *gorm.DB
	cache    Cache
	llm      llm.Service
	demoFile string
	newRand  func() *rand.Rand

	saving sync.WaitGroup
}

type Option func(*service)

// WithDemoFile 演示模式读取的文件
func WithDemoFile(path string) Option {
	return func(s *service) {
		s.demoFile = path
	}
}

// WithRand 指定随机源，测试时用于固定输出
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *service) {
		s.newRand = newRand
	}
}

// NewService db 为 nil 时使用 cmn.GormDB，cache 为 nil 时不缓存
func NewService(db *gorm.DB, cache Cache, llmService llm.Service, opts ...Option) Service {
	if cache == nil {
		cache = noopCache{}
	}
	if llmService == nil {
		llmService = llm.NewService()
	}

	s := &service{
		db:       db,
		cache:    cache,
		llm:      llmService,
		demoFile: demoFile,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) Analyze(ctx context.Context, input destiny.UserInput) (*destiny.LifeDestinyResult, error) {
	hash, err := HashInput(input)
	if err != nil {
		z.Error("failed to hash input", zap.Error(err))
		return nil, err
	}

	cached, err := s.cache.Get(ctx, hash)
	if err != nil {
		z.Warn("cache read failed, treat as miss", zap.String("hash", hash), zap.Error(err))
	}
	if cached != nil {
		z.Debug("analysis cache hit", zap.String("hash", hash))
		return cached, nil
	}

	stored, err := QueryAnalysis(ctx, s.db, hash)
	if err != nil {
		z.Warn("db read failed, treat as miss", zap.String("hash", hash), zap.Error(err))
	}
	if stored != nil {
		z.Debug("analysis db hit", zap.String("hash", hash))
		s.saveInBackground(ctx, hash, stored, false)
		return stored, nil
	}

	result, err := s.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	s.saveInBackground(ctx, hash, result, true)

	return result, nil
}

// saveInBackground 写缓存，persist 为 true 时同时写数据库，失败只记录日志
func (s *service) saveInBackground(ctx context.Context, hash string, result *destiny.LifeDestinyResult, persist bool) {
	// 请求结束后仍需完成保存
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)

	s.saving.Add(1)
	go func() {
		defer s.saving.Done()
		defer cancel()

		var g errgroup.Group
		g.Go(func() error {
			if err := s.cache.Set(ctx, hash, result); err != nil {
				z.Error("failed to save analysis to cache", zap.String("hash", hash), zap.Error(err))
			}
			return nil
		})
		if persist {
			g.Go(func() error {
				// SaveAnalysis 内部已记录错误
				_ = SaveAnalysis(ctx, s.db, hash, result)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (s *service) Wait() {
	s.saving.Wait()
}
