package bundler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const DefaultTimeout = 60 * time.Second

// Request - один исходящий запрос, Label уникален внутри Bundler
type Request struct {
	Label   string
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
}

// Result - ответ по одной метке. Ошибка одного запроса не влияет на остальные.
type Result struct {
	Label      string
	StatusCode int
	Body       []byte
	Err        error
}

// Success - запрос выполнен и вернул 2xx
func (r Result) Success() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Bundler выполняет набор независимых запросов параллельно
// и отдает ответы по меткам после завершения всех (или таймаута)
type Bundler struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	labels  map[string]struct{}
	pending []Request
	results map[string]Result
}

func New(timeout time.Duration, logger *zap.Logger) *Bundler {
	return NewWithClient(&http.Client{}, timeout, logger)
}

func NewWithClient(httpClient *http.Client, timeout time.Duration, logger *zap.Logger) *Bundler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bundler{
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
		labels:     make(map[string]struct{}),
		results:    make(map[string]Result),
	}
}

// Add регистрирует запрос. Повторная метка отклоняется.
func (b *Bundler) Add(req Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.labels[req.Label]; exists {
		b.logger.Debug("Duplicate bundler label ignored", zap.String("label", req.Label))
		return false
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	b.labels[req.Label] = struct{}{}
	b.pending = append(b.pending, req)
	return true
}

// MakeCalls выполняет все ожидающие запросы и возвращает копию всех результатов
func (b *Bundler) MakeCalls(ctx context.Context) map[string]Result {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(batch) > 0 {
		results := b.run(ctx, batch)

		b.mu.Lock()
		for _, r := range results {
			b.results[r.Label] = r
		}
		b.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.results)
}

// Response возвращает результат по метке, при необходимости выполнив запросы.
// Для незарегистрированной метки возвращает false.
func (b *Bundler) Response(ctx context.Context, label string) (Result, bool) {
	b.mu.Lock()
	_, registered := b.labels[label]
	result, done := b.results[label]
	b.mu.Unlock()

	if !registered {
		return Result{}, false
	}
	if done {
		return result, true
	}

	results := b.MakeCalls(ctx)
	result, done = results[label]
	return result, done
}

func (b *Bundler) run(ctx context.Context, batch []Request) []Result {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()

	p := pool.NewWithResults[Result]()
	for _, req := range batch {
		p.Go(func() Result {
			return b.call(ctx, req)
		})
	}
	results := p.Wait()

	b.logger.Debug("Bundled requests finished",
		zap.Int("count", len(batch)),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func (b *Bundler) call(ctx context.Context, req Request) Result {
	result := Result{Label: req.Label}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		result.Err = fmt.Errorf("failed to create request: %w", err)
		return result
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		b.logger.Warn("Bundled request failed",
			zap.String("label", req.Label),
			zap.Error(err))
		result.Err = fmt.Errorf("failed to execute request: %w", err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		result.Err = fmt.Errorf("failed to read response: %w", err)
		return result
	}

	if !result.Success() {
		b.logger.Warn("Bundled request returned error status",
			zap.String("label", req.Label),
			zap.Int("status_code", resp.StatusCode))
	}

	return result
}
