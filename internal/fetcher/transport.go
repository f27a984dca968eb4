package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
)

// StatusError 上游返回了非2xx状态
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// statusGuard 非2xx响应（包括3xx）直接变成错误，不交给SDK解析
// 同时记录是否拿到过2xx，用来区分上游失败和响应体无法解析
type statusGuard struct {
	base      http.RoundTripper
	delivered atomic.Bool
}

func (g *statusGuard) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := g.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode}
	}
	g.delivered.Store(true)
	return resp, nil
}

// newGuardedClient 每次调用一个新的client，guard的状态只属于这一次调用
func newGuardedClient(cfg ClientConfig) (*http.Client, *statusGuard) {
	guard := &statusGuard{base: http.DefaultTransport}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: guard,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, guard
}

// classifyCallError 拿到2xx之后的失败算输出无法解析，其余都算上游不可用
func classifyCallError(err error, guard *statusGuard) error {
	if guard.delivered.Load() && !interrupted(err) {
		return fmt.Errorf("%w: %w", ErrMalformedModelOutput, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

// interrupted 超时、取消或读响应体时连接断开
func interrupted(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
