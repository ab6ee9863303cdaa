package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/constants"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyReqID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(constants.HeaderRequestID), 36)
}

func TestRateLimit_WithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

// fakeRedis answers pipelines in memory. It records every command name and
// emulates SET NX and INCR on a single counter.
type fakeRedis struct {
	fail   error
	names  []string
	setNX  [][]interface{}
	exists map[string]bool
	counts map[string]int64
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{exists: map[string]bool{}, counts: map[string]int64{}}
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled")
	}
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.names = append(f.names, cmd.Name())
		return errors.New("unexpected single command " + cmd.Name())
	}
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if f.fail != nil {
			for _, cmd := range cmds {
				cmd.SetErr(f.fail)
			}
			return f.fail
		}
		for _, cmd := range cmds {
			f.names = append(f.names, cmd.Name())
			key, _ := cmd.Args()[len(cmd.Args())-1].(string)
			switch c := cmd.(type) {
			case *redis.StatusCmd:
				if c.Name() != "set" {
					continue
				}
				key = c.Args()[1].(string)
				f.setNX = append(f.setNX, c.Args())
				if f.exists[key] {
					c.SetErr(redis.Nil)
					continue
				}
				f.exists[key] = true
				c.SetVal("OK")
			case *redis.IntCmd:
				if c.Name() == "incr" {
					f.counts[key]++
					c.SetVal(f.counts[key])
				}
			}
		}
		return nil
	}
}

func rateLimitedRouter(rdb *redis.Client, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(rdb, limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimit_WindowAndCounterShareOneTransaction(t *testing.T) {
	fake := newFakeRedis()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	rdb.AddHook(fake)
	t.Cleanup(func() { rdb.Close() })
	r := rateLimitedRouter(rdb, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	assert.NotContains(t, fake.names, "expire")
	assert.Equal(t, []string{"multi", "set", "incr", "exec"}, fake.names[:4])

	require.Len(t, fake.setNX, 3)
	args := fake.setNX[0]
	assert.Contains(t, args, "NX")
	assert.Contains(t, args, "ex")
	assert.Contains(t, args, int64(60))
}

func TestRateLimit_RedisErrorPassesThrough(t *testing.T) {
	fake := newFakeRedis()
	fake.fail = errors.New("connection refused")
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	rdb.AddHook(fake)
	t.Cleanup(func() { rdb.Close() })
	r := rateLimitedRouter(rdb, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestGetters_EmptyContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUser(c)
	assert.False(t, ok)
	_, ok = GetUserID(c)
	assert.False(t, ok)
	_, ok = GetRole(c)
	assert.False(t, ok)
}
