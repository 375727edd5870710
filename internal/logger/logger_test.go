package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// lockedBuffer tránh data race giữa goroutine của AsyncHook và test
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(cfg *LogConfig, out io.Writer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetOutput(io.Discard)
	hook := NewAsyncHook([]io.Writer{out}, 10)
	l.AddHook(NewFilterHook(cfg))
	l.AddHook(hook)
	return l, hook
}

func TestFilterHook_DropsOtherModules(t *testing.T) {
	out := &lockedBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterModules: "promo"}, out)

	l.WithField("module", "promo").Info("promo kept")
	l.WithField("module", "events").Info("events dropped")
	l.WithField("module", "events").Error("errors always kept")
	l.Info("no module kept")
	assert.NoError(t, hook.Close())

	got := out.String()
	assert.Contains(t, got, "promo kept")
	assert.NotContains(t, got, "events dropped")
	assert.Contains(t, got, "errors always kept")
	assert.Contains(t, got, "no module kept")
	assert.NotContains(t, got, filteredKey)
}

func TestFilterHook_Endpoints(t *testing.T) {
	out := &lockedBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterEndpoints: "/api/v1/promotions"}, out)

	l.WithField("path", "/api/v1/promotions/customers").Info("matched path")
	l.WithField("path", "/api/v1/system/health").Info("health path")
	assert.NoError(t, hook.Close())

	got := out.String()
	assert.Contains(t, got, "matched path")
	assert.NotContains(t, got, "health path")
}

func TestAsyncHook_WritesAfterClose(t *testing.T) {
	out := &lockedBuffer{}
	l, hook := newTestLogger(&LogConfig{}, out)
	assert.NoError(t, hook.Close())
	assert.NoError(t, hook.Close())

	l.Info("after close")
	assert.Contains(t, out.String(), "after close")
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Nil(t, parseFilter("*"))
	assert.Equal(t, map[string]bool{"promo": true, "delivery": true}, parseFilter(" Promo , delivery ,"))
}
