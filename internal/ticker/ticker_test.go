package ticker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/ticker"
	"github.com/central-university-dev/go-bed-caller/pkg"
)

type tickWindow struct {
	lastTick time.Time
	now      time.Time
}

type recordingHandler struct {
	mu      sync.Mutex
	windows []tickWindow
	errs    []error
}

func (h *recordingHandler) Tick(_ context.Context, lastTick, now time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.windows = append(h.windows, tickWindow{lastTick: lastTick, now: now})

	if len(h.errs) > 0 {
		err := h.errs[0]
		h.errs = h.errs[1:]

		return err
	}

	return nil
}

func (h *recordingHandler) snapshot() []tickWindow {
	h.mu.Lock()
	defer h.mu.Unlock()

	windows := make([]tickWindow, len(h.windows))
	copy(windows, h.windows)

	return windows
}

func TestTicker_WindowsAreContiguous(t *testing.T) {
	handler := &recordingHandler{}

	tk := ticker.NewTicker(handler, 50*time.Millisecond, pkg.NewDiscardLogger())
	tk.Start()

	time.Sleep(200 * time.Millisecond)
	tk.Stop()

	windows := handler.snapshot()
	require.GreaterOrEqual(t, len(windows), 2)

	for i, w := range windows {
		assert.True(t, w.now.After(w.lastTick), "окно %d должно быть непустым", i)

		if i > 0 {
			// lastTick следующего тика равен now предыдущего успешного.
			assert.Equal(t, windows[i-1].now, w.lastTick, "окно %d", i)
		}
	}
}

func TestTicker_FailedTickDoesNotAdvance(t *testing.T) {
	handler := &recordingHandler{errs: []error{assert.AnError}}

	tk := ticker.NewTicker(handler, 50*time.Millisecond, pkg.NewDiscardLogger())
	tk.Start()

	time.Sleep(200 * time.Millisecond)
	tk.Stop()

	windows := handler.snapshot()
	require.GreaterOrEqual(t, len(windows), 2)

	// Первый тик завершился ошибкой: его окно будет перечитано.
	assert.Equal(t, windows[0].lastTick, windows[1].lastTick)
}

func TestTicker_StopPreventsFurtherTicks(t *testing.T) {
	handler := &recordingHandler{}

	tk := ticker.NewTicker(handler, time.Second, pkg.NewDiscardLogger())
	tk.Start()
	tk.Stop()

	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, handler.snapshot())
}
