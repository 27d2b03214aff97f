package engine

import (
	"io"
	"time"

	"github.com/on-the-ground/rvm_ive_go/config"
	"github.com/on-the-ground/rvm_ive_go/instrument"
	"go.uber.org/zap"
)

type Option func(*Runtime)

func WithLogger(logger *zap.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithClock replaces the system clock. Uptime counts from the clock's own
// start when it implements instrument.Starter, otherwise from now.
func WithClock(clock instrument.Clock) Option {
	return func(rt *Runtime) {
		if clock == nil {
			return
		}
		rt.clock = clock
		if s, ok := clock.(instrument.Starter); ok {
			rt.start = s.Start()
		} else {
			rt.start = time.Now()
		}
	}
}

// WithOutput sets where print and println write. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.printer = instrument.NewPrinter(w)
	}
}

func WithMemoIndex(on bool) Option {
	return func(rt *Runtime) {
		rt.memoIndex = on
	}
}

// WithHeapLimit caps live heap objects. Zero means unlimited.
func WithHeapLimit(n int) Option {
	return func(rt *Runtime) {
		rt.heapLimit = n
	}
}

// WithMaxDepth caps nested interpreted frames.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.maxDepth = n
		}
	}
}

// WithConfig applies the runtime settings of cfg. Logging settings are
// not part of it; build the logger with the logging package.
func WithConfig(cfg config.Config) Option {
	return func(rt *Runtime) {
		WithMemoIndex(cfg.MemoIndex)(rt)
		WithHeapLimit(cfg.HeapLimit)(rt)
		WithMaxDepth(cfg.MaxDepth)(rt)
	}
}

// WithProcessStats replaces the source of the RSS figure in state dumps.
func WithProcessStats(rss func() (uint64, error)) Option {
	return func(rt *Runtime) {
		if rss != nil {
			rt.rss = rss
		}
	}
}
