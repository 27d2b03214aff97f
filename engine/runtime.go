package engine

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/rvm_ive_go/arena"
	"github.com/on-the-ground/rvm_ive_go/instrument"
	"github.com/on-the-ground/rvm_ive_go/ir"
	"github.com/on-the-ground/rvm_ive_go/memo"
	"github.com/on-the-ground/rvm_ive_go/tailcall"
	"github.com/on-the-ground/rvm_ive_go/value"
	"github.com/rs/xid"
	"go.uber.org/zap"
)

// NativeFunc implements a function in Go. args has the registered arity
// unless the function is Variadic.
type NativeFunc func(rt *Runtime, args value.Tuple) (value.Value, error)

// Variadic is the arity of natives that accept any number of arguments.
const Variadic = -1

const defaultMaxDepth = 10000

type function struct {
	name   string
	arity  int
	marks  Marks
	def    *ir.Function
	native NativeFunc
	report tailcall.Report
}

type Runtime struct {
	id     uuid.UUID
	logger *zap.Logger
	// log is logger tagged with the current top-level call.
	log     *zap.Logger
	clock   instrument.Clock
	start   time.Time
	printer *instrument.Printer
	heap    *arena.Arena
	memo    *memo.Tables
	rss     func() (uint64, error)

	memoIndex bool
	heapLimit int
	maxDepth  int

	funcs  map[string]*function
	order  []*function
	frames []*frame

	calls     int
	tailSteps int
	peakDepth int
}

func New(opts ...Option) *Runtime {
	clock := instrument.NewSystemClock()
	rt := &Runtime{
		id:        uuid.New(),
		logger:    zap.NewNop(),
		clock:     clock,
		start:     clock.Start(),
		printer:   instrument.NewPrinter(os.Stdout),
		rss:       instrument.ProcessRSS,
		memoIndex: true,
		maxDepth:  defaultMaxDepth,
		funcs:     make(map[string]*function),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.log = rt.logger
	rt.heap = arena.New(arena.WithLimit(rt.heapLimit), arena.WithReclaimHook(rt.onReclaim))
	rt.memo = memo.NewTables(rt.memoIndex)
	for _, b := range builtins {
		rt.register(&function{name: b.name, arity: b.arity, native: b.fn})
	}
	return rt
}

func (rt *Runtime) ID() uuid.UUID { return rt.id }

func (rt *Runtime) register(fn *function) {
	rt.funcs[fn.name] = fn
	rt.order = append(rt.order, fn)
}

// Define registers fn with the given marks. With TailOptimize the body is
// rewritten once, here.
func (rt *Runtime) Define(fn *ir.Function, marks Marks) error {
	if !marks.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidMarks, marks)
	}
	if err := ir.Validate(fn); err != nil {
		return err
	}
	if _, dup := rt.funcs[fn.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, fn.Name)
	}

	f := &function{name: fn.Name, arity: fn.Arity(), marks: marks, def: fn}
	if marks.Has(TailOptimize) {
		def, report, err := tailcall.Rewrite(fn)
		if err != nil {
			return err
		}
		f.def, f.report = def, report
		rt.logger.Debug("tail calls rewritten", zap.Stringer("report", report))
	}
	rt.register(f)
	rt.logger.Debug("defined", zap.String("func", fn.Name), zap.Stringer("marks", marks))
	return nil
}

// RegisterNative adds a Go function. Natives have no body to rewrite, so
// TailOptimize is refused.
func (rt *Runtime) RegisterNative(name string, arity int, marks Marks, fn NativeFunc) error {
	if !marks.valid() || marks.Has(TailOptimize) {
		return fmt.Errorf("%w: %s for native %s", ErrInvalidMarks, marks, name)
	}
	if name == "" || fn == nil || arity < Variadic {
		return fmt.Errorf("%w: native %q with arity %d", ir.ErrInvalidFunction, name, arity)
	}
	if _, dup := rt.funcs[name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
	}
	rt.register(&function{name: name, arity: arity, marks: marks, native: fn})
	return nil
}

// TailReport tells what the tail-call rewrite did to a TailOptimize
// function.
func (rt *Runtime) TailReport(name string) (tailcall.Report, bool) {
	fn, ok := rt.funcs[name]
	if !ok || !fn.marks.Has(TailOptimize) {
		return tailcall.Report{}, false
	}
	return fn.report, true
}

// Call runs the named function to completion.
func (rt *Runtime) Call(name string, args ...value.Value) (value.Value, error) {
	fn, ok := rt.funcs[name]
	if !ok {
		return value.Void(), &RuntimeError{Func: name, Err: ErrUnknownFunction}
	}
	prev := rt.log
	rt.log = rt.logger.With(zap.String("call", xid.New().String()))
	defer func() { rt.log = prev }()

	return rt.dispatch(fn, value.Tuple(args))
}

// HeapSize is the number of live heap objects.
func (rt *Runtime) HeapSize() int { return rt.heap.Live() }

// Tick is the clock reading in milliseconds.
func (rt *Runtime) Tick() int64 { return rt.clock.Millis() }

// Alloc registers obj with the heap, inside the innermost open scope if
// there is one.
func (rt *Runtime) Alloc(obj value.Object) (value.Value, error) {
	h, err := rt.heap.Alloc(obj)
	if err != nil {
		return value.Void(), err
	}
	return value.FromObject(obj, h), nil
}

// Free reclaims the heap object v refers to. It reports false for
// primitives, static text and objects already reclaimed.
func (rt *Runtime) Free(v value.Value) bool {
	if !v.IsHeap() {
		return false
	}
	obj, ok := rt.heap.Get(v.Handle())
	if !ok || obj != any(v.Object()) {
		// the slot was reclaimed and taken by another object
		return false
	}
	return rt.heap.Free(v.Handle())
}

func (rt *Runtime) onReclaim(h arena.Handle, obj any) {
	rt.log.Debug("reclaim", zap.Int("slot", int(h)), zap.Any("object", obj))
}

// Snapshot captures what logState reports.
func (rt *Runtime) Snapshot() instrument.Snapshot {
	frames := make([]instrument.FrameInfo, len(rt.frames))
	for i, f := range rt.frames {
		frames[i] = instrument.FrameInfo{
			Func:   f.fn.name,
			Marks:  f.fn.marks.label(),
			Locals: slices.Clone(f.locals),
			Steps:  f.steps,
		}
	}
	funcs := make([]instrument.FuncInfo, len(rt.order))
	for i, fn := range rt.order {
		funcs[i] = instrument.FuncInfo{Name: fn.name, Marks: fn.marks.label(), Native: fn.native != nil}
	}
	rss, err := rt.rss()
	if err != nil {
		rt.log.Debug("process stats unavailable", zap.Error(err))
	}
	return instrument.Snapshot{
		RuntimeID: rt.id.String(),
		Frames:    frames,
		Heap:      rt.heap,
		Memo:      rt.memo,
		Funcs:     funcs,
		Uptime:    instrument.Uptime(rt.start, rt.clock.Millis()),
		RSS:       rss,
	}
}

// LogState writes the snapshot to the logger at info level.
func (rt *Runtime) LogState() {
	rt.Snapshot().Log(rt.log)
}

type Stats struct {
	// Depth is the number of interpreted frames now active.
	Depth int
	// MaxDepth is the deepest Depth seen so far.
	MaxDepth  int
	Calls     int
	TailSteps int
	Heap      arena.Stats
	Memo      map[string]memo.Stats
}

func (rt *Runtime) Stats() Stats {
	s := Stats{
		Depth:     len(rt.frames),
		MaxDepth:  rt.peakDepth,
		Calls:     rt.calls,
		TailSteps: rt.tailSteps,
		Heap:      rt.heap.Stats(),
		Memo:      make(map[string]memo.Stats, rt.memo.Len()),
	}
	rt.memo.Each(func(t *memo.Table) {
		s.Memo[t.Name()] = t.Stats()
	})
	return s
}
