package instrument

import (
	"fmt"
	"os"
	"strings"

	"github.com/on-the-ground/rvm_ive_go/arena"
	"github.com/on-the-ground/rvm_ive_go/memo"
	"github.com/on-the-ground/rvm_ive_go/value"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

const cellsPerLine = 10

const freeCell = " free "

// FrameInfo describes one active call.
type FrameInfo struct {
	Func   string
	Marks  string
	Locals []value.Value
	// Steps counts loop restarts taken by a tail-optimized frame.
	Steps int
}

// FuncInfo describes one registered function.
type FuncInfo struct {
	Name   string
	Marks  string
	Native bool
}

// Snapshot is what logState reports. Frames are ordered outermost first.
type Snapshot struct {
	RuntimeID string
	Frames    []FrameInfo
	Heap      *arena.Arena
	Memo      *memo.Tables
	Funcs     []FuncInfo
	Uptime    TimeSpan
	// RSS is the resident set size of the host process, 0 if unknown.
	RSS uint64
}

// Lines renders the snapshot as text, innermost frame first and heap slots
// ten to a line.
func (s Snapshot) Lines() []string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("--------------- STACK -----------------")
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		header := fmt.Sprintf(" [ %s ]", f.Func)
		if f.Marks != "" {
			header += " " + f.Marks
		}
		if f.Steps > 0 {
			header += fmt.Sprintf(" steps=%d", f.Steps)
		}
		lines = append(lines, header)
		for j, l := range f.Locals {
			add("  local(%d) = %s", j, l.Short())
		}
	}

	if s.Heap != nil {
		st := s.Heap.Stats()
		add("------------ HEAP [%4d] --------------", st.Live)
		add(" slots %d peak %d scopes %d", st.Slots, st.Peak, st.ScopeDepth)
		var sb strings.Builder
		n := 0
		s.Heap.Each(func(h arena.Handle, obj any, live bool) {
			sb.WriteString(" [")
			sb.WriteString(cell(h, obj, live))
			sb.WriteString(" ]")
			n++
			if n%cellsPerLine == 0 {
				lines = append(lines, sb.String())
				sb.Reset()
			}
		})
		if sb.Len() > 0 {
			lines = append(lines, sb.String())
		}
	}

	if s.Memo != nil {
		add("--------------- MEMO ------------------")
		s.Memo.Each(func(t *memo.Table) {
			st := t.Stats()
			add(" %s entries=%d hits=%d misses=%d", t.Name(), st.Entries, st.Hits, st.Misses)
		})
	}

	add("------------ FUNCTIONS ----------------")
	for i, f := range s.Funcs {
		line := fmt.Sprintf("%4d %s", i, f.Name)
		if f.Native {
			line += " native"
		}
		if f.Marks != "" {
			line += " " + f.Marks
		}
		lines = append(lines, line)
	}

	add("--------------- PROCESS ---------------")
	add(" uptime %s rss %d", s.Uptime.Duration(), s.RSS)
	add("--------------- <eof> -----------------")
	return lines
}

func cell(h arena.Handle, obj any, live bool) string {
	if !live {
		return freeCell
	}
	o, ok := obj.(value.Object)
	if !ok {
		return fmt.Sprintf("%-6.6v", obj)
	}
	return value.FromObject(o, h).Short()
}

// Log writes every line at info level.
func (s Snapshot) Log(logger *zap.Logger) {
	for _, line := range s.Lines() {
		logger.Info(line, zap.String("runtime", s.RuntimeID))
	}
}

// ProcessRSS reads the resident set size of the current process.
func ProcessRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}
