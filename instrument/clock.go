package instrument

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Clock reports milliseconds elapsed since the runtime started. Readings
// never decrease.
type Clock interface {
	Millis() int64
}

// Starter is implemented by clocks that know the instant their readings
// count from.
type Starter interface {
	Start() time.Time
}

// SystemClock is the wall clock of the host, measured from its creation.
type SystemClock struct {
	start time.Time
	last  int64
}

var (
	_ Clock   = (*SystemClock)(nil)
	_ Starter = (*SystemClock)(nil)
)

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Start() time.Time { return c.start }

func (c *SystemClock) Millis() int64 {
	ms := time.Since(c.start).Milliseconds()
	if ms < c.last {
		return c.last
	}
	c.last = ms
	return ms
}

type TimeSpan = timespan.TimeSpan

// Uptime is the span from start to the clock reading millis.
func Uptime(start time.Time, millis int64) TimeSpan {
	return timespan.BetweenTimes(start, start.Add(time.Duration(millis)*time.Millisecond))
}
