package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// Extra keys shared by driver, pass and file spans.
const (
	ExtraPath   = "path"
	ExtraPass   = "n"
	ExtraMillis = "ms"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
	// openFiles counts file spans begun and not yet ended.
	openFiles atomic.Int64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// goroutineID reads the id from the "goroutine N [" stack header. Files are
// processed on errgroup workers, so it tells concurrent file spans apart.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	rest, ok := bytes.CutPrefix(buf[:n], []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, ok := bytes.Cut(rest, []byte(" "))
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin/end pair. A disabled or filtered span is inert:
// every method on it is a no-op and ID is 0.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a span under parent (0 for a root) and emits its begin
// event, unless the tracer's level filters scope out.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}

	sp := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	// pass и check идут в горутине файла; gid нужен только на границах
	if scope <= ScopeFile {
		sp.gid = goroutineID()
	}
	if scope == ScopeFile {
		openFiles.Add(1)
	}
	t.Emit(sp.event(KindSpanBegin, sp.started, ""))
	return sp
}

// BeginFile opens the span for one file; the path goes into the name so
// text traces stay readable when workers interleave.
func BeginFile(t Tracer, path string, parent uint64) *Span {
	return Begin(t, ScopeFile, "file:"+path, parent).WithExtra(ExtraPath, path)
}

// BeginPass opens the span for pass n of the fix loop over path.
func BeginPass(t Tracer, path string, n int, parent uint64) *Span {
	return Begin(t, ScopePass, "pass", parent).
		WithExtra(ExtraPath, path).
		WithExtra(ExtraPass, strconv.Itoa(n))
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the end event with the elapsed milliseconds in ExtraMillis
// and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	if s.scope == ScopeFile {
		openFiles.Add(-1)
	}
	now := time.Now()
	dur := now.Sub(s.started)
	s.WithExtra(ExtraMillis, strconv.FormatFloat(float64(dur.Microseconds())/1000, 'f', 3, 64))
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
