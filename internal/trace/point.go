package trace

import "time"

// ExtraError marks an event as a failure; such events pass at LevelError.
const ExtraError = "error"

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}

// Failure emits a point event that survives LevelError filtering.
func Failure(t Tracer, scope Scope, name string, err error, parent uint64, extra map[string]string) {
	if extra == nil {
		extra = make(map[string]string, 1)
	}
	msg := "unknown"
	if err != nil {
		msg = err.Error()
	}
	extra[ExtraError] = msg
	Point(t, scope, name, "", parent, extra)
}
