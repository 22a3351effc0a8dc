package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives a copy of every emitted log record. The
// observability layer installs one to forward records to the OTLP log
// pipeline alongside stdout.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the process-wide log mirror. Passing nil
// removes the current mirror.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func activeMirror() MirrorFunc {
	if fn := mirror.Load(); fn != nil {
		return *fn
	}
	return nil
}
