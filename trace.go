package figtext

import (
	"io"

	"github.com/ryanlewis/figtext/internal/debug"
)

// DebugSession receives trace events for renders passed WithDebug.
// A nil session is valid and traces nothing. Close flushes the sink.
type DebugSession = debug.Session

// EnableDebug turns tracing on or off for the whole process. Sessions
// created while tracing is off are nil.
func EnableDebug(on bool) {
	debug.SetEnabled(on)
}

// NewDebugSession starts a trace session writing JSON Lines to w, or a
// human readable log when pretty is set. It returns nil unless tracing is
// enabled with EnableDebug or FIGTEXT_DEBUG=1.
//
// A session must not be shared by concurrent renders.
func NewDebugSession(w io.Writer, pretty bool) *DebugSession {
	debug.InitFromEnv()
	return debug.NewSession(debug.NewSink(w, pretty))
}
