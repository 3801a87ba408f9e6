package ports

// TextSink is a caller-owned text output (a label, a widget, a terminal line).
// It is only ever written from the Dispatcher context.
type TextSink interface {
	SetText(text string)
}

// TextReader is optionally implemented by sinks that expose their current text.
// The display binding uses it to restore pre-call values.
type TextReader interface {
	Text() string
}
