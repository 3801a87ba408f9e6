package display

import "sync"

// Label is an in-memory text sink. It implements ports.TextSink and ports.TextReader.
type Label struct {
	mu       sync.RWMutex
	text     string
	onChange func(string)
}

// NewLabel creates a label showing initial.
func NewLabel(initial string) *Label {
	return &Label{text: initial}
}

// OnChange registers a callback invoked after every SetText, on the writer's goroutine.
func (l *Label) OnChange(fn func(string)) *Label {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
	return l
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	cb := l.onChange
	l.mu.Unlock()

	if cb != nil {
		cb(text)
	}
}

// Text returns the current text.
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}
