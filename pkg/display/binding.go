package display

import (
	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
)

// Binding maps fetch outcomes onto the two display sinks (title, price).
// It is not safe for concurrent use: every method must run on the Dispatcher.
type Binding struct {
	title ports.TextSink
	price ports.TextSink
	text  domain.StatusText

	// Last values this binding wrote, used when a sink cannot be read back.
	lastTitle string
	lastPrice string

	// Values shown before the current in-flight request, restored for absent fields.
	prevTitle string
	prevPrice string
	inFlight  bool
}

// NewBinding binds the title and price sinks. Empty status strings fall back to the defaults.
func NewBinding(title, price ports.TextSink, text domain.StatusText) *Binding {
	return &Binding{
		title: title,
		price: price,
		text:  text.WithDefaults(),
	}
}

// Text returns the status strings in use.
func (b *Binding) Text() domain.StatusText {
	return b.text
}

// Placeholder shows the in-flight state.
// The pre-call values are captured only when no other request is already in flight,
// so overlapping loads never restore a loading placeholder.
func (b *Binding) Placeholder() {
	if !b.inFlight {
		b.prevTitle = b.current(b.title, b.lastTitle)
		b.prevPrice = b.current(b.price, b.lastPrice)
	}
	b.inFlight = true

	b.setTitle(b.text.Loading)
	b.setPrice(b.text.Placeholder)
}

// Apply writes the terminal display state for an outcome.
func (b *Binding) Apply(o domain.FetchOutcome) {
	switch o.Kind {
	case domain.OutcomeFound:
		if o.Record.Title != nil {
			b.setTitle(*o.Record.Title)
		} else if b.inFlight {
			b.setTitle(b.prevTitle)
		}
		if o.Record.Price != nil {
			b.setPrice(*o.Record.Price)
		} else if b.inFlight {
			b.setPrice(b.prevPrice)
		}
	case domain.OutcomeFaulted:
		// Price keeps the in-flight placeholder.
		b.setTitle(b.text.Error)
	case domain.OutcomeMissing:
		b.setTitle(b.text.NotFound)
		b.setPrice("")
	case domain.OutcomeNotReady:
		b.setTitle(b.text.NotReady)
	}
	b.inFlight = false
}

func (b *Binding) current(sink ports.TextSink, last string) string {
	if r, ok := sink.(ports.TextReader); ok {
		return r.Text()
	}
	return last
}

func (b *Binding) setTitle(s string) {
	b.lastTitle = s
	b.title.SetText(s)
}

func (b *Binding) setPrice(s string) {
	b.lastPrice = s
	b.price.SetText(s)
}
