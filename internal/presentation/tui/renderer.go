package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Card formats the two display fields as a markdown brochure card.
func Card(title, price string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDash(title))
	fmt.Fprintf(&b, "**Fiyat:** %s\n", orDash(price))
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Printer writes outcomes and connection states to a terminal.
// Styling (glamour cards, coloured statuses) is only used when out is a TTY.
type Printer struct {
	out     io.Writer
	styled  bool
	profile termenv.Profile
	render  func(string) (string, error)
}

// NewPrinter creates a printer for out.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out, profile: termenv.Ascii}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.styled = true
		p.profile = termenv.EnvColorProfile()
		p.render = NewRenderer()
	}
	return p
}

// Outcome prints the final display state of a fetch.
func (p *Printer) Outcome(o domain.FetchOutcome, title, price string) error {
	if o.Kind == domain.OutcomeFound {
		card := Card(title, price)
		if p.styled {
			rendered, err := p.render(card)
			if err == nil {
				card = rendered
			}
		}
		_, err := fmt.Fprint(p.out, card)
		return err
	}

	line := title
	if price != "" {
		line += " (" + price + ")"
	}
	_, err := fmt.Fprintln(p.out, p.colour(o.Kind, line))
	return err
}

// State prints the connection state and, when failed, the reason.
func (p *Printer) State(state domain.ConnectionState, err error) error {
	s := p.profile.String("state: " + state.String()).Foreground(p.stateColour(state))
	if err != nil {
		_, werr := fmt.Fprintf(p.out, "%s\nreason: %v\n", s, err)
		return werr
	}
	_, werr := fmt.Fprintln(p.out, s)
	return werr
}

func (p *Printer) colour(kind domain.OutcomeKind, text string) termenv.Style {
	s := p.profile.String(text)
	switch kind {
	case domain.OutcomeFaulted:
		return s.Foreground(p.profile.Color("#f87171")).Bold()
	case domain.OutcomeMissing, domain.OutcomeNotReady:
		return s.Foreground(p.profile.Color("#fbbf24"))
	}
	return s
}

func (p *Printer) stateColour(state domain.ConnectionState) termenv.Color {
	switch state {
	case domain.StateReady:
		return p.profile.Color("#34d399")
	case domain.StateFailed:
		return p.profile.Color("#f87171")
	default:
		return p.profile.Color("#fbbf24")
	}
}
