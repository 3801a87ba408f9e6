package domain

// StatusText holds the human-readable strings written to the display for each outcome.
type StatusText struct {
	Loading     string // title while a read is in flight
	Placeholder string // price while a read is in flight
	Error       string // title on Faulted
	NotFound    string // title on Missing
	NotReady    string // title when the gate is closed
}

// DefaultStatusText returns the stock strings.
func DefaultStatusText() StatusText {
	return StatusText{
		Loading:     "Veri çekiliyor...",
		Placeholder: "...",
		Error:       "Hata",
		NotFound:    "Veri Yok",
		NotReady:    "Bağlantı hazır değil",
	}
}

// WithDefaults fills empty entries from DefaultStatusText.
func (t StatusText) WithDefaults() StatusText {
	def := DefaultStatusText()
	if t.Loading == "" {
		t.Loading = def.Loading
	}
	if t.Placeholder == "" {
		t.Placeholder = def.Placeholder
	}
	if t.Error == "" {
		t.Error = def.Error
	}
	if t.NotFound == "" {
		t.NotFound = def.NotFound
	}
	if t.NotReady == "" {
		t.NotReady = def.NotReady
	}
	return t
}
