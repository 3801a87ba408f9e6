package domain

import "strings"

// Collection is the fixed first segment of every record path.
const Collection = "brochures"

// Field names read from a record payload. Used as mapstructure tags.
const (
	FieldTitle = "title"
	FieldPrice = "price"
)

// RecordPath builds the slash-delimited key path for an identifier, e.g. "brochures/car_01".
func RecordPath(id string) string {
	return Collection + "/" + id
}

// ValidateIdentifier checks the only local rule on identifiers: they are not blank.
// Format validation belongs to the remote service.
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyIdentifier
	}
	return nil
}
