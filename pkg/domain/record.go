package domain

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Record is the typed view of a brochure payload.
// Both fields are optional: a nil pointer means the key was absent (or null) remotely.
type Record struct {
	Title *string `json:"title,omitempty" mapstructure:"title"`
	Price *string `json:"price,omitempty" mapstructure:"price"`
}

// DecodeRecord converts a generic structural value (as returned by a Database) into a Record.
// Scalars are coerced to strings, so a numeric price of 25000 becomes "25000".
// A value that is not a mapping, or whose fields cannot be coerced, yields ErrMalformedPayload.
func DecodeRecord(value any) (Record, error) {
	var rec Record
	if value == nil || reflect.ValueOf(value).Kind() != reflect.Map {
		return rec, fmt.Errorf("%w: expected a field mapping, got %T", ErrMalformedPayload, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return rec, err
	}
	if err := decoder.Decode(value); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return rec, nil
}

// IsEmptyValue reports whether a stored value counts as "no record":
// nil, an empty string or an empty mapping.
func IsEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Ptr returns a pointer to s. Handy for building Records in hosts and tests.
func Ptr(s string) *string {
	return &s
}
