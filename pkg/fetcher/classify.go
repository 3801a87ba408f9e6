package fetcher

import (
	"errors"

	"github.com/aretw0/brochure/pkg/domain"
)

// Classify turns the result of one read into an outcome, in priority order:
// fault, then missing/empty, then decoded record. A present value that is not
// a field mapping is Missing with ErrMalformedPayload.
func Classify(value any, err error) domain.FetchOutcome {
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.FetchOutcome{Kind: domain.OutcomeMissing, Err: err}
		}
		return domain.FetchOutcome{Kind: domain.OutcomeFaulted, Err: err}
	}

	if domain.IsEmptyValue(value) {
		return domain.FetchOutcome{Kind: domain.OutcomeMissing, Err: domain.ErrRecordNotFound}
	}

	rec, err := domain.DecodeRecord(value)
	if err != nil {
		return domain.FetchOutcome{Kind: domain.OutcomeMissing, Err: err}
	}
	return domain.FetchOutcome{Kind: domain.OutcomeFound, Record: rec}
}
