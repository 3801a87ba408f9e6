/*
Package domain contains the core types of the brochure client.

It is kept pure and free of I/O, following Hexagonal Architecture principles:
adapters translate their backends into these types and sentinel errors.

# Key Entities

  - ConnectionState: readiness of the remote data service (forward-only).
  - Record: typed optional-field view of a brochure payload, decoded with mapstructure.
  - FetchOutcome: the classified result of one fetch (NotReady, Faulted, Missing, Found).
  - StatusText: the strings shown on the display for each outcome.
  - Hooks: observability callbacks for initialization and fetches.
*/
package domain
