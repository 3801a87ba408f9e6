/*
Package ports defines the driven ports (interfaces) of the brochure client.

These interfaces decouple the connector and fetcher from the remote data service
and from whatever UI owns the display.

# Key Interfaces

  - Service: dependency check plus the query handle, consumed by the connector.
  - Database: key-path reads against the remote service.
  - TextSink: a caller-owned text output.
  - Dispatcher: the single logical execution context all display writes run on.
*/
package ports
