/*
Package observability exposes Prometheus metrics for the brochure client.

Metrics are fed through domain.Hooks, so the connector and fetcher stay
unaware of Prometheus.
*/
package observability
