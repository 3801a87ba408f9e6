// Package http exposes a brochure client over HTTP: a trigger endpoint for
// recognition events, read-only views of the display and connection state,
// and Prometheus metrics.
package http
