/*
Package connector owns the one-time initialization of the remote data service.

A Connector moves Uninitialized -> Initializing -> Ready | Failed exactly once.
Initialize is fire-and-forget and idempotent; HandleIfReady is the readiness gate
the fetcher consults before every request. There is no automatic retry: a failed
connector stays failed, and a new attempt needs a new Connector.
*/
package connector
