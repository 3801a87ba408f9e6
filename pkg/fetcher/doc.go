/*
Package fetcher performs single-record lookups against the remote data service.

Each Load runs a small state machine:

	Idle -> Done[NotReady]                       (gate closed, no request sent)
	Idle -> Loading -> Done[Faulted|Missing|Found]

The Loading placeholder, the classification and the final display update are
ordered through a ports.Dispatcher, so sinks are only touched from one context.
Requests are numbered; a completion whose number is not the latest issued is
reported as superseded and leaves the display alone.
*/
package fetcher
