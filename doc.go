/*
Package brochure fetches a single brochure record from a remote key-value service
and binds its title and price to two display sinks.

It implements a two-stage asynchronous state machine: one-time service
initialization (the connector) followed by per-trigger lookups (the fetcher)
that tell "not ready", "not found" and "transport failure" apart. All display
writes run on a single logical execution context, and only the latest request
may update the display.

# Usage

	svc := redis.New("localhost:6379", "", 0)
	client, err := brochure.New(svc, "car_01")
	if err != nil {
		log.Fatal(err)
	}
	client.Start(ctx)
	defer client.Close()

	// Later, when the brochure is recognized:
	outcome := <-client.Trigger()
	title, price, _ := client.Display(ctx)

Custom sinks (widgets, terminal lines) are bound with WithSinks, and hosts that
already own a UI thread pass it as WithDispatcher.
*/
package brochure
