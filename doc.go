/*
Package herald answers signed chat-platform interactions and completes slow commands out of band.

The platform gives a webhook about three seconds to answer. Herald verifies the Ed25519
signature over the timestamp and raw body, answers handshakes, and for long-running commands
returns a deferred acknowledgement while the work is pushed to a queue. A completion worker
receives the task later and edits the original response through the platform's follow-up
webhook.

# Flow

	platform --signed POST--> /interactions --verify--> dispatcher --publish--> queue
	                                                        |
	                                        deferred ack <--+
	queue --POST--> /tasks/complete --> worker --PATCH @original--> platform

# Usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app, err := herald.New(cfg, herald.WithLogger(logger))
	if err != nil {
		// errors.Is(err, domain.ErrMissingPublicKey) when DISCORD_PUBLIC_KEY is unset
		log.Fatal(err)
	}
	defer app.Close()

	http.ListenAndServe(cfg.Addr, app.Handler())

# Queues

Config.Queue selects the transport for deferred tasks:

  - qstash: an HTTP push queue that POSTs each task back to /tasks/complete.
  - redis: a Redis list drained by App.Consume, for self-hosted deployments.
  - memory: an in-process loopback, for local development.

Whatever the transport, the worker tolerates duplicate delivery: completion tokens are
claimed in a ledger (Redis when HERALD_REDIS_ADDR is set) before the follow-up edit.
*/
package herald
