/*
Package ports defines the driven ports (interfaces) for the Herald dispatcher.

These interfaces decouple the dispatch and completion logic from the queue transport and the
chat platform, so the core can be exercised without an HTTP layer.

# Key Interfaces

  - TaskPublisher: Hands a QueuedTask to a durable queue (QStash, Redis, memory).
  - TaskHandler: Consumes a delivered task and answers with an Ack, independent of transport.
  - FollowupEditor: Edits the original interaction response addressed by a completion token.
  - CompletionLedger: Claims completion tokens so duplicate deliveries are tolerated.
  - CommandRegistrar: Operator-side command registration against the platform REST API.
*/
package ports
