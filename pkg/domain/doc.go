/*
Package domain contains the core domain models for the Herald interaction dispatcher.

It defines the entities that travel through the deferred-response protocol: the inbound
interaction received from the chat platform, the task handed to the queue, and the
completion message delivered back to the platform. This package is kept pure and free of
I/O, following Hexagonal Architecture principles.

# Key Entities

  - InboundInteraction: A verified handshake or command invocation, immutable once received.
  - Response: The immediate HTTP-shaped answer returned to the platform.
  - QueuedTask: The unit of deferred work, carrying the completion token untouched.
  - CompletionMessage: The final content delivered through the follow-up edit.
  - PublishResult / Ack: Explicit outcomes of best-effort operations.
*/
package domain
