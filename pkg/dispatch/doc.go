/*
Package dispatch routes verified interactions to an immediate response.

The Dispatcher is a small state machine over the interaction type:

  - Handshake: answered with an acknowledgement, no side effects.
  - Command: looked up in a static CommandTable. Deferred commands publish a QueuedTask and
    answer with a deferred acknowledgement whatever the publish outcome; every other command
    is answered with content directly.
  - Anything else: 405 with an empty body.

The Dispatcher never performs the command's real work. That happens in the completion
worker, after the queue delivers the task.
*/
package dispatch
