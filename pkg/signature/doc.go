/*
Package signature verifies the Ed25519 signatures attached to platform interaction callbacks.

The signed message is the request timestamp header followed by the raw request body,
byte-exact. Verification fails closed: malformed hex, wrong key or signature lengths, and
bad signatures all yield false, and no input can make Verify panic.

Callers that observe a failed verification must answer HTTP 401 and stop processing the body.
*/
package signature
