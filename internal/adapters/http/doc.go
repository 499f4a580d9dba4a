/*
Package http exposes herald over HTTP with a chi router.

	POST /interactions     signed platform callback (verify, decode, dispatch)
	POST /tasks/complete   push-queue delivery to the completion worker
	GET  /health           liveness
	GET  /info             build and API version
	GET  /metrics          Prometheus metrics, when enabled
	GET  /openapi.yaml     the embedded API document

Signature verification always happens first: an unsigned request never reaches the decoder,
whatever its method.
*/
package http
