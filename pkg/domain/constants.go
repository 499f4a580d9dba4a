package domain

// Wire header names set by the platform on every interaction callback.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// Field constants for task argument maps and queue payloads.
const (
	// ArgName is the argument key carrying the first option value of the hello command.
	ArgName = "name"

	// CommandHello is the only command with deferred semantics out of the box.
	CommandHello = "hello"

	// DefaultImmediateContent is returned for commands that are not deferred.
	DefaultImmediateContent = "Hello world!"
)
