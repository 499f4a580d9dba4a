package domain

import "errors"

// ErrMissingPublicKey is returned at startup when no verification key is configured.
// It is the only error that should halt the process.
var ErrMissingPublicKey = errors.New("missing platform public key")

// ErrInvalidSignature is returned when a request signature does not verify.
var ErrInvalidSignature = errors.New("invalid request signature")

// ErrUnsupportedInteraction is returned for interaction types other than handshake and command.
var ErrUnsupportedInteraction = errors.New("unsupported interaction type")

// ErrInvalidTask is returned when a queued task lacks the fields required to complete it.
var ErrInvalidTask = errors.New("invalid task")

// ErrDuplicateTask is returned when a task for the same completion token was already claimed.
var ErrDuplicateTask = errors.New("duplicate task")

// ErrCommandNotFound is returned when no completer is registered for a command name.
var ErrCommandNotFound = errors.New("command not found")
