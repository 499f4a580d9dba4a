// Package worker completes deferred commands delivered by the queue.
//
// The Worker is transport-agnostic: it implements ports.TaskHandler and can be driven by a
// push endpoint or by a pull consumer alike.
package worker
