/*
Package observability exposes herald's Prometheus metrics.

Metrics owns a private registry so tests and embedded uses never collide with the global one.
Hooks returns domain.LifecycleHooks that feed the collectors from dispatcher and worker events;
Handler serves the registry in the Prometheus text format.
*/
package observability
