/*
Package redis provides Redis-backed adapters for herald.

Ledger implements ports.CompletionLedger with SET NX and a TTL, so several worker replicas
agree on which completion tokens were already handled.

Queue implements ports.TaskPublisher on top of a Redis list. Paired with Consume it replaces
the hosted HTTP queue for self-hosted deployments: tasks are pushed with RPUSH and popped with
BLPOP, and tasks acknowledged with a 5xx status are pushed back until the attempt limit moves
them to a dead-letter list.
*/
package redis
