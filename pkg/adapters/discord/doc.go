/*
Package discord adapts herald to the Discord platform.

DecodeInteraction turns a verified interaction callback into a domain.InboundInteraction.
Client implements ports.FollowupEditor and ports.CommandRegistrar on top of a discordgo
session, so the REST details (endpoints, rate-limit buckets, error bodies) stay in one place.
*/
package discord
