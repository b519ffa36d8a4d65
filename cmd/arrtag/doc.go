// Package main hosts the arrtag CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, opens the main and
// debug log streams, and hands an immutable config to the reconcile
// coordinator. Subcommands cover a reconciliation run, backend preflight
// checks, a test notification, and configuration scaffolding.
package main
