// Package cli provides the interactive anagrafe command-line client.
//
// It wires configuration, the HTTP transport, the read cache and the person
// services, then runs a REPL for looking up, searching, creating, editing and
// deleting Person records. The codice fiscale of a loaded record is locked:
// edits always target the identifier the record was loaded with.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A background janitor prunes expired cache entries while the REPL runs.
// See App and runREPL for details.
package cli
