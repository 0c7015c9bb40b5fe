// Package commands owns the operator commands that compose and transmit
// payloads.
//
// Ownership boundary:
// - command metadata (names, usage, examples)
// - line dispatch (/name params)
// - connection precheck before transmission
//
// Commands compose against store snapshots taken per invocation; they never
// write to the variable stores.
package commands
