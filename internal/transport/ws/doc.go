// Package ws owns the WebSocket connection composed payloads are sent over.
//
// Ownership boundary:
// - dial with handshake timeout and retry backoff
// - text/binary message writes with write deadlines
// - open -> closing -> closed state tracking
// - delivery of received messages to a callback
package ws
