// Package inspect serves a live view of the reconciler's tree over
// HTTP. It observes build passes, keeps the latest generation as a JSON
// snapshot, and pushes updates to WebSocket clients. It is a
// development aid and binds to loopback by default.
package inspect
