package core

// Frame is an encoded outbound event.
type Frame []byte

// ClientID identifies one live transport connection. A browser tab gets a
// fresh ClientID on every WebSocket upgrade; identities outlive it.
type ClientID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
