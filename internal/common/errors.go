package common

import "errors"

// Failure taxonomy for the messaging core. Everything is scoped to the
// messaging view; nothing here is fatal to the process.
var (
	// ErrDirectoryUnavailable means the participant directory could not be
	// resolved. Callers degrade to "no counterparts" rather than failing the
	// whole page.
	ErrDirectoryUnavailable = errors.New("participant directory unavailable")

	// ErrStoreUnavailable means the message store could not serve a read or
	// write. Cold-load callers show an error state, not an empty list.
	ErrStoreUnavailable = errors.New("message store unavailable")

	// ErrSendRejected means the message was refused before persistence
	// (blank content or an invalid pair). Safe to retry with fixed input.
	ErrSendRejected = errors.New("message rejected")

	// ErrTransportDisconnected means the push feed dropped. Live updates
	// stop; already-derived state stays valid and a manual refresh recovers.
	ErrTransportDisconnected = errors.New("push transport disconnected")
)
