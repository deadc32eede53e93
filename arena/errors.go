// ABOUTME: Sentinel errors for handle access
// ABOUTME: Used both as panic values and for errors.Is matching

package arena

import "errors"

var (
	// ErrCollected is the panic value of Get/GetMut on a handle whose
	// allocation has been swept.
	ErrCollected = errors.New("arena: access to a collected allocation")

	// ErrNilHandle is the panic value of Get/GetMut on a zero Handle.
	ErrNilHandle = errors.New("arena: access through a nil handle")
)
