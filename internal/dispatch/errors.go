package dispatch

import "errors"

var (
	// ErrNoDriverLocation is returned when going online without a known
	// position.
	ErrNoDriverLocation = errors.New("driver location unknown")

	// ErrAlreadyOnline is returned when going online twice.
	ErrAlreadyOnline = errors.New("already online")

	// ErrAlreadyOffline is returned when going offline while offline.
	ErrAlreadyOffline = errors.New("already offline")

	// ErrRequestNotFound is returned for an unknown ride request id. The
	// simulator's state is unchanged.
	ErrRequestNotFound = errors.New("ride request not found")

	// ErrNoPendingRequests is returned when accepting or rejecting with
	// nothing pending.
	ErrNoPendingRequests = errors.New("no pending ride requests")

	// ErrRideInProgress guards the one-AcceptedRide-per-session invariant.
	ErrRideInProgress = errors.New("a ride is already in progress")
)
