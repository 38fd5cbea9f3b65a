// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service to distinguish between different failure scenarios
// without inspecting driver errors. Lookup misses are reported with
// per-entity sentinels defined next to each repository (for example
// ErrRoomNotFound in room_repository.go).
package repository

import "errors"

// ErrRoomFull is returned by the booking repository when a conditional
// insert or room reassignment finds the target room already at capacity.
// The check runs inside a transaction holding a row lock on the room, so
// this error is authoritative even under concurrent requests.
var ErrRoomFull = errors.New("room full")
