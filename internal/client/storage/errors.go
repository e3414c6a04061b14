package storage

import "errors"

// Common client storage errors
var (
	// ErrUnavailable indicates the persistence substrate could not be opened
	// (locked file, no permissions). Offline features cannot work without it.
	ErrUnavailable = errors.New("local storage unavailable")

	// ErrRead indicates an I/O failure on a single read operation
	ErrRead = errors.New("storage read failed")

	// ErrWrite indicates an I/O failure on a single write operation
	ErrWrite = errors.New("storage write failed")

	// ErrCacheMiss indicates no cached response exists for the endpoint.
	// Это не сбой: отсутствие записи — штатное состояние кэша.
	ErrCacheMiss = errors.New("no cached response for endpoint")

	// ErrSessionNotFound indicates no stored session exists
	ErrSessionNotFound = errors.New("session not found")
)
