// Package repository provides the gateway's durable storage: a
// small key-value layer standing in for the original client's
// localStorage, the session bundle persisted through it, and the
// MySQL-backed notification history. Sentinel errors defined here
// are shared across the repositories so higher layers can branch
// on failure kind without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a key or row does not exist. The
// session layer treats it (like every other storage failure) as
// "no session" rather than an error worth surfacing.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the backing store cannot be
// reached. Callers degrade: sessions resolve to unauthenticated,
// prefetch and throttling switch themselves off.
var ErrUnavailable = errors.New("storage unavailable")
