// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a get/update/delete against an identity the
	// remote service does not know. Callers branch on it with errors.Is;
	// during reconciliation it selects the create path, during purge it
	// is ignored.
	ErrNotFound = errors.New("not found")

	// ErrNoSession reports a client used before Connect succeeded.
	ErrNoSession = errors.New("no administrative session")
)

// SessionError reports a failed session establishment. Always fatal: no
// backup or restore work starts without a session.
type SessionError struct {
	Domain  string
	Wrapped error
}

func (e *SessionError) Error() string {
	if e.Domain != "" {
		return fmt.Sprintf("session to %s: %v", e.Domain, e.Wrapped)
	}
	return fmt.Sprintf("session: %v", e.Wrapped)
}

func (e *SessionError) Unwrap() error {
	return e.Wrapped
}

// RemoteError reports a single administrative call rejected by the remote
// service or lost in transport. Restore treats these as per-record failures:
// reported, counted, never fatal to the run.
type RemoteError struct {
	// Op is the operation that failed, e.g. "create voice route".
	Op string

	// Identity is the object the operation addressed, when known.
	Identity string

	// StatusCode is the HTTP status of the rejection, 0 for transport
	// failures.
	StatusCode int

	// Code and Message carry the service's own error body when present.
	Code    string
	Message string

	// Wrapped is the underlying transport error, if any.
	Wrapped error
}

func (e *RemoteError) Error() string {
	target := e.Op
	if e.Identity != "" {
		target = fmt.Sprintf("%s %q", e.Op, e.Identity)
	}
	switch {
	case e.Code != "":
		return fmt.Sprintf("%s: %d %s: %s", target, e.StatusCode, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", target, e.StatusCode, e.Message)
	case e.Wrapped != nil:
		return fmt.Sprintf("%s: %v", target, e.Wrapped)
	default:
		return target + ": remote operation failed"
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Wrapped
}

// NotFound reports whether err resolves to a missing remote object.
func NotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
