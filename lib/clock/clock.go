// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock time for testability. Production
// code injects Real(); tests inject Fake() and advance time explicitly.
//
// Token freshness decisions depend on the current time, so every
// component that checks expiry accepts a Clock instead of calling
// time.Now directly.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
