// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"sync/atomic"
	"time"
)

// Clock time source of the executor. It is read once per transaction.
type Clock interface {
	Now() time.Time
}

var deltaTime int64

// SetTimeDelta realtime - localtime
// 超过60s 不做修正
func SetTimeDelta(dt int64) {
	if dt > 60*int64(time.Second) || dt < -60*int64(time.Second) {
		dt = 0
	}
	atomic.StoreInt64(&deltaTime, dt)
}

// Now local time corrected by the configured delta
func Now() time.Time {
	dt := time.Duration(atomic.LoadInt64(&deltaTime))
	return time.Now().Add(dt)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return Now() }

// SystemClock the default clock
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock a settable clock, used by tests and replays
type FixedClock struct {
	unix int64
}

// NewFixedClock clock at unix seconds t
func NewFixedClock(t int64) *FixedClock {
	return &FixedClock{unix: t}
}

// Now implements Clock
func (c *FixedClock) Now() time.Time {
	return time.Unix(atomic.LoadInt64(&c.unix), 0)
}

// Set moves the clock to unix seconds t
func (c *FixedClock) Set(t int64) {
	atomic.StoreInt64(&c.unix, t)
}

// Add moves the clock forward by d seconds
func (c *FixedClock) Add(d int64) {
	atomic.AddInt64(&c.unix, d)
}
