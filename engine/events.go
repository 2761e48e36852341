// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"math/big"
	"sync"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// Event kinds emitted by the engine.
const (
	KindPoolAssetConfigured = "pool_asset_configured"
	KindLockRecorded        = "lock_recorded"
	KindUnlocked            = "unlocked"
	KindDistributionGranted = "distribution_granted"
	KindVestingReleased     = "vesting_released"
)

// Event is one observable state change. Events are buffered during an
// operation and reach the sink only if the operation succeeds.
type Event struct {
	Kind        string
	Participant lockstake.Address
	Amount      *big.Int // meaning depends on Kind
	Points      *big.Int // nil when the event carries no point change
	Time        uint64   // clock value of the operation

	// Unlocked only.
	Premature bool
	Elapsed   uint64
}

// Sink receives events from completed operations.
type Sink interface {
	Write(events []Event) error
}

// Recorder is an in-memory Sink.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Write(events []Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Events returns a snapshot of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
