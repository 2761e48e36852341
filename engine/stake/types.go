// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// Stake is one participant's live lock. At most one per participant;
// created by Lock, consumed and removed by Unlock.
type Stake struct {
	Amount         *big.Int // pool asset held by the engine for this lock
	LockDuration   uint64   // committed lock length, clock units (seconds)
	StartTime      uint64   // clock value at lock creation
	ExpectedPoints *big.Int // frozen at lock time; revoked in full on premature unlock
}

// IsEmpty returns whether the entry can be treated as absent.
func (s *Stake) IsEmpty() bool {
	return s == nil || s.Amount == nil || s.Amount.Sign() == 0
}

// Elapsed returns the time since the lock started.
func (s *Stake) Elapsed(now uint64) uint64 {
	return now - s.StartTime
}

// Honored returns whether the committed duration has fully elapsed.
// The exact boundary counts as honored.
func (s *Stake) Honored(now uint64) bool {
	return now >= s.StartTime+s.LockDuration
}

// MaturesAt returns the first clock value at which the lock is honored.
func (s *Stake) MaturesAt() uint64 {
	return s.StartTime + s.LockDuration
}

// CalcPoints computes the reward points for a lock:
//
//	amount * annualYieldRate * lockDays / 365
//
// with truncating division.
func CalcPoints(amount *big.Int, annualYieldRate uint64, lockDays uint32) *big.Int {
	points := new(big.Int).Mul(amount, new(big.Int).SetUint64(annualYieldRate))
	points.Mul(points, new(big.Int).SetUint64(uint64(lockDays)))
	return points.Quo(points, big.NewInt(lockstake.DaysPerYear))
}
