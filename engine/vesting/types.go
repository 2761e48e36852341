// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import "math/big"

// GrantRecord is one participant's vesting account. Created at the first
// grant and never deleted; Claimed marks the one-shot distribution claim
// so a zero RewardAmount stays distinguishable from "never claimed".
type GrantRecord struct {
	RewardAmount    *big.Int // reward asset due for release
	LastClaimedTime uint64   // anchor of the release window
	ReleasedTotal   *big.Int // lifetime released amount
	Claimed         bool
}

func (r *GrantRecord) normalize() *GrantRecord {
	if r.RewardAmount == nil {
		r.RewardAmount = new(big.Int)
	}
	if r.ReleasedTotal == nil {
		r.ReleasedTotal = new(big.Int)
	}
	return r
}
