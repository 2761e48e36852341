// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// Band is one duration band of the lock policy. A lock duration is valid only
// if it falls inside a band; the band's cap bounds the stake amount.
// A nil Cap means the band is uncapped.
type Band struct {
	MinDays uint32
	MaxDays uint32
	Cap     *big.Int
}

// Contains returns whether the duration falls inside the band.
func (b *Band) Contains(days uint32) bool {
	return days >= b.MinDays && days <= b.MaxDays
}

// DefaultBands is the reference lock policy: a short uncapped range band and
// four exact long durations with decreasing caps.
func DefaultBands() []Band {
	return []Band{
		{MinDays: 30, MaxDays: 60, Cap: nil},
		{MinDays: 90, MaxDays: 90, Cap: big.NewInt(2_000_000)},
		{MinDays: 180, MaxDays: 180, Cap: big.NewInt(1_000_000)},
		{MinDays: 360, MaxDays: 360, Cap: big.NewInt(500_000)},
		{MinDays: 720, MaxDays: 720, Cap: big.NewInt(250_000)},
	}
}

// FindBand returns the band containing the duration, or nil when the
// duration is out of the global bounds or falls between bands.
func FindBand(bands []Band, days uint32) *Band {
	if days < lockstake.MinLockDays || days > lockstake.MaxLockDays {
		return nil
	}
	for i := range bands {
		if bands[i].Contains(days) {
			return &bands[i]
		}
	}
	return nil
}
