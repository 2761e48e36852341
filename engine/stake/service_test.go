// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangaea-labs/lockstake/engine/reverts"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
	"github.com/pangaea-labs/lockstake/state"
)

var alice = lockstake.BytesToAddress([]byte("alice"))

func newService() *Service {
	sctx := sstore.NewContext(lockstake.BytesToAddress([]byte("engine")), state.New(nil))
	return New(sctx, DefaultBands())
}

func TestCalcPoints(t *testing.T) {
	// 1000 * 1 * 30 / 365 = 82 (truncating)
	assert.Equal(t, big.NewInt(82), CalcPoints(big.NewInt(1000), 1, 30))
	// degenerate combination truncates to zero
	assert.Equal(t, int64(0), CalcPoints(big.NewInt(10), 1, 30).Int64())
	// rate scales linearly
	assert.Equal(t, big.NewInt(164), CalcPoints(big.NewInt(1000), 2, 30))
}

func TestCreateAndRemove(t *testing.T) {
	svc := newService()

	stake, err := svc.Create(alice, big.NewInt(1000), 30, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(82), stake.ExpectedPoints)
	assert.Equal(t, 30*lockstake.SecondsPerDay, stake.LockDuration)
	assert.Equal(t, uint64(1000), stake.StartTime)

	got, err := svc.GetExisting(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), got.Amount)

	// second lock while live must fail
	_, err = svc.Create(alice, big.NewInt(500), 30, 1, 2000)
	assert.ErrorIs(t, err, reverts.ErrAlreadyStaking)

	require.NoError(t, svc.Remove(alice))
	_, err = svc.GetExisting(alice)
	assert.ErrorIs(t, err, reverts.ErrNotStaking)
}

func TestCreateValidation(t *testing.T) {
	svc := newService()

	_, err := svc.Create(alice, big.NewInt(0), 30, 1, 0)
	assert.ErrorIs(t, err, reverts.ErrZeroAmount)

	// degenerate amount/duration rounds the points to zero
	_, err = svc.Create(alice, big.NewInt(10), 30, 1, 0)
	assert.ErrorIs(t, err, reverts.ErrZeroReward)

	// amount above the band cap
	_, err = svc.Create(alice, big.NewInt(2_000_001), 90, 1, 0)
	assert.ErrorIs(t, err, reverts.ErrStakeTooLarge)

	// at the cap is fine
	_, err = svc.Create(alice, big.NewInt(2_000_000), 90, 1, 0)
	assert.NoError(t, err)
}

func TestBandBoundaries(t *testing.T) {
	bands := DefaultBands()

	valid := []uint32{30, 45, 60, 90, 180, 360, 720}
	for _, days := range valid {
		assert.NotNil(t, FindBand(bands, days), "days=%d should be valid", days)
	}

	invalid := []uint32{0, 1, 29, 61, 89, 91, 179, 181, 359, 361, 719, 721}
	for _, days := range invalid {
		assert.Nil(t, FindBand(bands, days), "days=%d should be invalid", days)
	}
}

func TestHonoredBoundary(t *testing.T) {
	stake := &Stake{
		Amount:         big.NewInt(1000),
		LockDuration:   30 * lockstake.SecondsPerDay,
		StartTime:      1000,
		ExpectedPoints: big.NewInt(82),
	}

	boundary := stake.MaturesAt()
	assert.False(t, stake.Honored(boundary-1))
	assert.True(t, stake.Honored(boundary))
	assert.True(t, stake.Honored(boundary+1))
}
