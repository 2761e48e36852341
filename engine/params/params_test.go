// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
	"github.com/pangaea-labs/lockstake/state"
)

func TestInitializeAndConfigure(t *testing.T) {
	sctx := sstore.NewContext(lockstake.BytesToAddress([]byte("engine")), state.New(nil))
	svc := New(sctx)

	admin := lockstake.BytesToAddress([]byte("admin"))
	reward := lockstake.BytesToAddress([]byte("reward-asset"))

	cfg := DefaultConfig()
	cfg.Administrator = admin
	cfg.RewardAsset = reward
	cfg.ProgramEnd = 10_000_000
	cfg.FundAmount = big.NewInt(1_000_000)
	cfg.AnnualYieldRate = 1
	require.NoError(t, svc.Initialize(cfg))

	got, err := svc.Administrator()
	require.NoError(t, err)
	assert.Equal(t, admin, got)

	got, err = svc.RewardAsset()
	require.NoError(t, err)
	assert.Equal(t, reward, got)

	end, err := svc.ProgramEnd()
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), end)

	fund, err := svc.FundAmount()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), fund)

	period, err := svc.RewardPeriod()
	require.NoError(t, err)
	assert.Equal(t, 30*lockstake.SecondsPerDay, period)

	delay, err := svc.WithdrawalDelay()
	require.NoError(t, err)
	assert.Equal(t, 7*lockstake.SecondsPerDay, delay)

	configured, err := svc.Configured()
	require.NoError(t, err)
	assert.False(t, configured)

	pool := lockstake.BytesToAddress([]byte("pool-asset"))
	source := lockstake.BytesToAddress([]byte("fund-source"))
	svc.ConfigurePool(pool, source)

	configured, err = svc.Configured()
	require.NoError(t, err)
	assert.True(t, configured)

	got, err = svc.PoolAsset()
	require.NoError(t, err)
	assert.Equal(t, pool, got)

	got, err = svc.FundSource()
	require.NoError(t, err)
	assert.Equal(t, source, got)
}
