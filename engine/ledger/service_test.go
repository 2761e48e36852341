// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

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

var (
	engineAddr = lockstake.BytesToAddress([]byte("engine"))
	alice      = lockstake.BytesToAddress([]byte("alice"))
	bob        = lockstake.BytesToAddress([]byte("bob"))
)

func newService() *Service {
	return New(sstore.NewContext(engineAddr, state.New(nil)))
}

func TestAddAndSubtract(t *testing.T) {
	svc := newService()

	require.NoError(t, svc.AddPoints(alice, big.NewInt(82)))
	require.NoError(t, svc.AddPoints(bob, big.NewInt(41)))

	total, err := svc.TotalPoints()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(123), total)

	require.NoError(t, svc.SubtractPoints(alice, big.NewInt(82)))

	balance, _ := svc.PointBalance(alice)
	assert.Equal(t, int64(0), balance.Int64())
	total, _ = svc.TotalPoints()
	assert.Equal(t, big.NewInt(41), total)
}

func TestTotalMatchesSumOfBalances(t *testing.T) {
	svc := newService()
	participants := []lockstake.Address{alice, bob, lockstake.BytesToAddress([]byte("carol"))}

	require.NoError(t, svc.AddPoints(participants[0], big.NewInt(10)))
	require.NoError(t, svc.AddPoints(participants[1], big.NewInt(20)))
	require.NoError(t, svc.AddPoints(participants[2], big.NewInt(30)))
	require.NoError(t, svc.SubtractPoints(participants[1], big.NewInt(20)))

	sum := new(big.Int)
	for _, p := range participants {
		balance, err := svc.PointBalance(p)
		require.NoError(t, err)
		sum.Add(sum, balance)
	}

	total, err := svc.TotalPoints()
	require.NoError(t, err)
	assert.Equal(t, sum, total)
}

func TestUnderflowRejected(t *testing.T) {
	svc := newService()

	require.NoError(t, svc.AddPoints(alice, big.NewInt(5)))

	err := svc.SubtractPoints(alice, big.NewInt(6))
	assert.ErrorIs(t, err, reverts.ErrUnderflow)

	// state untouched
	balance, _ := svc.PointBalance(alice)
	assert.Equal(t, big.NewInt(5), balance)
	total, _ := svc.TotalPoints()
	assert.Equal(t, big.NewInt(5), total)
}

func TestOverflowRejected(t *testing.T) {
	svc := newService()

	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, svc.AddPoints(alice, max))

	err := svc.AddPoints(alice, big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrOverflow)
}

func TestReadAndZero(t *testing.T) {
	svc := newService()

	require.NoError(t, svc.AddPoints(alice, big.NewInt(82)))

	balance, err := svc.ReadAndZero(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(82), balance)

	// balance zeroed, total untouched
	zeroed, _ := svc.PointBalance(alice)
	assert.Equal(t, int64(0), zeroed.Int64())
	total, _ := svc.TotalPoints()
	assert.Equal(t, big.NewInt(82), total)

	// a second read returns zero
	balance, err = svc.ReadAndZero(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Int64())
}
