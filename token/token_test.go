// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/state"
)

var (
	asset = lockstake.BytesToAddress([]byte("asset"))
	alice = lockstake.BytesToAddress([]byte("alice"))
	bob   = lockstake.BytesToAddress([]byte("bob"))
)

func TestMintAndTransfer(t *testing.T) {
	tok := New(asset, state.New(nil))

	require.NoError(t, tok.Mint(alice, big.NewInt(1000)))

	supply, err := tok.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)

	require.NoError(t, tok.Transfer(alice, bob, big.NewInt(400)))

	balance, _ := tok.BalanceOf(alice)
	assert.Equal(t, big.NewInt(600), balance)
	balance, _ = tok.BalanceOf(bob)
	assert.Equal(t, big.NewInt(400), balance)

	// over-spend is rejected
	err = tok.Transfer(alice, bob, big.NewInt(601))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestTransferFrom(t *testing.T) {
	tok := New(asset, state.New(nil))
	spender := lockstake.BytesToAddress([]byte("engine"))

	require.NoError(t, tok.Mint(alice, big.NewInt(1000)))

	// no allowance yet
	err := tok.TransferFrom(spender, alice, bob, big.NewInt(100))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, tok.Approve(alice, spender, big.NewInt(300)))

	require.NoError(t, tok.TransferFrom(spender, alice, bob, big.NewInt(100)))

	remaining, _ := tok.Allowance(alice, spender)
	assert.Equal(t, big.NewInt(200), remaining)

	balance, _ := tok.BalanceOf(bob)
	assert.Equal(t, big.NewInt(100), balance)

	// allowance larger than balance still cannot over-spend
	require.NoError(t, tok.Approve(alice, spender, big.NewInt(10_000)))
	err = tok.TransferFrom(spender, alice, bob, big.NewInt(999_999))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSeparateAssetSpaces(t *testing.T) {
	st := state.New(nil)
	tokA := New(lockstake.BytesToAddress([]byte("asset-a")), st)
	tokB := New(lockstake.BytesToAddress([]byte("asset-b")), st)

	require.NoError(t, tokA.Mint(alice, big.NewInt(50)))

	balance, _ := tokB.BalanceOf(alice)
	assert.Equal(t, int64(0), balance.Int64())
}
