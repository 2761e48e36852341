// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible transfer collaborator of the engine:
// balances and allowances held in state under the asset's address.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
	"github.com/pangaea-labs/lockstake/state"
)

var (
	slotTotalSupply = lockstake.BytesToBytes32([]byte("total-supply"))
	slotBalances    = lockstake.BytesToBytes32([]byte("balances"))
	slotAllowances  = lockstake.BytesToBytes32([]byte("allowances"))
)

var (
	// ErrInsufficientBalance is returned when a transfer exceeds the sender's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance is returned when a pull exceeds the spender's allowance.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Token is a fungible asset ledger bound to one asset address.
type Token struct {
	asset lockstake.Address

	totalSupply *sstore.Uint256
	balances    *sstore.Mapping[lockstake.Address, *big.Int]
	allowances  *sstore.Mapping[lockstake.Bytes32, *big.Int]
}

// New creates a token ledger for the given asset address.
func New(asset lockstake.Address, st *state.State) *Token {
	sctx := sstore.NewContext(asset, st)
	return &Token{
		asset:       asset,
		totalSupply: sstore.NewUint256(sctx, slotTotalSupply),
		balances:    sstore.NewMapping[lockstake.Address, *big.Int](sctx, slotBalances),
		allowances:  sstore.NewMapping[lockstake.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

// Asset returns the asset address this ledger is bound to.
func (t *Token) Asset() lockstake.Address {
	return t.asset
}

func allowanceKey(owner, spender lockstake.Address) lockstake.Bytes32 {
	return lockstake.Blake2b(owner.Bytes(), spender.Bytes())
}

// TotalSupply returns the minted supply of the asset.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// BalanceOf returns the balance of the given account.
func (t *Token) BalanceOf(addr lockstake.Address) (*big.Int, error) {
	balance, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if balance == nil {
		return new(big.Int), nil
	}
	return balance, nil
}

// Allowance returns the amount the spender may pull from the owner.
func (t *Token) Allowance(owner, spender lockstake.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	if allowance == nil {
		return new(big.Int), nil
	}
	return allowance, nil
}

// Approve sets the amount the spender may pull from the owner.
func (t *Token) Approve(owner, spender lockstake.Address, amount *big.Int) error {
	return t.allowances.Set(allowanceKey(owner, spender), amount)
}

// Mint credits the account with new supply. Used at genesis and in tests.
func (t *Token) Mint(addr lockstake.Address, amount *big.Int) error {
	if err := t.addBalance(addr, amount); err != nil {
		return err
	}
	return t.totalSupply.Add(amount)
}

// Transfer moves amount from one account to another.
// Fails with ErrInsufficientBalance without touching state.
func (t *Token) Transfer(from, to lockstake.Address, amount *big.Int) error {
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	return t.addBalance(to, amount)
}

// TransferFrom lets spender move amount from owner to recipient, consuming
// the spender's allowance. Fails with ErrInsufficientAllowance or
// ErrInsufficientBalance without touching state.
func (t *Token) TransferFrom(spender, owner, to lockstake.Address, amount *big.Int) error {
	allowance, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.Transfer(owner, to, amount); err != nil {
		return err
	}
	return t.allowances.Set(allowanceKey(owner, spender), new(big.Int).Sub(allowance, amount))
}

func (t *Token) addBalance(addr lockstake.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	return t.balances.Set(addr, new(big.Int).Add(balance, amount))
}

func (t *Token) subBalance(addr lockstake.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return t.balances.Set(addr, new(big.Int).Sub(balance, amount))
}
