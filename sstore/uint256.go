// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sstore

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// ErrUint256Overflow is returned when a value does not fit into 256 bits.
var ErrUint256Overflow = errors.New("value out of uint256 range")

// ErrUint256Underflow is returned when a subtraction would go negative.
var ErrUint256Underflow = errors.New("value below zero")

// Uint256 is a storage cell holding an unsigned 256-bit integer,
// like an uint256 state variable in a contract.
type Uint256 struct {
	context *Context
	pos     lockstake.Bytes32
}

func NewUint256(context *Context, slot lockstake.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: slot}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 || value.BitLen() > 256 {
		return ErrUint256Overflow
	}
	u.context.state.SetStorage(u.context.address, u.pos, lockstake.BytesToBytes32(value.Bytes()))
	return nil
}

// Add increases the stored value by the given amount.
// It fails with ErrUint256Overflow when the sum exceeds 256 bits.
func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	stored.Add(stored, value)
	return u.Set(stored)
}

// Sub decreases the stored value by the given amount.
// It fails with ErrUint256Underflow when the result would be negative.
func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	stored.Sub(stored, value)
	if stored.Sign() < 0 {
		return ErrUint256Underflow
	}
	return u.Set(stored)
}
