// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sstore

import (
	"encoding/binary"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// Uint64 is a storage cell holding an unsigned 64-bit integer.
type Uint64 struct {
	context *Context
	pos     lockstake.Bytes32
}

func NewUint64(context *Context, slot lockstake.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: slot}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(storage[24:]), nil
}

func (u *Uint64) Set(value uint64) {
	var b lockstake.Bytes32
	binary.BigEndian.PutUint64(b[24:], value)
	u.context.state.SetStorage(u.context.address, u.pos, b)
}

// Address is a storage cell holding an address.
type Address struct {
	context *Context
	pos     lockstake.Bytes32
}

func NewAddress(context *Context, slot lockstake.Bytes32) *Address {
	return &Address{context: context, pos: slot}
}

func (a *Address) Get() (lockstake.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return lockstake.Address{}, err
	}
	return lockstake.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(value lockstake.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, lockstake.BytesToBytes32(value.Bytes()))
}

// Flag is a storage cell holding a boolean.
type Flag struct {
	context *Context
	pos     lockstake.Bytes32
}

func NewFlag(context *Context, slot lockstake.Bytes32) *Flag {
	return &Flag{context: context, pos: slot}
}

func (f *Flag) Get() (bool, error) {
	storage, err := f.context.state.GetStorage(f.context.address, f.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (f *Flag) Set(value bool) {
	var b lockstake.Bytes32
	if value {
		b[31] = 1
	}
	f.context.state.SetStorage(f.context.address, f.pos, b)
}
