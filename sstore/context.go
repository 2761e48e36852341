// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sstore provides typed storage cells over the raw state,
// similar to declared storage variables in a smart contract.
package sstore

import (
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/state"
)

// Context binds storage cells to the owning address within a state.
type Context struct {
	address lockstake.Address
	state   *state.State
}

func NewContext(address lockstake.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() lockstake.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
