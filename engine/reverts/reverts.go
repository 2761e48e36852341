// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the precondition-rejection errors of the engine.
// A revert carries no partial effect: the operation that returns one must
// leave state exactly as it was.
package reverts

import (
	"errors"
)

// ErrRevert is a precondition-style rejection.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevert reports whether err is (or wraps) a revert.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	var re *ErrRevert
	return errors.As(err, &re)
}

// Setup and authorization.
var (
	ErrNotConfigured     = New("pool asset is not configured")
	ErrAlreadyConfigured = New("pool asset is already configured")
	ErrUnauthorized      = New("caller is not the administrator")
)

// Input validation.
var (
	ErrZeroAmount          = New("amount must be positive")
	ErrInvalidLockDuration = New("lock duration is outside the defined bands")
	ErrStakeTooLarge       = New("amount exceeds the cap of the duration band")
	ErrInvalidRecipient    = New("recipient is the null identity")
)

// State conflicts.
var (
	ErrAlreadyStaking = New("participant already has a live stake")
	ErrNotStaking     = New("participant has no live stake")
	ErrStillStaking   = New("participant must unlock before claiming")
	ErrNothingEarned  = New("nothing earned or already claimed")
	ErrNothingDue     = New("no reward amount due for release")
)

// Timing violations.
var (
	ErrProgramEnded              = New("program has ended, no new locks")
	ErrProgramNotEnded           = New("program has not ended yet")
	ErrLockBeyondProgramEnd      = New("lock would end after the program end")
	ErrSameInstantWithdrawal     = New("cannot unlock at the lock instant")
	ErrTooEarly                  = New("release window has not opened")
	ErrWithdrawalDelayNotReached = New("withdrawal delay has not elapsed")
)

// Arithmetic violations.
var (
	ErrZeroReward = New("expected reward points are zero")
	ErrZeroShare  = New("distribution share rounds to zero")
	ErrOverflow   = New("point arithmetic overflow")
	ErrUnderflow  = New("point arithmetic underflow")
)

// Transfer boundary.
var (
	ErrTransferFailed          = New("asset transfer failed")
	ErrInsufficientFundBalance = New("fund source balance below fund amount")
	ErrInsufficientAllowance   = New("fund source allowance below fund amount")
)

// Re-entrancy.
var (
	ErrReentrancy = New("re-entrant call rejected")
)
