// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stake owns the per-participant staking state machine:
// Unstaked -> Locked -> Unstaked. It validates lock parameters against the
// duration-band policy and freezes the expected reward points at lock time.
package stake

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/engine/reverts"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
)

var slotStakes = lockstake.BytesToBytes32([]byte("stakes"))

// Service manages stake records and lock-parameter validation.
type Service struct {
	stakes *sstore.Mapping[lockstake.Address, *Stake]
	bands  []Band
}

func New(sctx *sstore.Context, bands []Band) *Service {
	return &Service{
		stakes: sstore.NewMapping[lockstake.Address, *Stake](sctx, slotStakes),
		bands:  bands,
	}
}

// Get returns the participant's stake record; an empty record means Unstaked.
func (s *Service) Get(participant lockstake.Address) (*Stake, error) {
	stake, err := s.stakes.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	return stake, nil
}

// GetExisting returns the participant's live stake,
// failing with reverts.ErrNotStaking when there is none.
func (s *Service) GetExisting(participant lockstake.Address) (*Stake, error) {
	stake, err := s.Get(participant)
	if err != nil {
		return nil, err
	}
	if stake.IsEmpty() {
		return nil, reverts.ErrNotStaking
	}
	return stake, nil
}

// Create validates the lock parameters and persists a new stake record.
// The caller is responsible for the program-window gates.
func (s *Service) Create(
	participant lockstake.Address,
	amount *big.Int,
	durationDays uint32,
	annualYieldRate uint64,
	now uint64,
) (*Stake, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}

	existing, err := s.Get(participant)
	if err != nil {
		return nil, err
	}
	if !existing.IsEmpty() {
		return nil, reverts.ErrAlreadyStaking
	}

	band := FindBand(s.bands, durationDays)
	if band == nil {
		return nil, reverts.ErrInvalidLockDuration
	}
	if band.Cap != nil && amount.Cmp(band.Cap) > 0 {
		return nil, reverts.ErrStakeTooLarge
	}

	expectedPoints := CalcPoints(amount, annualYieldRate, durationDays)
	if expectedPoints.Sign() == 0 {
		return nil, reverts.ErrZeroReward
	}

	stake := &Stake{
		Amount:         amount,
		LockDuration:   uint64(durationDays) * lockstake.SecondsPerDay,
		StartTime:      now,
		ExpectedPoints: expectedPoints,
	}
	if err := s.stakes.Set(participant, stake); err != nil {
		return nil, errors.Wrap(err, "failed to set stake")
	}
	return stake, nil
}

// Remove deletes the stake record, returning the participant to Unstaked.
func (s *Service) Remove(participant lockstake.Address) error {
	if err := s.stakes.Delete(participant); err != nil {
		return errors.Wrap(err, "failed to remove stake")
	}
	return nil
}
