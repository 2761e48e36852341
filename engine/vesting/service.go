// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vesting keeps the per-participant grant records and enforces the
// release schedule: a grant becomes payable one reward period after its
// anchor time, plus the withdrawal delay.
package vesting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/engine/reverts"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
)

var slotGrants = lockstake.BytesToBytes32([]byte("grants"))

// Service manages grant records and the release gates.
type Service struct {
	grants *sstore.Mapping[lockstake.Address, *GrantRecord]
}

func New(sctx *sstore.Context) *Service {
	return &Service{
		grants: sstore.NewMapping[lockstake.Address, *GrantRecord](sctx, slotGrants),
	}
}

// Get returns the participant's grant record, a zero record when absent.
func (s *Service) Get(participant lockstake.Address) (*GrantRecord, error) {
	record, err := s.grants.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get grant record")
	}
	return record.normalize(), nil
}

// Grant credits the participant's pending reward and marks the distribution
// claimed. Amounts accumulate; the record is never overwritten.
func (s *Service) Grant(participant lockstake.Address, amount *big.Int, now uint64) error {
	record, err := s.Get(participant)
	if err != nil {
		return err
	}
	if record.Claimed {
		return reverts.ErrNothingEarned
	}

	record.RewardAmount = new(big.Int).Add(record.RewardAmount, amount)
	record.LastClaimedTime = now
	record.Claimed = true
	if err := s.grants.Set(participant, record); err != nil {
		return errors.Wrap(err, "failed to set grant record")
	}
	return nil
}

// Release pays out the pending reward once the release window has opened
// and the withdrawal delay has passed. It returns the released amount;
// the caller moves the asset.
func (s *Service) Release(
	participant lockstake.Address,
	rewardPeriod uint64,
	withdrawalDelay uint64,
	now uint64,
) (*big.Int, error) {
	record, err := s.Get(participant)
	if err != nil {
		return nil, err
	}
	if record.RewardAmount.Sign() == 0 {
		return nil, reverts.ErrNothingDue
	}
	if now < record.LastClaimedTime+rewardPeriod {
		return nil, reverts.ErrTooEarly
	}
	if now < record.LastClaimedTime+rewardPeriod+withdrawalDelay {
		return nil, reverts.ErrWithdrawalDelayNotReached
	}

	released := record.RewardAmount
	record.ReleasedTotal = new(big.Int).Add(record.ReleasedTotal, released)
	record.LastClaimedTime = now
	record.RewardAmount = new(big.Int)
	if err := s.grants.Set(participant, record); err != nil {
		return nil, errors.Wrap(err, "failed to set grant record")
	}
	return released, nil
}
