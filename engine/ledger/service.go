// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger is the reward-point ledger: per-participant point balances
// and the global running total. Pure bookkeeping; the invariant is
// TotalPoints == sum of all balances between operations.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/engine/reverts"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
)

var (
	slotTotalPoints   = lockstake.BytesToBytes32([]byte("total-points"))
	slotPointBalances = lockstake.BytesToBytes32([]byte("point-balances"))
)

// Service manages reward-point bookkeeping.
type Service struct {
	totalPoints *sstore.Uint256
	balances    *sstore.Mapping[lockstake.Address, *big.Int]
}

func New(sctx *sstore.Context) *Service {
	return &Service{
		totalPoints: sstore.NewUint256(sctx, slotTotalPoints),
		balances:    sstore.NewMapping[lockstake.Address, *big.Int](sctx, slotPointBalances),
	}
}

// TotalPoints returns the global running total.
func (s *Service) TotalPoints() (*big.Int, error) {
	return s.totalPoints.Get()
}

// PointBalance returns the participant's point balance.
func (s *Service) PointBalance(participant lockstake.Address) (*big.Int, error) {
	balance, err := s.balances.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get point balance")
	}
	if balance == nil {
		return new(big.Int), nil
	}
	return balance, nil
}

// AddPoints credits the participant and the running total.
// Fails with reverts.ErrOverflow past the 256-bit cell width.
func (s *Service) AddPoints(participant lockstake.Address, n *big.Int) error {
	balance, err := s.PointBalance(participant)
	if err != nil {
		return err
	}
	sum := new(big.Int).Add(balance, n)
	if sum.BitLen() > 256 {
		return reverts.ErrOverflow
	}
	if err := s.totalPoints.Add(n); err != nil {
		if errors.Is(err, sstore.ErrUint256Overflow) {
			return reverts.ErrOverflow
		}
		return err
	}
	return s.balances.Set(participant, sum)
}

// SubtractPoints debits the participant and the running total.
// Fails with reverts.ErrUnderflow when either would go negative; given the
// call-site invariants that indicates a caller bug.
func (s *Service) SubtractPoints(participant lockstake.Address, n *big.Int) error {
	balance, err := s.PointBalance(participant)
	if err != nil {
		return err
	}
	if balance.Cmp(n) < 0 {
		return reverts.ErrUnderflow
	}
	if err := s.totalPoints.Sub(n); err != nil {
		if errors.Is(err, sstore.ErrUint256Underflow) {
			return reverts.ErrUnderflow
		}
		return err
	}
	return s.balances.Set(participant, new(big.Int).Sub(balance, n))
}

// ReadAndZero returns the participant's balance and zeroes it.
// The running total is left untouched; used exactly once per participant at
// distribution-claim time.
func (s *Service) ReadAndZero(participant lockstake.Address) (*big.Int, error) {
	balance, err := s.PointBalance(participant)
	if err != nil {
		return nil, err
	}
	if err := s.balances.Set(participant, new(big.Int)); err != nil {
		return nil, err
	}
	return balance, nil
}
