// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params persists the program parameters: fixed at initialization,
// except for the one-shot pool asset configuration.
package params

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/sstore"
)

// Config carries the parameters fixed at program initialization.
type Config struct {
	Administrator       lockstake.Address
	RewardAsset         lockstake.Address
	ProgramEnd          uint64   // clock value after which locking stops
	FundAmount          *big.Int // total reward fund, reward asset units
	AnnualYieldRate     uint64
	RewardPeriodDays    uint32
	WithdrawalDelayDays uint32
}

// DefaultConfig fills the vesting policy defaults; the caller sets the rest.
func DefaultConfig() Config {
	return Config{
		RewardPeriodDays:    lockstake.DefaultRewardPeriodDays,
		WithdrawalDelayDays: lockstake.DefaultWithdrawalDelayDays,
	}
}

// Service exposes the persisted program parameters.
type Service struct {
	administrator   *sstore.Address
	rewardAsset     *sstore.Address
	poolAsset       *sstore.Address
	fundSource      *sstore.Address
	programEnd      *sstore.Uint64
	fundAmount      *sstore.Uint256
	annualYieldRate *sstore.Uint64
	rewardPeriod    *sstore.Uint64
	withdrawDelay   *sstore.Uint64
	configured      *sstore.Flag
}

func New(sctx *sstore.Context) *Service {
	return &Service{
		administrator:   sstore.NewAddress(sctx, lockstake.KeyAdministrator),
		rewardAsset:     sstore.NewAddress(sctx, lockstake.KeyRewardAsset),
		poolAsset:       sstore.NewAddress(sctx, lockstake.KeyPoolAsset),
		fundSource:      sstore.NewAddress(sctx, lockstake.KeyFundSource),
		programEnd:      sstore.NewUint64(sctx, lockstake.KeyProgramEnd),
		fundAmount:      sstore.NewUint256(sctx, lockstake.KeyFundAmount),
		annualYieldRate: sstore.NewUint64(sctx, lockstake.KeyYieldRate),
		rewardPeriod:    sstore.NewUint64(sctx, lockstake.KeyRewardPeriod),
		withdrawDelay:   sstore.NewUint64(sctx, lockstake.KeyWithdrawDelay),
		configured:      sstore.NewFlag(sctx, lockstake.KeyPoolConfigured),
	}
}

// Initialize persists the fixed program parameters. Durations given in days
// are stored in clock units.
func (s *Service) Initialize(cfg Config) error {
	s.administrator.Set(cfg.Administrator)
	s.rewardAsset.Set(cfg.RewardAsset)
	s.programEnd.Set(cfg.ProgramEnd)
	if err := s.fundAmount.Set(cfg.FundAmount); err != nil {
		return errors.Wrap(err, "failed to set fund amount")
	}
	s.annualYieldRate.Set(cfg.AnnualYieldRate)
	s.rewardPeriod.Set(uint64(cfg.RewardPeriodDays) * lockstake.SecondsPerDay)
	s.withdrawDelay.Set(uint64(cfg.WithdrawalDelayDays) * lockstake.SecondsPerDay)
	return nil
}

// ConfigurePool records the one-shot pool asset configuration.
// Authorization and the configured gate belong to the caller.
func (s *Service) ConfigurePool(poolAsset, fundSource lockstake.Address) {
	s.poolAsset.Set(poolAsset)
	s.fundSource.Set(fundSource)
	s.configured.Set(true)
}

func (s *Service) Administrator() (lockstake.Address, error) { return s.administrator.Get() }
func (s *Service) RewardAsset() (lockstake.Address, error)   { return s.rewardAsset.Get() }
func (s *Service) PoolAsset() (lockstake.Address, error)     { return s.poolAsset.Get() }
func (s *Service) FundSource() (lockstake.Address, error)    { return s.fundSource.Get() }
func (s *Service) ProgramEnd() (uint64, error)               { return s.programEnd.Get() }
func (s *Service) FundAmount() (*big.Int, error)             { return s.fundAmount.Get() }
func (s *Service) AnnualYieldRate() (uint64, error)          { return s.annualYieldRate.Get() }

// RewardPeriod returns the release period in clock units.
func (s *Service) RewardPeriod() (uint64, error) { return s.rewardPeriod.Get() }

// WithdrawalDelay returns the post-window delay in clock units.
func (s *Service) WithdrawalDelay() (uint64, error) { return s.withdrawDelay.Get() }

// Configured reports whether the pool asset has been configured.
func (s *Service) Configured() (bool, error) { return s.configured.Get() }
