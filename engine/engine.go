// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine is the facade of the staking program. It composes the
// parameter, stake, ledger and vesting services over a single state and
// drives every mutating operation through the non-reentrant guard with
// checkpoint/revert atomicity.
package engine

import (
	"math/big"

	"github.com/pangaea-labs/lockstake/engine/ledger"
	"github.com/pangaea-labs/lockstake/engine/params"
	"github.com/pangaea-labs/lockstake/engine/reverts"
	"github.com/pangaea-labs/lockstake/engine/stake"
	"github.com/pangaea-labs/lockstake/engine/vesting"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/log"
	"github.com/pangaea-labs/lockstake/metrics"
	"github.com/pangaea-labs/lockstake/sstore"
	"github.com/pangaea-labs/lockstake/state"
	"github.com/pangaea-labs/lockstake/token"
)

var (
	metricLocks    = metrics.LazyLoadCounter("locks_total_count")
	metricUnlocks  = metrics.LazyLoadCounterVec("unlocks_total_count", []string{"premature"})
	metricClaims   = metrics.LazyLoadCounter("distribution_claims_total_count")
	metricReleases = metrics.LazyLoadCounter("vesting_releases_total_count")
	metricPoints   = metrics.LazyLoadGauge("points_total_gauge")
	metricLocked   = metrics.LazyLoadGauge("locked_balance_gauge")
)

// Engine is the staking program facade. It is not safe for concurrent use;
// operations are single-writer and strictly ordered.
type Engine struct {
	addr  lockstake.Address
	state *state.State

	params  *params.Service
	stakes  *stake.Service
	ledger  *ledger.Service
	vesting *vesting.Service

	sink    Sink
	logger  log.Logger
	entered bool
	pending []Event
}

// New attaches an engine to the given state under the engine address.
// The sink may be nil, discarding events.
func New(addr lockstake.Address, st *state.State, sink Sink) *Engine {
	sctx := sstore.NewContext(addr, st)
	return &Engine{
		addr:    addr,
		state:   st,
		params:  params.New(sctx),
		stakes:  stake.New(sctx, stake.DefaultBands()),
		ledger:  ledger.New(sctx),
		vesting: vesting.New(sctx),
		sink:    sink,
		logger:  log.WithContext("pkg", "engine"),
	}
}

// Address returns the engine's own address, the custodian of locked assets.
func (e *Engine) Address() lockstake.Address {
	return e.addr
}

// Params exposes the persisted program parameters.
func (e *Engine) Params() *params.Service {
	return e.params
}

// Initialize persists the fixed program parameters on a fresh state.
func (e *Engine) Initialize(cfg params.Config) error {
	return e.params.Initialize(cfg)
}

// run executes a mutating operation under the guard. On error the state is
// reverted to the checkpoint and buffered events are discarded; on success
// they are flushed to the sink.
func (e *Engine) run(op string, fn func() error) error {
	if e.entered {
		return reverts.ErrReentrancy
	}
	e.entered = true
	defer func() { e.entered = false }()

	e.pending = e.pending[:0]
	checkpoint := e.state.NewCheckpoint()
	if err := fn(); err != nil {
		e.state.RevertTo(checkpoint)
		e.pending = e.pending[:0]
		e.logger.Info(op+" failed", "error", err)
		return err
	}
	if e.sink != nil && len(e.pending) > 0 {
		if err := e.sink.Write(e.pending); err != nil {
			e.logger.Warn("failed to write events", "err", err)
		}
	}
	e.pending = e.pending[:0]
	return nil
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

// ConfigurePoolAsset performs the one-shot pool setup: records the pool
// asset and fund source and pulls the full reward fund into engine custody.
// Only the administrator may call it.
func (e *Engine) ConfigurePoolAsset(caller, poolAsset, fundSource lockstake.Address, now uint64) error {
	e.logger.Debug("configuring pool asset", "caller", caller, "poolAsset", poolAsset, "fundSource", fundSource)
	return e.run("configure pool asset", func() error {
		admin, err := e.params.Administrator()
		if err != nil {
			return err
		}
		if caller != admin {
			return reverts.ErrUnauthorized
		}
		configured, err := e.params.Configured()
		if err != nil {
			return err
		}
		if configured {
			return reverts.ErrAlreadyConfigured
		}

		rewardAsset, err := e.params.RewardAsset()
		if err != nil {
			return err
		}
		fundAmount, err := e.params.FundAmount()
		if err != nil {
			return err
		}

		fund := token.New(rewardAsset, e.state)
		balance, err := fund.BalanceOf(fundSource)
		if err != nil {
			return err
		}
		if balance.Cmp(fundAmount) < 0 {
			return reverts.ErrInsufficientFundBalance
		}
		allowance, err := fund.Allowance(fundSource, e.addr)
		if err != nil {
			return err
		}
		if allowance.Cmp(fundAmount) < 0 {
			return reverts.ErrInsufficientAllowance
		}
		if err := fund.TransferFrom(e.addr, fundSource, e.addr, fundAmount); err != nil {
			return reverts.ErrTransferFailed
		}

		e.params.ConfigurePool(poolAsset, fundSource)
		e.emit(Event{
			Kind:        KindPoolAssetConfigured,
			Participant: fundSource,
			Amount:      fundAmount,
			Time:        now,
		})
		e.logger.Info("pool asset configured",
			"poolAsset", poolAsset, "fundSource", fundSource, "fundAmount", fundAmount)
		return nil
	})
}

// LockTokens locks amount of the pool asset for durationDays, pulling the
// asset from the participant into engine custody and crediting the expected
// reward points.
func (e *Engine) LockTokens(participant lockstake.Address, amount *big.Int, durationDays uint32, now uint64) error {
	e.logger.Debug("locking tokens", "participant", participant, "amount", amount, "days", durationDays)
	return e.run("lock tokens", func() error {
		configured, err := e.params.Configured()
		if err != nil {
			return err
		}
		if !configured {
			return reverts.ErrNotConfigured
		}
		programEnd, err := e.params.ProgramEnd()
		if err != nil {
			return err
		}
		if now > programEnd {
			return reverts.ErrProgramEnded
		}
		if now+uint64(durationDays)*lockstake.SecondsPerDay > programEnd {
			return reverts.ErrLockBeyondProgramEnd
		}

		rate, err := e.params.AnnualYieldRate()
		if err != nil {
			return err
		}
		stk, err := e.stakes.Create(participant, amount, durationDays, rate, now)
		if err != nil {
			return err
		}
		if err := e.ledger.AddPoints(participant, stk.ExpectedPoints); err != nil {
			return err
		}

		poolAsset, err := e.params.PoolAsset()
		if err != nil {
			return err
		}
		pool := token.New(poolAsset, e.state)
		if err := pool.TransferFrom(e.addr, participant, e.addr, amount); err != nil {
			return reverts.ErrTransferFailed
		}
		if locked, err := pool.BalanceOf(e.addr); err == nil {
			metricLocked().Set(locked.Int64())
		}

		e.emit(Event{
			Kind:        KindLockRecorded,
			Participant: participant,
			Amount:      amount,
			Points:      stk.ExpectedPoints,
			Time:        now,
		})
		metricLocks().Add(1)
		if total, err := e.ledger.TotalPoints(); err == nil {
			metricPoints().Set(total.Int64())
		}
		e.logger.Info("tokens locked",
			"participant", participant, "amount", amount,
			"days", durationDays, "points", stk.ExpectedPoints)
		return nil
	})
}

// UnlockTokens returns the locked asset to the participant. A premature
// unlock revokes the expected points in full; the exact maturity boundary
// counts as honored.
func (e *Engine) UnlockTokens(participant lockstake.Address, now uint64) error {
	e.logger.Debug("unlocking tokens", "participant", participant)
	return e.run("unlock tokens", func() error {
		stk, err := e.stakes.GetExisting(participant)
		if err != nil {
			return err
		}
		if now <= stk.StartTime {
			return reverts.ErrSameInstantWithdrawal
		}

		premature := !stk.Honored(now)
		if premature {
			if err := e.ledger.SubtractPoints(participant, stk.ExpectedPoints); err != nil {
				return err
			}
		}
		if err := e.stakes.Remove(participant); err != nil {
			return err
		}

		poolAsset, err := e.params.PoolAsset()
		if err != nil {
			return err
		}
		pool := token.New(poolAsset, e.state)
		if err := pool.Transfer(e.addr, participant, stk.Amount); err != nil {
			return reverts.ErrTransferFailed
		}
		if locked, err := pool.BalanceOf(e.addr); err == nil {
			metricLocked().Set(locked.Int64())
		}

		e.emit(Event{
			Kind:        KindUnlocked,
			Participant: participant,
			Amount:      stk.Amount,
			Points:      stk.ExpectedPoints,
			Time:        now,
			Premature:   premature,
			Elapsed:     stk.Elapsed(now),
		})
		if premature {
			metricUnlocks().AddWithLabel(1, map[string]string{"premature": "true"})
		} else {
			metricUnlocks().AddWithLabel(1, map[string]string{"premature": "false"})
		}
		if total, err := e.ledger.TotalPoints(); err == nil {
			metricPoints().Set(total.Int64())
		}
		e.logger.Info("tokens unlocked",
			"participant", participant, "amount", stk.Amount,
			"premature", premature, "elapsed", stk.Elapsed(now))
		return nil
	})
}

// ClaimDistribution converts the participant's point balance into a pro-rata
// share of the reward fund and grants it for vesting. One shot per
// participant, only after the program has ended and the participant is
// unstaked.
func (e *Engine) ClaimDistribution(participant lockstake.Address, now uint64) error {
	e.logger.Debug("claiming distribution", "participant", participant)
	return e.run("claim distribution", func() error {
		if participant.IsZero() {
			return reverts.ErrInvalidRecipient
		}
		programEnd, err := e.params.ProgramEnd()
		if err != nil {
			return err
		}
		if now <= programEnd {
			return reverts.ErrProgramNotEnded
		}

		stk, err := e.stakes.Get(participant)
		if err != nil {
			return err
		}
		if !stk.IsEmpty() {
			return reverts.ErrStillStaking
		}

		record, err := e.vesting.Get(participant)
		if err != nil {
			return err
		}
		if record.Claimed {
			return reverts.ErrNothingEarned
		}
		balance, err := e.ledger.PointBalance(participant)
		if err != nil {
			return err
		}
		if balance.Sign() == 0 {
			return reverts.ErrNothingEarned
		}

		totalPoints, err := e.ledger.TotalPoints()
		if err != nil {
			return err
		}
		fundAmount, err := e.params.FundAmount()
		if err != nil {
			return err
		}
		// share = fundAmount * balance / totalPoints, rounding loss
		// stays with the fund
		share := new(big.Int).Mul(fundAmount, balance)
		share.Quo(share, totalPoints)
		if share.Sign() == 0 {
			return reverts.ErrZeroShare
		}

		if _, err := e.ledger.ReadAndZero(participant); err != nil {
			return err
		}
		if err := e.vesting.Grant(participant, share, now); err != nil {
			return err
		}

		e.emit(Event{
			Kind:        KindDistributionGranted,
			Participant: participant,
			Amount:      share,
			Points:      balance,
			Time:        now,
		})
		metricClaims().Add(1)
		e.logger.Info("distribution granted",
			"participant", participant, "share", share, "points", balance)
		return nil
	})
}

// Release pays out the participant's pending grant once the release window
// has opened and the withdrawal delay has passed.
func (e *Engine) Release(participant lockstake.Address, now uint64) error {
	e.logger.Debug("releasing vested reward", "participant", participant)
	return e.run("release vested reward", func() error {
		rewardPeriod, err := e.params.RewardPeriod()
		if err != nil {
			return err
		}
		withdrawalDelay, err := e.params.WithdrawalDelay()
		if err != nil {
			return err
		}
		released, err := e.vesting.Release(participant, rewardPeriod, withdrawalDelay, now)
		if err != nil {
			return err
		}

		rewardAsset, err := e.params.RewardAsset()
		if err != nil {
			return err
		}
		reward := token.New(rewardAsset, e.state)
		if err := reward.Transfer(e.addr, participant, released); err != nil {
			return reverts.ErrTransferFailed
		}

		e.emit(Event{
			Kind:        KindVestingReleased,
			Participant: participant,
			Amount:      released,
			Time:        now,
		})
		metricReleases().Add(1)
		e.logger.Info("vesting released", "participant", participant, "amount", released)
		return nil
	})
}

// GetStake returns the participant's live stake record, nil when unstaked.
func (e *Engine) GetStake(participant lockstake.Address) (*stake.Stake, error) {
	stk, err := e.stakes.Get(participant)
	if err != nil {
		return nil, err
	}
	if stk.IsEmpty() {
		return nil, nil
	}
	return stk, nil
}

// GetGrant returns the participant's vesting record, a zero record when the
// participant never claimed.
func (e *Engine) GetGrant(participant lockstake.Address) (*vesting.GrantRecord, error) {
	return e.vesting.Get(participant)
}

// PointBalance returns the participant's reward-point balance.
func (e *Engine) PointBalance(participant lockstake.Address) (*big.Int, error) {
	return e.ledger.PointBalance(participant)
}

// TotalPoints returns the global reward-point total.
func (e *Engine) TotalPoints() (*big.Int, error) {
	return e.ledger.TotalPoints()
}
