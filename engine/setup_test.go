// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangaea-labs/lockstake/engine/params"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/state"
	"github.com/pangaea-labs/lockstake/token"
)

var (
	engineAddr  = lockstake.BytesToAddress([]byte("engine"))
	poolAsset   = lockstake.BytesToAddress([]byte("pool-asset"))
	rewardAsset = lockstake.BytesToAddress([]byte("reward-asset"))
	admin       = lockstake.BytesToAddress([]byte("admin"))
	treasury    = lockstake.BytesToAddress([]byte("treasury"))
	alice       = lockstake.BytesToAddress([]byte("alice"))
	bob         = lockstake.BytesToAddress([]byte("bob"))
)

func day(n uint64) uint64 { return n * lockstake.SecondsPerDay }

type testEnv struct {
	state    *state.State
	engine   *Engine
	recorder *Recorder
}

// newTestEnv initializes an engine with the reward fund minted to the
// treasury and approved to the engine, ready for ConfigurePoolAsset.
func newTestEnv(t *testing.T, fundAmount *big.Int, programEnd uint64) *testEnv {
	st := state.New(nil)
	recorder := &Recorder{}
	eng := New(engineAddr, st, recorder)

	cfg := params.DefaultConfig()
	cfg.Administrator = admin
	cfg.RewardAsset = rewardAsset
	cfg.ProgramEnd = programEnd
	cfg.FundAmount = fundAmount
	cfg.AnnualYieldRate = 1
	require.NoError(t, eng.Initialize(cfg))

	reward := token.New(rewardAsset, st)
	require.NoError(t, reward.Mint(treasury, fundAmount))
	require.NoError(t, reward.Approve(treasury, engineAddr, fundAmount))

	return &testEnv{state: st, engine: eng, recorder: recorder}
}

// fund mints the pool asset to the participant and approves the engine.
func (env *testEnv) fund(t *testing.T, participant lockstake.Address, amount *big.Int) {
	pool := token.New(poolAsset, env.state)
	require.NoError(t, pool.Mint(participant, amount))
	require.NoError(t, pool.Approve(participant, engineAddr, amount))
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (ts *TestSequence) AddFunc(f TestFunc) *TestSequence {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.funcs = append(ts.funcs, f)
	return ts
}

func (ts *TestSequence) Configure(caller lockstake.Address, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.ConfigurePoolAsset(caller, poolAsset, treasury, now)
		if err != nil {
			t.Fatalf("failed to configure pool asset: %v", err)
		}
		t.Logf("pool asset configured by %s", caller)
	})
}

func (ts *TestSequence) Lock(participant lockstake.Address, amount *big.Int, days uint32, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.LockTokens(participant, amount, days, now)
		if err != nil {
			t.Fatalf("failed to lock for %s: %v", participant, err)
		}
		t.Logf("locked %s for %s over %d days", amount, participant, days)
	})
}

func (ts *TestSequence) LockErr(participant lockstake.Address, amount *big.Int, days uint32, now uint64, expected error) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.LockTokens(participant, amount, days, now)
		assert.ErrorIs(t, err, expected, "lock for %s", participant)
	})
}

func (ts *TestSequence) Unlock(participant lockstake.Address, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.UnlockTokens(participant, now)
		if err != nil {
			t.Fatalf("failed to unlock for %s: %v", participant, err)
		}
		t.Logf("unlocked for %s", participant)
	})
}

func (ts *TestSequence) UnlockErr(participant lockstake.Address, now uint64, expected error) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.UnlockTokens(participant, now)
		assert.ErrorIs(t, err, expected, "unlock for %s", participant)
	})
}

func (ts *TestSequence) Claim(participant lockstake.Address, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.ClaimDistribution(participant, now)
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", participant, err)
		}
		t.Logf("distribution claimed for %s", participant)
	})
}

func (ts *TestSequence) ClaimErr(participant lockstake.Address, now uint64, expected error) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.ClaimDistribution(participant, now)
		assert.ErrorIs(t, err, expected, "claim for %s", participant)
	})
}

func (ts *TestSequence) Release(participant lockstake.Address, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.Release(participant, now)
		if err != nil {
			t.Fatalf("failed to release for %s: %v", participant, err)
		}
		t.Logf("vesting released for %s", participant)
	})
}

func (ts *TestSequence) ReleaseErr(participant lockstake.Address, now uint64, expected error) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		err := ts.env.engine.Release(participant, now)
		assert.ErrorIs(t, err, expected, "release for %s", participant)
	})
}

func (ts *TestSequence) Run(t *testing.T) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, f := range ts.funcs {
		f(t)
	}
}

type ParticipantAssertions struct {
	env         *testEnv
	participant lockstake.Address

	staked        *bool
	stakeAmount   *big.Int
	points        *big.Int
	rewardAmount  *big.Int
	releasedTotal *big.Int
	claimed       *bool
	poolBalance   *big.Int
	rewardBalance *big.Int
}

func AssertParticipant(env *testEnv, participant lockstake.Address) *ParticipantAssertions {
	return &ParticipantAssertions{env: env, participant: participant}
}

func (pa *ParticipantAssertions) Staked(expected bool) *ParticipantAssertions {
	pa.staked = &expected
	return pa
}

func (pa *ParticipantAssertions) StakeAmount(expected *big.Int) *ParticipantAssertions {
	pa.stakeAmount = expected
	return pa
}

func (pa *ParticipantAssertions) Points(expected *big.Int) *ParticipantAssertions {
	pa.points = expected
	return pa
}

func (pa *ParticipantAssertions) RewardAmount(expected *big.Int) *ParticipantAssertions {
	pa.rewardAmount = expected
	return pa
}

func (pa *ParticipantAssertions) ReleasedTotal(expected *big.Int) *ParticipantAssertions {
	pa.releasedTotal = expected
	return pa
}

func (pa *ParticipantAssertions) Claimed(expected bool) *ParticipantAssertions {
	pa.claimed = &expected
	return pa
}

func (pa *ParticipantAssertions) PoolBalance(expected *big.Int) *ParticipantAssertions {
	pa.poolBalance = expected
	return pa
}

func (pa *ParticipantAssertions) RewardBalance(expected *big.Int) *ParticipantAssertions {
	pa.rewardBalance = expected
	return pa
}

// assertBig compares by value; zero big.Ints are not always DeepEqual.
func assertBig(t *testing.T, expected, actual *big.Int, msgAndArgs ...any) {
	assert.Equal(t, expected.String(), actual.String(), msgAndArgs...)
}

func (pa *ParticipantAssertions) Assert(t *testing.T) {
	eng := pa.env.engine

	if pa.staked != nil || pa.stakeAmount != nil {
		stk, err := eng.GetStake(pa.participant)
		assert.NoError(t, err, "failed to get stake of %s", pa.participant)
		if pa.staked != nil {
			assert.Equal(t, *pa.staked, stk != nil, "%s staked mismatch", pa.participant)
		}
		if pa.stakeAmount != nil {
			assert.NotNil(t, stk, "%s has no stake", pa.participant)
			if stk != nil {
				assertBig(t, pa.stakeAmount, stk.Amount, "%s stake amount mismatch", pa.participant)
			}
		}
	}

	if pa.points != nil {
		balance, err := eng.PointBalance(pa.participant)
		assert.NoError(t, err, "failed to get points of %s", pa.participant)
		assertBig(t, pa.points, balance, "%s point balance mismatch", pa.participant)
	}

	if pa.rewardAmount != nil || pa.releasedTotal != nil || pa.claimed != nil {
		record, err := eng.GetGrant(pa.participant)
		assert.NoError(t, err, "failed to get grant of %s", pa.participant)
		if pa.rewardAmount != nil {
			assertBig(t, pa.rewardAmount, record.RewardAmount, "%s reward amount mismatch", pa.participant)
		}
		if pa.releasedTotal != nil {
			assertBig(t, pa.releasedTotal, record.ReleasedTotal, "%s released total mismatch", pa.participant)
		}
		if pa.claimed != nil {
			assert.Equal(t, *pa.claimed, record.Claimed, "%s claimed mismatch", pa.participant)
		}
	}

	if pa.poolBalance != nil {
		balance, err := token.New(poolAsset, pa.env.state).BalanceOf(pa.participant)
		assert.NoError(t, err)
		assertBig(t, pa.poolBalance, balance, "%s pool balance mismatch", pa.participant)
	}

	if pa.rewardBalance != nil {
		balance, err := token.New(rewardAsset, pa.env.state).BalanceOf(pa.participant)
		assert.NoError(t, err)
		assertBig(t, pa.rewardBalance, balance, "%s reward balance mismatch", pa.participant)
	}
}
