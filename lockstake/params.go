// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstake

// Constants of the staking program.
const (
	SecondsPerDay = uint64(24 * 60 * 60)

	// DaysPerYear is the divisor of the reward-point formula.
	// expectedPoints = amount * annualYieldRate * lockDays / DaysPerYear (truncating).
	DaysPerYear = 365

	// MinLockDays and MaxLockDays bound the lock duration policy.
	MinLockDays = uint32(1)
	MaxLockDays = uint32(720)

	// DefaultRewardPeriodDays is the vesting release period.
	DefaultRewardPeriodDays = uint32(30)

	// DefaultWithdrawalDelayDays is the extra delay after a release window opens
	// before the window becomes payable.
	DefaultWithdrawalDelayDays = uint32(7)
)

// Keys of program parameters stored in state.
var (
	KeyAdministrator  = BytesToBytes32([]byte("administrator"))
	KeyRewardAsset    = BytesToBytes32([]byte("reward-asset"))
	KeyPoolAsset      = BytesToBytes32([]byte("pool-asset"))
	KeyFundSource     = BytesToBytes32([]byte("fund-source"))
	KeyProgramEnd     = BytesToBytes32([]byte("program-end"))
	KeyFundAmount     = BytesToBytes32([]byte("fund-amount"))
	KeyYieldRate      = BytesToBytes32([]byte("annual-yield-rate"))
	KeyRewardPeriod   = BytesToBytes32([]byte("reward-period"))
	KeyWithdrawDelay  = BytesToBytes32([]byte("withdrawal-delay"))
	KeyPoolConfigured = BytesToBytes32([]byte("pool-configured"))
)
