// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/pangaea-labs/lockstake/lockstake"
)

// Config is the YAML program description: the fixed parameters, the genesis
// balances and the scenario steps to replay.
type Config struct {
	Engine  string         `yaml:"engine"`
	Program ProgramSection `yaml:"program"`
	Genesis []GenesisEntry `yaml:"genesis"`
	Steps   []Step         `yaml:"steps"`
}

type ProgramSection struct {
	Administrator       string `yaml:"administrator"`
	RewardAsset         string `yaml:"reward-asset"`
	PoolAsset           string `yaml:"pool-asset"`
	FundSource          string `yaml:"fund-source"`
	ProgramEndDay       uint64 `yaml:"program-end-day"`
	FundAmount          string `yaml:"fund-amount"`
	AnnualYieldRate     uint64 `yaml:"annual-yield-rate"`
	RewardPeriodDays    uint32 `yaml:"reward-period-days"`
	WithdrawalDelayDays uint32 `yaml:"withdrawal-delay-days"`
}

// GenesisEntry mints an asset balance and approves the engine to pull it.
type GenesisEntry struct {
	Participant string `yaml:"participant"`
	Asset       string `yaml:"asset"` // "pool" or "reward"
	Amount      string `yaml:"amount"`
}

// Step is one replayed operation. Times are given in whole days.
type Step struct {
	Op          string `yaml:"op"` // configure|lock|unlock|claim|release
	Participant string `yaml:"participant"`
	Amount      string `yaml:"amount"`
	Days        uint32 `yaml:"days"`
	Day         uint64 `yaml:"day"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return &cfg, nil
}

func parseAddress(s string) (lockstake.Address, error) {
	addr, err := lockstake.ParseAddress(s)
	if err != nil {
		return lockstake.Address{}, errors.Wrapf(err, "bad address %q", s)
	}
	return *addr, nil
}

func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("bad amount %q", s)
	}
	return amount, nil
}
