// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/pangaea-labs/lockstake/engine"
	"github.com/pangaea-labs/lockstake/engine/params"
	"github.com/pangaea-labs/lockstake/eventdb"
	"github.com/pangaea-labs/lockstake/kv"
	"github.com/pangaea-labs/lockstake/lockstake"
	"github.com/pangaea-labs/lockstake/log"
	"github.com/pangaea-labs/lockstake/lvldb"
	"github.com/pangaea-labs/lockstake/metrics"
	"github.com/pangaea-labs/lockstake/state"
	"github.com/pangaea-labs/lockstake/token"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Lockstake",
		Usage:     "time-locked staking and vesting engine",
		Copyright: "2026 The Lockstake developers",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			metricsAddrFlag,
			memFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.NArg() != 1 {
		return cli.NewExitError("expected one argument: the scenario config file", 1)
	}
	cfg, err := loadConfig(ctx.Args().First())
	if err != nil {
		return err
	}

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		metrics.InitializePrometheusMetrics()
		go func() {
			if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
				logger.Warn("metrics service stopped", "err", err)
			}
		}()
		logger.Info("metrics service started", "addr", addr)
	}

	var (
		stateDB *lvldb.LevelDB
		events  *eventdb.Store
	)
	if ctx.Bool(memFlag.Name) {
		if stateDB, err = lvldb.NewMem(); err != nil {
			return err
		}
		if events, err = eventdb.NewMem(); err != nil {
			return err
		}
	} else {
		dataDir := ctx.String(dataDirFlag.Name)
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return err
		}
		if stateDB, err = lvldb.New(filepath.Join(dataDir, "state.db"), lvldb.Options{}); err != nil {
			return err
		}
		if events, err = eventdb.New(filepath.Join(dataDir, "events.db")); err != nil {
			return err
		}
		logger.Info("databases opened", "dir", dataDir)
	}
	defer stateDB.Close()
	defer events.Close()

	st := state.New(kv.Bucket("state:").NewStore(stateDB))
	eng, err := setupEngine(cfg, st, events)
	if err != nil {
		return err
	}

	for i, step := range cfg.Steps {
		if err := runStep(eng, cfg, &step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		if err := st.Commit(); err != nil {
			return err
		}
	}

	logger.Info("scenario complete", "steps", len(cfg.Steps))
	return nil
}

// setupEngine attaches the engine and, on a fresh state, initializes the
// program parameters and the genesis balances.
func setupEngine(cfg *Config, st *state.State, sink engine.Sink) (*engine.Engine, error) {
	engineAddr := lockstake.BytesToAddress([]byte("lockstake-engine"))
	if cfg.Engine != "" {
		addr, err := parseAddress(cfg.Engine)
		if err != nil {
			return nil, err
		}
		engineAddr = addr
	}
	eng := engine.New(engineAddr, st, sink)

	admin, err := eng.Params().Administrator()
	if err != nil {
		return nil, err
	}
	if !admin.IsZero() {
		logger.Info("resuming program", "engine", engineAddr)
		return eng, nil
	}

	pcfg := params.DefaultConfig()
	if pcfg.Administrator, err = parseAddress(cfg.Program.Administrator); err != nil {
		return nil, err
	}
	if pcfg.RewardAsset, err = parseAddress(cfg.Program.RewardAsset); err != nil {
		return nil, err
	}
	pcfg.ProgramEnd = cfg.Program.ProgramEndDay * lockstake.SecondsPerDay
	if pcfg.FundAmount, err = parseAmount(cfg.Program.FundAmount); err != nil {
		return nil, err
	}
	pcfg.AnnualYieldRate = cfg.Program.AnnualYieldRate
	if cfg.Program.RewardPeriodDays != 0 {
		pcfg.RewardPeriodDays = cfg.Program.RewardPeriodDays
	}
	if cfg.Program.WithdrawalDelayDays != 0 {
		pcfg.WithdrawalDelayDays = cfg.Program.WithdrawalDelayDays
	}
	if err := eng.Initialize(pcfg); err != nil {
		return nil, err
	}

	poolAsset, err := parseAddress(cfg.Program.PoolAsset)
	if err != nil {
		return nil, err
	}
	for _, entry := range cfg.Genesis {
		participant, err := parseAddress(entry.Participant)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(entry.Amount)
		if err != nil {
			return nil, err
		}
		asset := poolAsset
		if entry.Asset == "reward" {
			asset = pcfg.RewardAsset
		}
		tok := token.New(asset, st)
		if err := tok.Mint(participant, amount); err != nil {
			return nil, err
		}
		if err := tok.Approve(participant, engineAddr, amount); err != nil {
			return nil, err
		}
	}

	logger.Info("program initialized",
		"engine", engineAddr, "fundAmount", pcfg.FundAmount,
		"programEnd", pcfg.ProgramEnd, "genesis", len(cfg.Genesis))
	return eng, nil
}

func runStep(eng *engine.Engine, cfg *Config, step *Step) error {
	now := step.Day * lockstake.SecondsPerDay
	participant, err := parseAddress(step.Participant)
	if err != nil {
		return err
	}

	switch step.Op {
	case "configure":
		poolAsset, err := parseAddress(cfg.Program.PoolAsset)
		if err != nil {
			return err
		}
		fundSource, err := parseAddress(cfg.Program.FundSource)
		if err != nil {
			return err
		}
		return eng.ConfigurePoolAsset(participant, poolAsset, fundSource, now)
	case "lock":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return err
		}
		return eng.LockTokens(participant, amount, step.Days, now)
	case "unlock":
		return eng.UnlockTokens(participant, now)
	case "claim":
		return eng.ClaimDistribution(participant, now)
	case "release":
		return eng.Release(participant, now)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}
