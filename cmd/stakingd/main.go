// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/nextswap/staking-engine/api"
	"github.com/nextswap/staking-engine/historydb"
	"github.com/nextswap/staking-engine/kv"
	"github.com/nextswap/staking-engine/log"
	"github.com/nextswap/staking-engine/metrics"
	"github.com/nextswap/staking-engine/staking"
	"github.com/nextswap/staking-engine/state"
)

var (
	version   = "1.0.0"
	gitCommit string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakingd",
		Usage:     "multi-pool staking and reward distribution service",
		Copyright: "2025 The NextSwap developers",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiHistoryLimitFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			memFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// adminAuthorizer grants admin rights to a single configured address.
// Everyone acts for themselves only.
type adminAuthorizer struct {
	admin common.Address
}

func (a adminAuthorizer) IsAuthorized(caller, owner common.Address) bool {
	return caller == owner
}

func (a adminAuthorizer) IsAdmin(caller common.Address) bool {
	return caller == a.admin
}

func run(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	var (
		store kv.Store
		hdb   *historydb.HistoryDB
		err   error
	)
	if ctx.Bool(memFlag.Name) {
		store = kv.OpenMemDB()
		if hdb, err = historydb.NewMem(); err != nil {
			return err
		}
	} else {
		dataDir := ctx.String(dataDirFlag.Name)
		if dataDir == "" {
			return fmt.Errorf("unable to resolve default data dir, set --%s", dataDirFlag.Name)
		}
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return err
		}
		if store, err = kv.OpenLevelDB(filepath.Join(dataDir, "state.db"), kv.Options{}); err != nil {
			return err
		}
		if hdb, err = historydb.New(filepath.Join(dataDir, "history.db")); err != nil {
			store.Close()
			return err
		}
		logger.Info("opened databases", "dir", dataDir)
	}
	defer func() {
		hdb.Close()
		store.Close()
	}()

	st := state.New(store)
	vault := newLedgerVault(store)

	opts := staking.Options{
		Vault:    vault,
		Recorder: hdb,
	}

	var cfg *Config
	if path := ctx.String(configFlag.Name); path != "" {
		if cfg, err = loadConfig(path); err != nil {
			return err
		}
		admin, err := parseAddress("admin", cfg.Admin)
		if err != nil {
			return err
		}
		opts.Auth = adminAuthorizer{admin: admin}
	}

	engine := staking.New(st, opts)

	if cfg != nil {
		if err := seedBalances(vault, cfg.Balances); err != nil {
			return err
		}
		if err := cfg.apply(engine); err != nil {
			return err
		}
		logger.Info("applied config", "schedules", len(cfg.Schedules), "pools", len(cfg.Pools))
	}

	handler := api.New(engine, hdb, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		HistoryLimit:    ctx.Uint64(apiHistoryLimitFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})

	srv := &http.Server{
		Addr:    ctx.String(apiAddrFlag.Name),
		Handler: handler,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var group errgroup.Group
	group.Go(func() error {
		logger.Info("API service started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-sigCtx.Done()
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

// seedBalances credits the configured initial balances. The holder
// "custody" addresses the engine's own custody, used to back reward
// payouts.
func seedBalances(vault *ledgerVault, balances []BalanceConfig) error {
	for _, b := range balances {
		asset, err := parseAddress("balance.asset", b.Asset)
		if err != nil {
			return err
		}
		holder := custodyAddress
		if b.Holder != "custody" {
			if holder, err = parseAddress("balance.holder", b.Holder); err != nil {
				return err
			}
		}
		amount, err := parseAmount("balance.amount", b.Amount)
		if err != nil {
			return err
		}
		if err := vault.seed(asset, holder, amount); err != nil {
			return err
		}
	}
	return nil
}
