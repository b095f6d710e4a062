// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/nextswap/staking-engine/log"
)

func fatal(args ...any) {
	var w *os.File
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = os.Stderr
	} else {
		w = os.Stdout
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	level := log.LevelFromVerbosity(ctx.Int(verbosityFlag.Name))
	log.Init(os.Stdout, level, ctx.Bool(jsonLogsFlag.Name))
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".stakingd")
	}
	return ""
}
