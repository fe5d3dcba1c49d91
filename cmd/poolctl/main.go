// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// poolctl is a minimal, inspectable harness for the staking and
// incentive-distribution accounting engine: it loads a YAML scenario
// describing a pool and a sequence of operations, replays it against an
// in-memory corepool.Manager, and prints every emitted event.
package main

import (
	"fmt"
	"log/slog"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/incentive-core/internal/corelog"
	"github.com/vechain/incentive-core/internal/metrics"
)

var (
	version   string
	gitCommit string
)

var (
	scenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "path to a YAML scenario file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: int(slog.LevelInfo),
		Usage: "log verbosity, as a slog.Level integer (-4=debug, 0=info, 4=warn, 8=error)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "registers corepool's counters and gauges with the process-wide Prometheus default",
	}
)

func run(ctx *cli.Context) error {
	logger := corelog.New(os.Stderr, slog.Level(ctx.Int(verbosityFlag.Name)))

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.EnablePrometheus()
	}

	path := ctx.String(scenarioFlag.Name)
	if path == "" {
		return fmt.Errorf("-scenario is required")
	}
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	return runScenario(sc, logger)
}

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s", version, gitCommit)
	app.Name = "poolctl"
	app.Usage = "drive the staking and incentive-distribution engine through a scripted scenario"
	app.Flags = []cli.Flag{scenarioFlag, verbosityFlag, enableMetricsFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
