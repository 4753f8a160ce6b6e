// Copyright 2018 The go-klaytn Authors
// This file is part of the go-klaytn library.
//
// The go-klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-klaytn library. If not, see <http://www.gnu.org/licenses/>.

// netsim runs a discrete-event simulation of a proof-of-work blockchain
// P2P network and two selfish-mining adversaries, then writes Analysis.txt to
// the chosen output directory.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/selfminesim/netsim/analysis"
	"github.com/selfminesim/netsim/config"
	"github.com/selfminesim/netsim/internal/simlog"
	"github.com/selfminesim/netsim/sim"
	"github.com/selfminesim/netsim/topology"
)

var logger = simlog.NewModuleLogger(simlog.CMD)

var (
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML scenario file",
	}
	OutFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Output directory for Analysis.txt",
		Value: ".",
	}
	NFlag = cli.IntFlag{
		Name:  "n",
		Usage: "Number of peers",
		Value: config.Default().N,
	}
	Zeta1Flag = cli.IntFlag{
		Name:  "zeta1",
		Usage: "Hashing power percentage of adversary 1",
		Value: config.Default().Zeta1,
	}
	Zeta2Flag = cli.IntFlag{
		Name:  "zeta2",
		Usage: "Hashing power percentage of adversary 2",
		Value: config.Default().Zeta2,
	}
	TMeanFlag = cli.Float64Flag{
		Name:  "tmean",
		Usage: "Mean transaction inter-arrival time",
		Value: config.Default().TMean,
	}
	MeanBlockTimeFlag = cli.Float64Flag{
		Name:  "mean-block-time",
		Usage: "Mean block mining time",
		Value: config.Default().MeanBlockTime,
	}
	MaxIterationsFlag = cli.IntFlag{
		Name:  "max-iterations",
		Usage: "Maximum number of events the driver processes",
		Value: config.Default().MaxIterations,
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed",
		Value: config.Default().Seed,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "netsim"
	app.Usage = "selfish-mining P2P network simulator"
	app.Flags = []cli.Flag{
		ConfigFlag, OutFlag, NFlag, Zeta1Flag, Zeta2Flag,
		TMeanFlag, MeanBlockTimeFlag, MaxIterationsFlag, SeedFlag,
	}
	app.Action = run
	return app
}

func scenarioFromContext(ctx *cli.Context) (config.Scenario, error) {
	if path := ctx.String(ConfigFlag.Name); path != "" {
		return config.Load(path)
	}
	s := config.Scenario{
		N:             ctx.Int(NFlag.Name),
		Zeta1:         ctx.Int(Zeta1Flag.Name),
		Zeta2:         ctx.Int(Zeta2Flag.Name),
		TMean:         ctx.Float64(TMeanFlag.Name),
		MeanBlockTime: ctx.Float64(MeanBlockTimeFlag.Name),
		MaxIterations: ctx.Int(MaxIterationsFlag.Name),
		Seed:          ctx.Int64(SeedFlag.Name),
	}
	return s, nil
}

func run(ctx *cli.Context) error {
	s, err := scenarioFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := s.Validate(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	rng := rand.New(rand.NewSource(s.Seed))
	net := topology.Build(s, rng)
	driver := sim.New(s, net, rng)
	driver.Seed()

	logger.Info("starting simulation", "peers", s.N, "max_iterations", s.MaxIterations)
	driver.Run()
	logger.Info("simulation complete", "clock", driver.Clock())

	report := analysis.Build(s, net, driver.Peers)
	report.OrphansSeen = driver.Metrics.OrphansSeen.Count()
	report.StaleMining = driver.Metrics.StaleMining.Count()
	report.BlocksOrphan = driver.Metrics.BlocksOrphan.Count()

	if err := os.MkdirAll(ctx.String(OutFlag.Name), 0o755); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := report.WriteFile(ctx.String(OutFlag.Name)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(os.Stdout, "wrote %s/Analysis.txt\n", ctx.String(OutFlag.Name))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
