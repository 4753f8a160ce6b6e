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

// Package simmetrics registers the simulator's run counters with
// rcrowley/go-metrics, the same registry work/worker.go uses for
// "miner/timelimitreached" and similar gauges.
package simmetrics

import "github.com/rcrowley/go-metrics"

// Registry bundles the counters a single simulation run reports on. One
// Registry per run, not a package-level singleton, so repeated runs in the
// same process (tests) don't share state.
type Registry struct {
	BlocksMined     metrics.Counter
	StaleMining     metrics.Counter
	OrphansSeen     metrics.Counter
	EventsTotal     metrics.Counter
	BlocksOrphan    metrics.Counter
	SelfishReleased metrics.Counter
}

func New() *Registry {
	r := metrics.NewRegistry()
	reg := &Registry{
		BlocksMined:     metrics.NewRegisteredCounter("sim/blocksmined", r),
		StaleMining:     metrics.NewRegisteredCounter("sim/stalemining", r),
		OrphansSeen:     metrics.NewRegisteredCounter("sim/orphansseen", r),
		EventsTotal:     metrics.NewRegisteredCounter("sim/eventstotal", r),
		BlocksOrphan:    metrics.NewRegisteredCounter("sim/blocksorphaned", r),
		SelfishReleased: metrics.NewRegisteredCounter("sim/selfishreleased", r),
	}
	return reg
}
