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

// Package config holds the Scenario the simulator runs, loadable from a
// TOML file the way a klaytn node loads its config.toml.
package config

import (
	"os"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// Scenario describes one run: network size, the two adversaries' share of
// hashing power, transaction/mining arrival rates, and the iteration cap.
type Scenario struct {
	N             int     `toml:"n_peers"`
	Zeta1         int     `toml:"zeta1"`
	Zeta2         int     `toml:"zeta2"`
	TMean         float64 `toml:"txn_mean_interval"`
	MeanBlockTime float64 `toml:"mean_block_time"`
	MaxIterations int     `toml:"max_iterations"`
	Seed          int64   `toml:"seed"`
}

// Default returns the scenario used for any field no flag or file sets;
// MaxIterations is the original simulator's fixed 2,000,000 cap.
func Default() Scenario {
	return Scenario{
		N:             10,
		Zeta1:         10,
		Zeta2:         10,
		TMean:         5,
		MeanBlockTime: 600,
		MaxIterations: 2000000,
		Seed:          1,
	}
}

func (s Scenario) Validate() error {
	if s.N < 6 {
		return errors.Errorf("config: n_peers must be >= 6 (have %d)", s.N)
	}
	if s.Zeta1 < 0 || s.Zeta2 < 0 {
		return errors.New("config: zeta1/zeta2 must be non-negative")
	}
	if s.Zeta1+s.Zeta2 > 100 {
		return errors.Errorf("config: zeta1+zeta2 must be <= 100 (have %d)", s.Zeta1+s.Zeta2)
	}
	if s.MaxIterations <= 0 {
		return errors.New("config: max_iterations must be positive")
	}
	if s.TMean <= 0 || s.MeanBlockTime <= 0 {
		return errors.New("config: txn_mean_interval and mean_block_time must be positive")
	}
	return nil
}

// Load reads a Scenario from a TOML file, starting from Default() so a
// partial file only overrides the fields it sets.
func Load(path string) (Scenario, error) {
	s := Default()
	f, err := os.Open(path)
	if err != nil {
		return s, errors.Wrap(err, "config: opening scenario file")
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&s); err != nil {
		return s, errors.Wrap(err, "config: decoding scenario file")
	}
	return s, nil
}

// Save writes s to path as TOML, for scenarios produced by CLI flags that
// should be replayable later.
func Save(path string, s Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "config: creating scenario file")
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(&s)
}
