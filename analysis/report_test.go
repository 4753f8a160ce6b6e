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

package analysis

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfminesim/netsim/config"
	"github.com/selfminesim/netsim/sim"
	"github.com/selfminesim/netsim/topology"
)

func TestMPUIsZeroWhenNoBlocksMined(t *testing.T) {
	r := Report{}
	assert.Equal(t, float64(0), r.MPUAdv1())
	assert.Equal(t, float64(0), r.MPUOverall())
}

func TestMPUComputation(t *testing.T) {
	r := Report{BlocksInChainAdv1: 3, TotalBlocksAdv1: 10, TotalBlocksInChain: 20, TotalMinedBlocks: 40}
	assert.InDelta(t, 0.3, r.MPUAdv1(), 1e-9)
	assert.InDelta(t, 0.5, r.MPUOverall(), 1e-9)
	assert.InDelta(t, 0.15, r.FractionAdv1(), 1e-9)
}

func TestBuildAndWriteReport(t *testing.T) {
	s := config.Scenario{N: 6, Zeta1: 10, Zeta2: 10, TMean: 1, MeanBlockTime: 5, MaxIterations: 3000, Seed: 4}
	rng := rand.New(rand.NewSource(s.Seed))
	net := topology.Build(s, rng)
	d := sim.New(s, net, rng)
	d.Seed()
	d.Run()

	r := Build(s, net, d.Peers)
	require.Equal(t, s.N, r.NumPeers)
	assert.GreaterOrEqual(t, r.TotalBlocksInChain, 0)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "No of peers: 6")
	assert.Contains(t, buf.String(), "MPU node overall")
}
