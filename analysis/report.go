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

// Package analysis computes the Miner Productivity Utilization statistics
// and writes the run's Analysis.txt report.
package analysis

import (
	"fmt"
	"io"
	"os"

	"github.com/selfminesim/netsim/config"
	"github.com/selfminesim/netsim/peer"
	"github.com/selfminesim/netsim/topology"
)

// Report holds every field Analysis.txt prints, plus the additive
// simmetrics-derived fields appended after the required set.
type Report struct {
	NumPeers           int
	HashPowerAdv1      float64
	HashPowerAdv2      float64
	TMean              float64
	MaxIterations      int
	MeanBlockTime      float64
	Adversary1ID       int
	Adversary2ID       int
	BlocksInChainAdv1  int
	TotalBlocksAdv1    int
	BlocksInChainAdv2  int
	TotalBlocksAdv2    int
	TotalBlocksInChain int
	TotalMinedBlocks   int

	// Additive fields, not part of spec.md's required set.
	OrphansSeen  int64
	StaleMining  int64
	BlocksOrphan int64
}

func (r Report) mpu(blocksInChain, totalBlocks int) float64 {
	if totalBlocks == 0 {
		return 0
	}
	return float64(blocksInChain) / float64(totalBlocks)
}

func (r Report) MPUAdv1() float64    { return r.mpu(r.BlocksInChainAdv1, r.TotalBlocksAdv1) }
func (r Report) MPUAdv2() float64    { return r.mpu(r.BlocksInChainAdv2, r.TotalBlocksAdv2) }
func (r Report) MPUOverall() float64 { return r.mpu(r.TotalBlocksInChain, r.TotalMinedBlocks) }

func (r Report) FractionAdv1() float64 {
	if r.TotalBlocksInChain == 0 {
		return 0
	}
	return float64(r.BlocksInChainAdv1) / float64(r.TotalBlocksInChain)
}

func (r Report) FractionAdv2() float64 {
	if r.TotalBlocksInChain == 0 {
		return 0
	}
	return float64(r.BlocksInChainAdv2) / float64(r.TotalBlocksInChain)
}

// Build walks an observer peer's longest chain (any peer that is neither an
// adversary nor a neighbor of one) to tally each adversary's blocks-in-chain
// share, and scans every peer's tree for each adversary's total mined count.
func Build(s config.Scenario, net *topology.Network, peers []*peer.Peer) Report {
	r := Report{
		NumPeers:      s.N,
		HashPowerAdv1: net.HashPower[net.Adversary1],
		HashPowerAdv2: net.HashPower[net.Adversary2],
		TMean:         s.TMean,
		MaxIterations: s.MaxIterations,
		MeanBlockTime: s.MeanBlockTime,
		Adversary1ID:  net.Adversary1,
		Adversary2ID:  net.Adversary2,
	}

	observer := pickObserver(net)
	tip := peers[observer].Tree.LongestChainTipID()
	id := tip
	for {
		b, ok := peers[observer].Tree.GetBlock(id)
		if !ok {
			break
		}
		if id == 0 {
			break // genesis has no miner; it never counts as a mined block
		}
		r.TotalBlocksInChain++
		switch b.Miner {
		case net.Adversary1:
			r.BlocksInChainAdv1++
		case net.Adversary2:
			r.BlocksInChainAdv2++
		}
		id = b.ParentID
	}

	seen := make(map[int64]bool)
	for _, p := range peers {
		for _, b := range p.Tree.AllBlocks() {
			if seen[b.ID] || b.ID == 0 {
				continue
			}
			seen[b.ID] = true
			r.TotalMinedBlocks++
			switch b.Miner {
			case net.Adversary1:
				r.TotalBlocksAdv1++
			case net.Adversary2:
				r.TotalBlocksAdv2++
			}
		}
	}

	return r
}

// pickObserver returns any peer id that is neither adversary nor a
// neighbor of one, falling back to the first non-adversary peer if the
// graph leaves no peer unconnected to both.
func pickObserver(net *topology.Network) int {
	isAdvOrNeighbor := make([]bool, net.N)
	isAdvOrNeighbor[net.Adversary1] = true
	isAdvOrNeighbor[net.Adversary2] = true
	for _, n := range net.Neighbors(net.Adversary1) {
		isAdvOrNeighbor[n] = true
	}
	for _, n := range net.Neighbors(net.Adversary2) {
		isAdvOrNeighbor[n] = true
	}
	for i := 0; i < net.N; i++ {
		if !isAdvOrNeighbor[i] {
			return i
		}
	}
	for i := 0; i < net.N; i++ {
		if i != net.Adversary1 && i != net.Adversary2 {
			return i
		}
	}
	return 0
}

// Write renders Analysis.txt to w, required fields first, additive fields
// appended afterward.
func (r Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, `No of peers: %d
Hashing_power_of_adversary1: %f
Hashing_power_of_adversary2: %f
Tmean: %f
Max_iterations: %d
Mining_time: %f
Adversary1 id: %d
Adversary2 id: %d
Adversary1 blocks in chain: %d
Total blocks mined by Adversary1: %d
Adversary2 blocks in chain: %d
Total blocks mined by Adversary2: %d
MPU node adv1: %f
MPU node adv2: %f
MPU node overall: %f
Fraction of Adversary1 blocks in main chain: %f
Fraction of Adversary2 blocks in main chain: %f
orphans_seen: %d
stale_mining: %d
blocks_orphaned: %d
`,
		r.NumPeers, r.HashPowerAdv1, r.HashPowerAdv2, r.TMean, r.MaxIterations, r.MeanBlockTime,
		r.Adversary1ID, r.Adversary2ID,
		r.BlocksInChainAdv1, r.TotalBlocksAdv1, r.BlocksInChainAdv2, r.TotalBlocksAdv2,
		r.MPUAdv1(), r.MPUAdv2(), r.MPUOverall(),
		r.FractionAdv1(), r.FractionAdv2(),
		r.OrphansSeen, r.StaleMining, r.BlocksOrphan,
	)
	return err
}

// WriteFile writes Analysis.txt into dir.
func (r Report) WriteFile(dir string) error {
	f, err := os.Create(dir + "/Analysis.txt")
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Write(f)
}
