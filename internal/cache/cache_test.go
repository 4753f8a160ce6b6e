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

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUConfigAddContainsGet(t *testing.T) {
	c, err := New(LRUConfig{CacheSize: 2})
	require.NoError(t, err)

	c.Add(1, "a")
	assert.True(t, c.Contains(1))
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	c.Add(2, "b")
	c.Add(3, "c")
	assert.False(t, c.Contains(1), "oldest entry should be evicted once size exceeds capacity")
}

func TestARCConfigAddContainsGet(t *testing.T) {
	c, err := New(ARCConfig{CacheSize: 2})
	require.NoError(t, err)

	c.Add(10, "x")
	assert.True(t, c.Contains(10))
	v, ok := c.Get(10)
	require.True(t, ok)
	assert.Equal(t, "x", v)

	c.Purge()
	assert.False(t, c.Contains(10))
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
