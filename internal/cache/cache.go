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

// Package cache wraps hashicorp/golang-lru behind the Cache/CacheConfiger
// pair the teacher's common package exposes, trimmed to the two eviction
// policies the simulator actually drives: plain LRU for a peer's
// transaction dedup set and ARC for its block dedup set, where both
// recency and repeat-arrival frequency matter.
package cache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru"
)

type Cache interface {
	Add(key interface{}, value interface{}) (evicted bool)
	Get(key interface{}) (value interface{}, ok bool)
	Contains(key interface{}) bool
	Purge()
}

type lruCache struct {
	lru *lru.Cache
}

func (c *lruCache) Add(key, value interface{}) (evicted bool) { return c.lru.Add(key, value) }
func (c *lruCache) Get(key interface{}) (interface{}, bool)   { return c.lru.Get(key) }
func (c *lruCache) Contains(key interface{}) bool             { return c.lru.Contains(key) }
func (c *lruCache) Purge()                                    { c.lru.Purge() }

type arcCache struct {
	arc *lru.ARCCache
}

func (c *arcCache) Add(key, value interface{}) (evicted bool) {
	had := c.arc.Contains(key)
	before := c.arc.Len()
	c.arc.Add(key, value)
	return !had && c.arc.Len() <= before
}
func (c *arcCache) Get(key interface{}) (interface{}, bool) { return c.arc.Get(key) }
func (c *arcCache) Contains(key interface{}) bool           { return c.arc.Contains(key) }
func (c *arcCache) Purge()                                  { c.arc.Purge() }

type CacheConfiger interface {
	newCache() (Cache, error)
}

func New(config CacheConfiger) (Cache, error) {
	if config == nil {
		return nil, errors.New("cache config is nil")
	}
	return config.newCache()
}

type LRUConfig struct {
	CacheSize int
}

func (c LRUConfig) newCache() (Cache, error) {
	l, err := lru.New(c.CacheSize)
	return &lruCache{l}, err
}

type ARCConfig struct {
	CacheSize int
}

func (c ARCConfig) newCache() (Cache, error) {
	a, err := lru.NewARC(c.CacheSize)
	return &arcCache{a}, err
}
