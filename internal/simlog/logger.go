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

// Package simlog provides the leveled, per-module logger used across the
// simulator, in the style of the module-tagged logger every klaytn package
// pulls in as "github.com/ground-x/klaytn/log".
package simlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
)

type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var lvlTag = map[Lvl]string{
	LvlCrit:  "CRIT",
	LvlError: "ERROR",
	LvlWarn:  "WARN",
	LvlInfo:  "INFO",
	LvlDebug: "DEBUG",
	LvlTrace: "TRACE",
}

var lvlColor = map[Lvl]color.Attribute{
	LvlCrit:  color.FgMagenta,
	LvlError: color.FgRed,
	LvlWarn:  color.FgYellow,
	LvlInfo:  color.FgGreen,
	LvlDebug: color.FgCyan,
	LvlTrace: color.FgWhite,
}

// Module tags, one per package, mirroring log.Common/log.CMDKCN and friends.
const (
	Queue    = "QUEUE"
	Topology = "TOPOLOGY"
	Ledger   = "LEDGER"
	Peer     = "PEER"
	Selfish  = "SELFISH"
	Sim      = "SIM"
	CMD      = "CMD"
)

// Level is the global minimum level printed.
var Level = LvlInfo

var out io.Writer = colorable.NewColorableStdout()
var mu sync.Mutex

type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type moduleLogger struct {
	module string
}

// NewModuleLogger returns a Logger tagged with module, matching the call
// convention of log.NewModuleLogger(log.Common) seen throughout the teacher
// package's call sites.
func NewModuleLogger(module string) Logger {
	return &moduleLogger{module: module}
}

func (l *moduleLogger) Trace(msg string, ctx ...interface{}) { l.log(LvlTrace, msg, ctx...) }
func (l *moduleLogger) Debug(msg string, ctx ...interface{}) { l.log(LvlDebug, msg, ctx...) }
func (l *moduleLogger) Info(msg string, ctx ...interface{})  { l.log(LvlInfo, msg, ctx...) }
func (l *moduleLogger) Warn(msg string, ctx ...interface{})  { l.log(LvlWarn, msg, ctx...) }
func (l *moduleLogger) Error(msg string, ctx ...interface{}) { l.log(LvlError, msg, ctx...) }

func (l *moduleLogger) Crit(msg string, ctx ...interface{}) {
	ctx = append(ctx, "stack", stack.Trace().TrimRuntime())
	l.log(LvlCrit, msg, ctx...)
	os.Exit(1)
}

func (l *moduleLogger) log(lvl Lvl, msg string, ctx ...interface{}) {
	if lvl > Level {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	tag := color.New(lvlColor[lvl]).SprintFunc()(lvlTag[lvl])
	fmt.Fprintf(out, "%s[%s] %-5s %s", time.Now().Format("15:04:05.000"), l.module, tag, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(out, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(out)
}
