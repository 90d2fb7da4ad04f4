// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const LogFile = "dorkroom.log"

// InitLogging points the global logger at a rotating file in logDir and
// any extra writers. An empty logDir skips the file. Debug logging lowers
// the global level to debug.
func InitLogging(logDir string, debug bool, writers ...io.Writer) error {
	var logWriters []io.Writer
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logWriters = append(logWriters, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, LogFile),
			MaxSize:    1,
			MaxBackups: 2,
		})
	}
	logWriters = append(logWriters, writers...)
	if len(logWriters) == 0 {
		logWriters = []io.Writer{io.Discard}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		With().Timestamp().Caller().Logger()

	return nil
}

// ConsoleWriter formats log lines for a terminal.
func ConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
}
