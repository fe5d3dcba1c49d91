// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package corelog is a slog-based structured logger, adapted from the
// handler go-ethereum (and, transitively, vechain/thor) ships: records
// are logfmt or JSON, and big numeric types get a readable, ReplaceAttr-
// driven string form rather than Go's default struct dump.
package corelog

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

// New returns a logfmt-formatted logger writing to wr at the given
// minimum level. Pass io.Discard in tests that don't care about output.
func New(wr io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(wr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceBigNumbers,
	})
	return slog.New(h)
}

// NewJSON returns a JSON-formatted logger, used when log output is
// shipped to a collector rather than read on a terminal.
func NewJSON(wr io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(wr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceBigNumbers,
	})
	return slog.New(h)
}

// Discard returns a logger that drops every record, for tests that want
// a *slog.Logger without wiring a real sink.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// replaceBigNumbers special-cases *big.Int, *uint256.Int and any
// fmt.Stringer so log lines show a decimal string rather than Go's
// default (and, for pointers, address-revealing) struct formatting.
func replaceBigNumbers(_ []string, attr slog.Attr) slog.Attr {
	switch v := attr.Value.Any().(type) {
	case *big.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}
