// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scenario is a scripted sequence of operations against a single pool,
// loaded from a YAML file and replayed step by step against an in-memory
// Manager. It exists purely as an inspectable harness for the engine; it
// is not part of the accounting core itself.
type scenario struct {
	StakeTokenType    string `yaml:"stake_token_type"`
	UnlockCountdownMs uint64 `yaml:"unlock_countdown_ms"`
	Steps             []step `yaml:"steps"`
}

type step struct {
	Op string `yaml:"op"`

	// advance_clock
	Ms int64 `yaml:"ms,omitempty"`

	// create_program
	IncentiveTokenType string `yaml:"incentive_token_type,omitempty"`
	InitialBalance     uint64 `yaml:"initial_balance,omitempty"`
	PeriodAmount       uint64 `yaml:"period_amount,omitempty"`
	IntervalMs         uint64 `yaml:"interval_ms,omitempty"`

	// stake / unsubscribe / unstake / harvest
	User   string  `yaml:"user,omitempty"`
	Amount uint64  `yaml:"amount,omitempty"`
	Shares *uint64 `yaml:"shares,omitempty"`

	// deactivate / activate / remove / update_config program target
	ProgramIdx  int     `yaml:"program_idx,omitempty"`
	NewPeriod   *uint64 `yaml:"new_period_amount,omitempty"`
	NewInterval *uint64 `yaml:"new_interval_ms,omitempty"`
}

func loadScenario(path string) (*scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	var sc scenario
	if err := yaml.NewDecoder(f).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.StakeTokenType == "" {
		return nil, fmt.Errorf("scenario: stake_token_type is required")
	}
	if sc.UnlockCountdownMs == 0 {
		return nil, fmt.Errorf("scenario: unlock_countdown_ms must be positive")
	}
	return &sc, nil
}
