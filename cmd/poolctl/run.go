// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vechain/incentive-core/coin"
	"github.com/vechain/incentive-core/corepool"
	"github.com/vechain/incentive-core/event"
	"github.com/vechain/incentive-core/internal/metrics"
)

// runScenario drives a single pool through sc's steps against a
// FakeClock, printing every emitted event. The clock starts at the
// current wall time and only moves forward in response to explicit
// advance_clock steps, so a scenario's timing is entirely self-contained.
func runScenario(sc *scenario, logger *slog.Logger) error {
	clock := clockwork.NewFakeClock()
	mgr := corepool.NewManager(clock, metrics.Default(), logger)

	poolID, cap, createEv, err := mgr.CreatePool(sc.StakeTokenType, sc.UnlockCountdownMs)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	printEvent(createEv)

	pool, err := mgr.Pool(poolID)
	if err != nil {
		return err
	}

	for i, st := range sc.Steps {
		if err := runStep(pool, cap, clock, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
	}
	return nil
}

func runStep(pool *corepool.Pool, cap corepool.AdminCap, clock *clockwork.FakeClock, st step) error {
	switch st.Op {
	case "advance_clock":
		clock.Advance(time.Duration(st.Ms) * time.Millisecond)
		return nil

	case "create_program":
		ev, incentiveErr := createProgram(pool, cap, st)
		if incentiveErr != nil {
			return incentiveErr
		}
		printEvent(ev)
		return nil

	case "deactivate_program":
		ev, err := pool.DeactivateIncentiveProgram(cap, st.ProgramIdx, st.IncentiveTokenType)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "activate_program":
		ev, err := pool.ActivateIncentiveProgram(cap, st.ProgramIdx, st.IncentiveTokenType)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "remove_program":
		_, ev, err := pool.RemoveIncentiveProgram(cap, st.ProgramIdx, st.IncentiveTokenType)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "update_config":
		ev, err := pool.UpdateIncentiveConfig(cap, st.ProgramIdx, st.NewPeriod, st.NewInterval)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "stake":
		ev, err := pool.Stake(coin.New(pool.StakeTokenType(), st.Amount), st.User)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "unsubscribe":
		ev, err := pool.Unsubscribe(pool.StakeTokenType(), st.Shares, st.User)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "unstake":
		_, ev, err := pool.Unstake(pool.StakeTokenType(), st.Shares, st.User)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	case "harvest":
		_, ev, err := pool.Harvest(st.IncentiveTokenType, st.User)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil

	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
}

func createProgram(pool *corepool.Pool, cap corepool.AdminCap, st step) (event.CreateIncentiveProgram, error) {
	incentiveCoin := coin.New(st.IncentiveTokenType, st.InitialBalance)
	_, ev, err := pool.CreateIncentiveProgram(cap, incentiveCoin, st.PeriodAmount, st.IntervalMs)
	return ev, err
}

func printEvent(ev event.Event) {
	fmt.Printf("[%s] %+v\n", ev.Kind(), ev)
}
