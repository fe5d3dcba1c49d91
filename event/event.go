// Package event defines the observable events the core engine produces.
// The core never publishes these anywhere: every mutating operation simply
// returns the event value alongside its primary result, leaving delivery
// (a bus, a log, a chain) entirely to the caller.
package event

// Event is implemented by every event type emitted by the core.
type Event interface {
	Kind() string
}

type NewPool struct {
	PoolID         string
	StakeTokenType string
	UnlockMs       uint64
}

func (NewPool) Kind() string { return "NewPool" }

type CreateIncentiveProgram struct {
	PoolID       string
	ProgramID    string
	TokenType    string
	PeriodAmount uint64
	IntervalMs   uint64
	InitialMs    int64
}

func (CreateIncentiveProgram) Kind() string { return "CreateIncentiveProgram" }

type DeactivateIncentiveProgram struct {
	PoolID    string
	ProgramID string
	TokenType string
}

func (DeactivateIncentiveProgram) Kind() string { return "DeactivateIncentiveProgram" }

type ActivateIncentiveProgram struct {
	PoolID    string
	ProgramID string
	TokenType string
}

func (ActivateIncentiveProgram) Kind() string { return "ActivateIncentiveProgram" }

type RemoveIncentiveProgram struct {
	PoolID         string
	ProgramID      string
	TokenType      string
	ReturnedAmount uint64
}

func (RemoveIncentiveProgram) Kind() string { return "RemoveIncentiveProgram" }

type UpdateUnlockCountdownTsMs struct {
	PoolID string
	NewMs  uint64
}

func (UpdateUnlockCountdownTsMs) Kind() string { return "UpdateUnlockCountdownTsMs" }

type UpdateIncentiveConfig struct {
	PoolID       string
	ProgramID    string
	PeriodAmount uint64
	IntervalMs   uint64
}

func (UpdateIncentiveConfig) Kind() string { return "UpdateIncentiveConfig" }

type Stake struct {
	PoolID            string
	TokenType         string
	User              string
	StakeAmount       uint64 // total_shares after this stake
	StakeTsMs         int64
	LastIndexSnapshot map[string]uint64 // program id -> price index at stake time
}

func (Stake) Kind() string { return "Stake" }

type Unsubscribe struct {
	PoolID             string
	TokenType          string
	User               string
	UnsubscribedShares uint64
	UnsubscribeTsMs    int64
	UnlockedTsMs       int64
}

func (Unsubscribe) Kind() string { return "Unsubscribe" }

type Unstake struct {
	PoolID        string
	TokenType     string
	User          string
	UnstakeAmount uint64
	UnstakeTsMs   int64
}

func (Unstake) Kind() string { return "Unstake" }

type Harvest struct {
	PoolID             string
	IncentiveTokenType string
	User               string
	HarvestAmount      uint64
}

func (Harvest) Kind() string { return "Harvest" }
