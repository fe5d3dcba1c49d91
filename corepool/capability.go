package corepool

import "github.com/google/uuid"

// PoolID is the opaque identifier of a pool. It is distinct from a
// program's id or positional index (see ProgramID).
type PoolID uuid.UUID

func (id PoolID) String() string { return uuid.UUID(id).String() }

// ProgramID is the stable identifier assigned to an incentive program at
// creation time. It never aliases the program's positional index in the
// registry: harvest and snapshot bookkeeping always key by ProgramID,
// never by position, since removal shifts positions but not ids.
type ProgramID uuid.UUID

func (id ProgramID) String() string { return uuid.UUID(id).String() }

// AdminCap is an opaque, duplicable bearer credential authorizing admin
// operations against the pool it was minted for. It carries no secret:
// authorization is "does the pool recognize this PoolID", mirroring the
// capability-token model described for the on-chain collaborator this
// core replaces access-control integration with.
type AdminCap struct {
	pool PoolID
}

// Duplicate returns a copy of the capability. Capability tokens are
// freely duplicable by the original admin; duplication is just a value
// copy since AdminCap carries no mutable or secret state.
func (c AdminCap) Duplicate() AdminCap { return c }

// Authorizes reports whether this capability grants admin rights over
// the given pool.
func (c AdminCap) Authorizes(pool PoolID) bool { return c.pool == pool }

func newAdminCap(pool PoolID) AdminCap { return AdminCap{pool: pool} }

func newPoolID() PoolID {
	return PoolID(uuid.New())
}

func newProgramID() ProgramID {
	return ProgramID(uuid.New())
}
