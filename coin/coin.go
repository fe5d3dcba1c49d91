// Package coin provides the value-typed token records moved between a
// caller and a pool. Coins carry no reference to any issuing authority;
// custody is ownership-passing, not reference-counted.
package coin

// Coin is a fungible amount of a single opaque token type.
type Coin struct {
	tokenType string
	amount    uint64
}

// New constructs a Coin of the given token type and amount.
func New(tokenType string, amount uint64) Coin {
	return Coin{tokenType: tokenType, amount: amount}
}

// Zero returns the zero-value coin of the given token type, used when an
// operation is a legitimate no-op (e.g. unstake of zero shares).
func Zero(tokenType string) Coin {
	return Coin{tokenType: tokenType, amount: 0}
}

func (c Coin) TokenType() string { return c.tokenType }
func (c Coin) Amount() uint64    { return c.amount }
func (c Coin) IsZero() bool      { return c.amount == 0 }
