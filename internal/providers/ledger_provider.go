package providers

import (
	"errors"
	"fmt"
	"sync"

	"vestd/internal/structures"
)

// ErrLedger covers every rejection by the token ledger: unknown account,
// insufficient funds, authority mismatch. The contract core treats them all
// the same way (the enclosing operation fails and keeps no state).
var ErrLedger = errors.New("ledger operation rejected")

// LedgerProviderInterface is the external token-ledger collaborator: atomic
// transfer, mint and burn primitives keyed by account identifiers. Mint and
// burn additionally require the minting authority recorded at startup.
type LedgerProviderInterface interface {
	Transfer(from, to string, amount uint64) error
	Mint(to, authority string, amount uint64) error
	Burn(from, authority string, amount uint64) error
	BalanceOf(account string) uint64
	HasAccount(account string) bool
}

// LedgerProvider is an in-memory account book. Each method is atomic under
// one mutex; the contract service serializes whole operations on top of it.
type LedgerProvider struct {
	mu        sync.Mutex
	balances  map[string]uint64
	authority string
}

func NewLedgerProvider(conf *structures.Config, logger Logger) LedgerProviderInterface {
	balances := map[string]uint64{
		conf.Treasury.PooledAccount:  0,
		conf.Treasury.ReserveAccount: 0,
	}
	for _, account := range conf.Treasury.Accounts {
		balances[account] = 0
	}

	logger.Infof(TypeApp, "Ledger initialized with %d accounts", len(balances))

	return &LedgerProvider{
		balances:  balances,
		authority: conf.Treasury.MintAuthority,
	}
}

func (lp *LedgerProvider) Transfer(from, to string, amount uint64) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	fromBalance, ok := lp.balances[from]
	if !ok {
		return fmt.Errorf("%w: unknown account %q", ErrLedger, from)
	}
	if _, ok := lp.balances[to]; !ok {
		return fmt.Errorf("%w: unknown account %q", ErrLedger, to)
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: insufficient funds in %q", ErrLedger, from)
	}

	lp.balances[from] = fromBalance - amount
	lp.balances[to] += amount
	return nil
}

func (lp *LedgerProvider) Mint(to, authority string, amount uint64) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if authority != lp.authority {
		return fmt.Errorf("%w: invalid mint authority", ErrLedger)
	}
	balance, ok := lp.balances[to]
	if !ok {
		return fmt.Errorf("%w: unknown account %q", ErrLedger, to)
	}
	if balance+amount < balance {
		return fmt.Errorf("%w: mint overflows account %q", ErrLedger, to)
	}

	lp.balances[to] = balance + amount
	return nil
}

func (lp *LedgerProvider) Burn(from, authority string, amount uint64) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if authority != lp.authority {
		return fmt.Errorf("%w: invalid burn authority", ErrLedger)
	}
	balance, ok := lp.balances[from]
	if !ok {
		return fmt.Errorf("%w: unknown account %q", ErrLedger, from)
	}
	if balance < amount {
		return fmt.Errorf("%w: insufficient funds in %q", ErrLedger, from)
	}

	lp.balances[from] = balance - amount
	return nil
}

func (lp *LedgerProvider) BalanceOf(account string) uint64 {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.balances[account]
}

func (lp *LedgerProvider) HasAccount(account string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	_, ok := lp.balances[account]
	return ok
}
