package services

import (
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"vestd/internal/audit"
	"vestd/internal/models"
	"vestd/internal/providers"
	"vestd/internal/structures"
)

// Lifecycle stages reported by LifecycleStage.
const (
	StageUninitialized = 0
	StageInitialized   = 1
	StageMigrated      = 2
)

type ContractServiceInterface interface {
	Initialize(caller string) error
	MigrateBalances(caller string, entries []models.MigrationEntry, mintAmount, burnAmount uint64) error
	Burn() error
	Withdraw(caller string, wallet models.Wallet, amount uint64, destination string) error
	AvailableToWithdraw(wallet models.Wallet) (uint64, error)
	ChangeOwner(caller, newOwner string) error
	LifecycleStage() int
	GetSnapshot() *models.Storage
	Restore(storage *models.Storage) error
}

// ContractService owns the two contract state singletons and serializes every
// operation: each call runs to completion under one mutex, so an operation is
// all-or-nothing. Validation failures return before any mutation, and state
// commits only after the ledger side effects succeeded.
type ContractService struct {
	mu      sync.Mutex
	conf    *structures.Config
	logger  providers.Logger
	ledger  providers.LedgerProviderInterface
	clock   clockwork.Clock
	journal audit.JournalInterface

	contract *models.ContractState
	vesting  *models.VestingState
}

func NewContractService(
	conf *structures.Config,
	logger providers.Logger,
	ledger providers.LedgerProviderInterface,
	clock clockwork.Clock,
	journal audit.JournalInterface,
) ContractServiceInterface {
	return &ContractService{
		conf:    conf,
		logger:  logger,
		ledger:  ledger,
		clock:   clock,
		journal: journal,
	}
}

// Initialize creates both state singletons with zeroed balances and records
// the calling identity as owner. Callable exactly once.
func (cs *ContractService) Initialize(caller string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.contract != nil {
		return models.ErrAlreadyInitialized
	}
	if caller == "" {
		return models.ErrUnauthorized
	}

	cs.contract = models.NewContractState(caller)
	cs.vesting = models.NewVestingState()

	cs.logger.Infof(providers.TypeApp, "Contract initialized, owner=%s", caller)
	cs.journal.Record("initialize", map[string]interface{}{"owner": caller})
	return nil
}

// MigrateBalances performs the one-time import of the source-ledger token
// state: mints the migrated supply to the pooled account, burns the already-
// destroyed part, then distributes the rest to the listed accounts. The four
// recognized wallet names additionally get their initial balance snapshot and
// account binding recorded, and the vesting clock starts.
//
// Every validation runs before the first ledger side effect, so a rejected
// call leaves no trace.
func (cs *ContractService) MigrateBalances(caller string, entries []models.MigrationEntry, mintAmount, burnAmount uint64) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.requireInitialized(); err != nil {
		return err
	}
	if err := cs.contract.ValidOwner(caller); err != nil {
		return err
	}
	if err := cs.contract.MigrationNotPerformedYet(); err != nil {
		return err
	}

	pooled := cs.conf.Treasury.PooledAccount
	if err := validateMigrationEntries(entries, cs.ledger, pooled); err != nil {
		return err
	}

	// Residual check up front: after mint, burn and distribution the pooled
	// account must end at exactly zero.
	distributed := uint64(0)
	for _, entry := range entries {
		next := distributed + entry.Balance
		if next < distributed {
			return models.ErrAmountOverflow
		}
		distributed = next
	}
	pooledTotal := cs.ledger.BalanceOf(pooled) + mintAmount
	if pooledTotal < mintAmount {
		return models.ErrAmountOverflow
	}
	if burnAmount > pooledTotal {
		return fmt.Errorf("%w: burn amount exceeds pooled balance", models.ErrPooledBalanceNotZero)
	}
	if pooledTotal-burnAmount != distributed {
		return models.ErrPooledBalanceNotZero
	}

	// The four vested wallets must all receive a non-zero balance.
	initial := make(map[models.Wallet]models.MigrationEntry, 4)
	for _, entry := range entries {
		if w, err := models.ParseWallet(entry.WalletName); err == nil {
			initial[w] = entry
		}
	}
	for _, w := range models.Wallets() {
		if initial[w].Balance == 0 {
			return fmt.Errorf("%w: %s", models.ErrWalletBalanceZero, w)
		}
	}

	// Side effects. All inputs are validated, so a ledger rejection here is
	// a host defect; it still aborts the call before any state commit.
	authority := cs.conf.Treasury.MintAuthority
	if err := cs.ledger.Mint(pooled, authority, mintAmount); err != nil {
		return err
	}
	if err := cs.ledger.Burn(pooled, authority, burnAmount); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := cs.ledger.Transfer(pooled, entry.Account, entry.Balance); err != nil {
			return err
		}
	}

	now := cs.clock.Now().Unix()
	vesting := cs.vesting.Clone()
	vesting.StartTimestamp = now
	for w, entry := range initial {
		vesting.Wallets[w].InitialBalance = entry.Balance
		vesting.Wallets[w].Account = entry.Account
	}
	contract := cs.contract.Clone()
	contract.MigrationPerformed = true

	cs.vesting = vesting
	cs.contract = contract

	cs.logger.Infof(providers.TypeApp, "Balance migration performed, vesting starts at %d", now)
	cs.journal.Record("migrate_balances", map[string]interface{}{
		"entries":     len(entries),
		"mint_amount": mintAmount,
		"burn_amount": burnAmount,
		"start_time":  now,
	})
	return nil
}

func validateMigrationEntries(entries []models.MigrationEntry, ledger providers.LedgerProviderInterface, pooled string) error {
	names := make(map[string]struct{}, len(entries))
	accounts := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := names[entry.WalletName]; dup {
			return fmt.Errorf("%w: %q", models.ErrDuplicatedWalletName, entry.WalletName)
		}
		names[entry.WalletName] = struct{}{}

		if _, dup := accounts[entry.Account]; dup {
			return fmt.Errorf("%w: account %q listed twice", models.ErrMismatchedAccountInfo, entry.Account)
		}
		accounts[entry.Account] = struct{}{}

		if entry.Account == pooled || !ledger.HasAccount(entry.Account) {
			return fmt.Errorf("%w: account %q", models.ErrMismatchedAccountInfo, entry.Account)
		}
	}
	return nil
}

// Burn destroys 5% of the reserve account's current balance. Permitted only
// during the first five calendar days of a month and at most once per month.
func (cs *ContractService) Burn() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.requireMigrated(); err != nil {
		return err
	}

	now, err := models.ParseTimestamp(cs.clock.Now().Unix())
	if err != nil {
		return err
	}
	if err := cs.contract.BurnAllowed(now); err != nil {
		return err
	}

	reserve := cs.conf.Treasury.ReserveAccount
	amount := cs.ledger.BalanceOf(reserve) / 20
	if err := cs.ledger.Burn(reserve, cs.conf.Treasury.MintAuthority, amount); err != nil {
		return err
	}

	contract := cs.contract.Clone()
	contract.RecordBurn(now)
	cs.contract = contract

	cs.logger.Infof(providers.TypeApp, "Burned %d tokens from reserve (%d-%02d)", amount, now.Year, now.Month)
	cs.journal.Record("burn", map[string]interface{}{
		"amount": amount,
		"year":   now.Year,
		"month":  now.Month,
	})
	return nil
}

// Withdraw moves unlocked tokens from a vested wallet's pooled account to the
// destination account. The withdrawn counter is advanced only after the
// ledger transfer succeeded, keeping the call all-or-nothing.
func (cs *ContractService) Withdraw(caller string, wallet models.Wallet, amount uint64, destination string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.requireMigrated(); err != nil {
		return err
	}
	if err := cs.contract.ValidOwner(caller); err != nil {
		return err
	}

	ws, ok := cs.vesting.Wallets[wallet]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrUnknownWallet, uint8(wallet))
	}

	now := cs.clock.Now().Unix()
	available, err := cs.vesting.Available(wallet, now, cs.ledger.BalanceOf(ws.Account))
	if err != nil {
		return err
	}
	if amount > available {
		return models.ErrNotEnoughTokens
	}
	if ws.Withdrawn+amount < ws.Withdrawn {
		return models.ErrAmountOverflow
	}

	if err := cs.ledger.Transfer(ws.Account, destination, amount); err != nil {
		return err
	}

	vesting := cs.vesting.Clone()
	vesting.Wallets[wallet].Withdrawn += amount
	cs.vesting = vesting

	cs.logger.Infof(providers.TypeApp, "Withdrew %d from %s wallet to %s", amount, wallet, destination)
	cs.journal.Record("withdraw", map[string]interface{}{
		"wallet":      wallet.String(),
		"amount":      amount,
		"destination": destination,
	})
	return nil
}

// AvailableToWithdraw resolves how many tokens of the currently-unlocked
// amount have not yet been withdrawn from the given wallet.
func (cs *ContractService) AvailableToWithdraw(wallet models.Wallet) (uint64, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.requireMigrated(); err != nil {
		return 0, err
	}
	ws, ok := cs.vesting.Wallets[wallet]
	if !ok {
		return 0, fmt.Errorf("%w: %d", models.ErrUnknownWallet, uint8(wallet))
	}

	return cs.vesting.Available(wallet, cs.clock.Now().Unix(), cs.ledger.BalanceOf(ws.Account))
}

// ChangeOwner replaces the recorded owner identity. Owner-only; requires an
// initialized contract but no particular migration state.
func (cs *ContractService) ChangeOwner(caller, newOwner string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.requireInitialized(); err != nil {
		return err
	}
	if err := cs.contract.ValidOwner(caller); err != nil {
		return err
	}
	if newOwner == "" {
		return fmt.Errorf("%w: new owner identity is empty", models.ErrUnauthorized)
	}

	contract := cs.contract.Clone()
	contract.Owner = newOwner
	cs.contract = contract

	cs.logger.Infof(providers.TypeApp, "Owner changed to %s", newOwner)
	cs.journal.Record("change_owner", map[string]interface{}{"new_owner": newOwner})
	return nil
}

func (cs *ContractService) LifecycleStage() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	switch {
	case cs.contract == nil:
		return StageUninitialized
	case !cs.contract.MigrationPerformed:
		return StageInitialized
	default:
		return StageMigrated
	}
}

// GetSnapshot returns a deep copy of both singletons for persistence and for
// read-only views. Contract and Vesting are nil before Initialize.
func (cs *ContractService) GetSnapshot() *models.Storage {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	return &models.Storage{
		Version:  models.StorageVersion,
		Contract: cs.contract.Clone(),
		Vesting:  cs.vesting.Clone(),
	}
}

// Restore replaces both singletons from a persisted snapshot.
func (cs *ContractService) Restore(storage *models.Storage) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if storage.Version != models.StorageVersion {
		return fmt.Errorf("unsupported snapshot version %d", storage.Version)
	}
	if (storage.Contract == nil) != (storage.Vesting == nil) {
		return fmt.Errorf("inconsistent snapshot: contract and vesting state must both be present or both absent")
	}

	cs.contract = storage.Contract.Clone()
	cs.vesting = storage.Vesting.Clone()
	return nil
}

func (cs *ContractService) requireInitialized() error {
	if cs.contract == nil {
		return models.ErrNotInitialized
	}
	return nil
}

func (cs *ContractService) requireMigrated() error {
	if err := cs.requireInitialized(); err != nil {
		return err
	}
	if !cs.contract.MigrationPerformed {
		return models.ErrNotMigrated
	}
	return nil
}
