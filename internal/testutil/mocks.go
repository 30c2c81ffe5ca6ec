package testutil

import (
	"fmt"
	"sync"
	"time"

	"vestd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns recorded log entries at the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockLedger implements providers.LedgerProviderInterface on a plain balance
// map, with injectable failures per primitive.
type MockLedger struct {
	mu       sync.Mutex
	Balances map[string]uint64

	TransferErr error
	MintErr     error
	BurnErr     error

	Transfers []TransferCall
}

type TransferCall struct {
	From   string
	To     string
	Amount uint64
}

func NewMockLedger(balances map[string]uint64) *MockLedger {
	if balances == nil {
		balances = make(map[string]uint64)
	}
	return &MockLedger{Balances: balances}
}

func (m *MockLedger) Transfer(from, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TransferErr != nil {
		return m.TransferErr
	}
	if m.Balances[from] < amount {
		return fmt.Errorf("%w: insufficient funds in %q", providers.ErrLedger, from)
	}
	m.Balances[from] -= amount
	m.Balances[to] += amount
	m.Transfers = append(m.Transfers, TransferCall{From: from, To: to, Amount: amount})
	return nil
}

func (m *MockLedger) Mint(to, _ string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MintErr != nil {
		return m.MintErr
	}
	m.Balances[to] += amount
	return nil
}

func (m *MockLedger) Burn(from, _ string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BurnErr != nil {
		return m.BurnErr
	}
	if m.Balances[from] < amount {
		return fmt.Errorf("%w: insufficient funds in %q", providers.ErrLedger, from)
	}
	m.Balances[from] -= amount
	return nil
}

func (m *MockLedger) BalanceOf(account string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Balances[account]
}

func (m *MockLedger) HasAccount(account string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Balances[account]
	return ok
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Purges int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Purges++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	CacheHits       int
	CacheMisses     int
	Persists        int
	Withdrawals     map[string]int
	WithdrawnAmount map[string]uint64
	Burns           int
	Stage           int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) IncWithdrawals(wallet string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Withdrawals == nil {
		m.Withdrawals = make(map[string]int)
	}
	m.Withdrawals[wallet]++
}

func (m *MockMetrics) ObserveWithdrawnAmount(wallet string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WithdrawnAmount == nil {
		m.WithdrawnAmount = make(map[string]uint64)
	}
	m.WithdrawnAmount[wallet] += amount
}

func (m *MockMetrics) IncBurns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Burns++
}

func (m *MockMetrics) SetLifecycleStage(stage int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stage = stage
}

// MockJournal implements audit.JournalInterface and records entries.
type MockJournal struct {
	mu      sync.Mutex
	Records []JournalRecord
	Closed  bool
}

type JournalRecord struct {
	Operation string
	Detail    map[string]interface{}
}

func (m *MockJournal) Record(operation string, detail map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, JournalRecord{Operation: operation, Detail: detail})
}

func (m *MockJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
