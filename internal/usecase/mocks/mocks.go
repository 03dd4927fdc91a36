package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/usecase"
)

// MockLedgerReader is a mock implementation of LedgerReader. It serves a
// fixed transaction slice and counts fetches, so tests can assert how many
// times the ledger was actually hit.
type MockLedgerReader struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	fetches      atomic.Int64

	FetchTransactionsFunc func(ctx context.Context, kind domain.EntityKind, id string, filter usecase.LedgerFilter) ([]domain.Transaction, error)
}

func NewMockLedgerReader(txns ...domain.Transaction) *MockLedgerReader {
	return &MockLedgerReader{transactions: txns}
}

func (m *MockLedgerReader) FetchTransactions(ctx context.Context, kind domain.EntityKind, id string, filter usecase.LedgerFilter) ([]domain.Transaction, error) {
	m.fetches.Add(1)
	if m.FetchTransactionsFunc != nil {
		return m.FetchTransactionsFunc(ctx, kind, id, filter)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(filter.Kinds) == 0 {
		out := make([]domain.Transaction, len(m.transactions))
		copy(out, m.transactions)
		return out, nil
	}

	var out []domain.Transaction
	for _, txn := range m.transactions {
		for _, k := range filter.Kinds {
			if txn.Kind == k {
				out = append(out, txn)
				break
			}
		}
	}
	return out, nil
}

// Fetches returns how many times FetchTransactions was called.
func (m *MockLedgerReader) Fetches() int64 {
	return m.fetches.Load()
}

// SetTransactions replaces the served transaction slice.
func (m *MockLedgerReader) SetTransactions(txns []domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = txns
}

// MockCacheStore is a map-backed mock implementation of CacheStore. When
// Down is set every operation behaves like an unreachable tier: reads miss
// and writes are dropped.
type MockCacheStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	down    bool

	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{entries: make(map[string][]byte)}
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.down {
		return nil, false, nil
	}
	val, ok := m.entries[key]
	return val, ok, nil
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil
	}
	m.entries[key] = value
	return nil
}

func (m *MockCacheStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return 0, nil
	}
	deleted := 0
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockCacheStore) Health(ctx context.Context) domain.CacheHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CacheHealth{Configured: true, Connected: !m.down}
}

// SetDown toggles the unreachable state.
func (m *MockCacheStore) SetDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down = down
}

// Len returns the number of cached entries.
func (m *MockCacheStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Keys returns a snapshot of the cached keys.
func (m *MockCacheStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

// MockVersionStore is a map-backed mock implementation of VersionStore.
type MockVersionStore struct {
	mu       sync.Mutex
	versions map[string]int64
}

func NewMockVersionStore() *MockVersionStore {
	return &MockVersionStore{versions: make(map[string]int64)}
}

func (m *MockVersionStore) Current(ctx context.Context, kind domain.EntityKind, id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[string(kind)+":"+id]
}

func (m *MockVersionStore) Bump(ctx context.Context, kind domain.EntityKind, id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := string(kind) + ":" + id
	m.versions[key]++
	return m.versions[key]
}

// MockCostPolicy is a set-backed mock implementation of CostPolicy.
type MockCostPolicy struct {
	zeroCost map[string]struct{}
}

func NewMockCostPolicy(zeroCostCodes ...string) *MockCostPolicy {
	codes := make(map[string]struct{}, len(zeroCostCodes))
	for _, code := range zeroCostCodes {
		codes[code] = struct{}{}
	}
	return &MockCostPolicy{zeroCost: codes}
}

func (m *MockCostPolicy) IsZeroCost(employeeCode string) bool {
	_, ok := m.zeroCost[employeeCode]
	return ok
}

// MockServiceLineMap is a map-backed mock implementation of ServiceLineMap.
// Unmapped codes resolve to themselves.
type MockServiceLineMap struct {
	masters map[string]string
}

func NewMockServiceLineMap(masters map[string]string) *MockServiceLineMap {
	if masters == nil {
		masters = make(map[string]string)
	}
	return &MockServiceLineMap{masters: masters}
}

func (m *MockServiceLineMap) MasterCode(code string) string {
	if master, ok := m.masters[code]; ok {
		return master
	}
	return code
}

// MockIDGenerator is a mock implementation of IDGenerator. It hands out
// sequential IDs so log assertions stay deterministic.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "computation-" + strconv.FormatInt(m.counter.Add(1), 10)
}
