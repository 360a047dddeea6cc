package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Adapter implementation: a mutex-protected
// map/slice pair, useful for tests and single-process wallets.
type Memory struct {
	mu         sync.Mutex
	utxos      []UtxoRecord
	cursors    map[string]SyncCursor
	operations []StoredOperation
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{cursors: make(map[string]SyncCursor)}
}

func (m *Memory) UpsertUtxos(_ context.Context, records []UtxoRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		replaced := false
		for i, existing := range m.utxos {
			if existing.ChainID == rec.ChainID && existing.Cid == rec.Cid {
				m.utxos[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			m.utxos = append(m.utxos, rec)
		}
	}
	return nil
}

func (m *Memory) ListUtxos(_ context.Context, query ListUtxosQuery) ([]UtxoRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]UtxoRecord, 0, len(m.utxos))
	for _, rec := range m.utxos {
		if query.ChainID != nil && rec.ChainID != *query.ChainID {
			continue
		}
		if query.AssetID != nil && rec.AssetID != *query.AssetID {
			continue
		}
		if query.UnspentOnly && rec.Spent {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *Memory) MarkSpent(_ context.Context, chainID string, nullifierHex []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[string]bool, len(nullifierHex))
	for _, n := range nullifierHex {
		wanted[n] = true
	}

	count := 0
	for i, rec := range m.utxos {
		if rec.ChainID != chainID || rec.Spent {
			continue
		}
		if wanted[rec.Nullifier] {
			m.utxos[i].Spent = true
			count++
		}
	}
	return count, nil
}

func (m *Memory) GetSyncCursor(_ context.Context, chainID string) (*SyncCursor, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cursor, ok := m.cursors[chainID]
	if !ok {
		return nil, false, nil
	}
	return &cursor, true, nil
}

func (m *Memory) SetSyncCursor(_ context.Context, chainID string, cursor SyncCursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[chainID] = cursor
	return nil
}

func (m *Memory) CreateOperation(_ context.Context, op StoredOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations = append(m.operations, op)
	return nil
}

func (m *Memory) ListOperations(_ context.Context, chainID *string) ([]StoredOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]StoredOperation, 0, len(m.operations))
	for _, op := range m.operations {
		if chainID != nil && op.ChainID != *chainID {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

var _ Adapter = (*Memory)(nil)
