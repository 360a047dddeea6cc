package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kysee/ocash-core/store"
)

// EventKind distinguishes the observations an Engine reports through
// its on-event callback.
type EventKind int

const (
	EventMemosAdvanced EventKind = iota
	EventNullifiersAdvanced
	EventChainCaughtUp
)

// Event is one notification emitted by a sync cycle.
type Event struct {
	Kind    EventKind
	ChainID string
	Count   int
}

// Engine polls every configured chain's indexing service and folds
// newly observed memos and nullifiers into a store.Adapter. It never
// touches key material: memo decryption (and therefore discovering
// which observed commitments belong to the wallet) is the caller's
// responsibility, invoked from OnMemoPage.
type Engine struct {
	config  Config
	chains  []ChainConfig
	store   store.Adapter
	clients map[string]*EntryClient
	log     zerolog.Logger

	// OnMemoPage is called with every freshly fetched memo page before
	// it is persisted, so the caller can attempt trial-decryption
	// (spec §5) and attach asset/commitment bookkeeping.
	OnMemoPage func(chainID string, entries []MemoEntry) []store.UtxoRecord

	onEvent func(Event)
}

// NewEngine builds an Engine over the given chains and storage adapter.
// If logger is nil, a default stdout logger is used.
func NewEngine(cfg Config, chains []ChainConfig, adapter store.Adapter, logger *zerolog.Logger) *Engine {
	clients := make(map[string]*EntryClient, len(chains))
	for _, c := range chains {
		clients[c.ChainID] = NewEntryClient(c.EntryURL, cfg.RequestTimeout)
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sync").Logger()
	if logger != nil {
		log = *logger
	}

	return &Engine{
		config:  cfg,
		chains:  chains,
		store:   adapter,
		clients: clients,
		log:     log,
	}
}

// OnEvent registers a callback invoked for each memo or nullifier page
// folded in, and once per chain sync that finds nothing new.
func (e *Engine) OnEvent(fn func(Event)) {
	e.onEvent = fn
}

func (e *Engine) emit(ev Event) {
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

// SyncOnce runs a single poll cycle across every configured chain and
// returns the first error encountered, if any.
func (e *Engine) SyncOnce(ctx context.Context) error {
	for _, chain := range e.chains {
		if err := e.syncChain(ctx, chain); err != nil {
			return fmt.Errorf("sync chain %s: %w", chain.ChainID, err)
		}
	}
	return nil
}

func (e *Engine) syncChain(ctx context.Context, chain ChainConfig) error {
	cursor, _, err := e.store.GetSyncCursor(ctx, chain.ChainID)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	if cursor == nil {
		cursor = &store.SyncCursor{}
	}

	memoAdvance, err := e.syncMemos(ctx, chain, cursor)
	if err != nil {
		return fmt.Errorf("sync memos: %w", err)
	}

	nullifierAdvance, err := e.syncNullifiers(ctx, chain, cursor)
	if err != nil {
		return fmt.Errorf("sync nullifiers: %w", err)
	}

	if err := e.store.SetSyncCursor(ctx, chain.ChainID, *cursor); err != nil {
		return fmt.Errorf("persist cursor: %w", err)
	}

	if memoAdvance == 0 && nullifierAdvance == 0 {
		e.emit(Event{Kind: EventChainCaughtUp, ChainID: chain.ChainID})
	}

	e.log.Debug().
		Str("chain_id", chain.ChainID).
		Uint64("memo_cursor", cursor.Memo).
		Uint64("nullifier_cursor", cursor.Nullifier).
		Msg("sync cycle complete")

	return nil
}

// syncMemos pages through new memo entries starting at cursor.Memo,
// validating that pages are gap-free (consecutive cids), and advances
// cursor.Memo in place. Returns the number of entries folded in.
func (e *Engine) syncMemos(ctx context.Context, chain ChainConfig, cursor *store.SyncCursor) (int, error) {
	client := e.clients[chain.ChainID]
	total := 0

	for {
		page, err := client.ListMemos(ctx, chain.ChainID, chain.ContractAddress, int(cursor.Memo), e.config.PageSize)
		if err != nil {
			return total, err
		}
		if len(page.Entries) == 0 {
			return total, nil
		}

		for i, entry := range page.Entries {
			expected := cursor.Memo + uint64(i)
			if entry.Cid != expected {
				return total, fmt.Errorf("non-contiguous memo page: expected cid %d, got %d", expected, entry.Cid)
			}
		}

		var toPersist []store.UtxoRecord
		if e.OnMemoPage != nil {
			toPersist = e.OnMemoPage(chain.ChainID, page.Entries)
		}
		if len(toPersist) > 0 {
			if err := e.store.UpsertUtxos(ctx, toPersist); err != nil {
				return total, err
			}
		}

		cursor.Memo += uint64(len(page.Entries))
		total += len(page.Entries)
		e.emit(Event{Kind: EventMemosAdvanced, ChainID: chain.ChainID, Count: len(page.Entries)})

		if !page.HasMore {
			return total, nil
		}
	}
}

// syncNullifiers pages through newly revealed nullifiers starting at
// cursor.Nullifier and marks matching UTXOs spent in the store.
func (e *Engine) syncNullifiers(ctx context.Context, chain ChainConfig, cursor *store.SyncCursor) (int, error) {
	client := e.clients[chain.ChainID]
	total := 0

	for {
		page, err := client.ListNullifiersByBlock(ctx, chain.ChainID, int(cursor.Nullifier), e.config.PageSize)
		if err != nil {
			return total, err
		}
		if len(page.Entries) == 0 {
			return total, nil
		}

		hexes := make([]string, 0, len(page.Entries))
		for _, entry := range page.Entries {
			hexes = append(hexes, entry.Nullifier)
		}

		marked, err := e.store.MarkSpent(ctx, chain.ChainID, hexes)
		if err != nil {
			return total, err
		}
		if marked > 0 {
			e.log.Info().Str("chain_id", chain.ChainID).Int("marked_spent", marked).Msg("notes spent")
		}

		cursor.Nullifier += uint64(len(page.Entries))
		total += len(page.Entries)
		e.emit(Event{Kind: EventNullifiersAdvanced, ChainID: chain.ChainID, Count: len(page.Entries)})

		if !page.HasMore {
			return total, nil
		}
	}
}
