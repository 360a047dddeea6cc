// Command walletd wires the deterministic core and its storage/sync
// collaborators into a single polling process: derive a key pair, sync
// memos and nullifiers from an indexing service, and store the notes
// whose memos open under the wallet's key. It keeps no local Merkle
// tree and does not talk to a relayer. It is an example host, not a
// full wallet UI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/memo"
	"github.com/kysee/ocash-core/ops"
	"github.com/kysee/ocash-core/store"
	"github.com/kysee/ocash-core/sync"
)

// config holds walletd's runtime configuration.
type config struct {
	ChainID         string
	EntryURL        string
	ContractAddress string
	WalletSeed      string
	WalletNonce     string
}

func newConfig(args ...string) *config {
	cfg := &config{
		ChainID:         getEnv("OCASH_CHAIN_ID", "1"),
		EntryURL:        getEnv("OCASH_ENTRY_URL", "http://localhost:8090"),
		ContractAddress: getEnv("OCASH_CONTRACT_ADDRESS", ""),
		WalletSeed:      getEnv("OCASH_WALLET_SEED", ""),
		WalletNonce:     getEnv("OCASH_WALLET_NONCE", ""),
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			break
		}
		switch args[i] {
		case "--chain-id":
			cfg.ChainID = args[i+1]
			i++
		case "--entry-url":
			cfg.EntryURL = args[i+1]
			i++
		case "--contract-address":
			cfg.ContractAddress = args[i+1]
			i++
		case "--wallet-seed":
			cfg.WalletSeed = args[i+1]
			i++
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fmtPoint(owner ops.UserKeyPair) string {
	return fr.ToHex(owner.PublicKey.X)
}

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	cfg := newConfig(os.Args[1:]...)

	if cfg.WalletSeed == "" {
		log.Fatal().Msg("OCASH_WALLET_SEED must be set to a passphrase of at least 16 bytes")
	}

	owner, err := ops.FromSeed([]byte(cfg.WalletSeed), cfg.WalletNonce)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to derive wallet key pair")
	}
	log.Info().Str("chain_id", cfg.ChainID).Str("public_key", fmtPoint(owner)).Msg("derived wallet key pair")

	adapter := store.NewMemory()
	opsEngine := ops.New(adapter)

	engine := sync.NewEngine(sync.NewConfigFromEnv(), []sync.ChainConfig{
		{ChainID: cfg.ChainID, EntryURL: cfg.EntryURL, ContractAddress: cfg.ContractAddress},
	}, adapter, &log)

	// Trial-decrypt every freshly observed memo against our own key;
	// only the entries that open successfully are ours to persist.
	engine.OnMemoPage = func(chainID string, entries []sync.MemoEntry) []store.UtxoRecord {
		var owned []store.UtxoRecord
		for _, e := range entries {
			opening, err := memo.Decrypt(owner.SecretKey, e.Memo)
			if err != nil {
				log.Warn().Err(err).Uint64("cid", e.Cid).Msg("malformed memo envelope")
				continue
			}
			if opening == nil {
				continue
			}
			owned = append(owned, opsEngine.CreateUtxoFromRecord(chainID, *opening, owner.SecretKey, e.Cid, e.Memo))
		}
		if len(owned) > 0 {
			log.Info().Int("count", len(owned)).Msg("discovered owned notes")
		}
		return owned
	}

	engine.OnEvent(func(ev sync.Event) {
		log.Debug().
			Str("chain_id", ev.ChainID).
			Int("kind", int(ev.Kind)).
			Int("count", ev.Count).
			Msg("sync event")
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("entry_url", cfg.EntryURL).Msg("walletd starting sync loop")
	if err := runLoop(ctx, engine, &log); err != nil {
		log.Fatal().Err(err).Msg("sync loop exited")
	}
}

func runLoop(ctx context.Context, engine *sync.Engine, log *zerolog.Logger) error {
	interval := sync.NewConfigFromEnv().PollInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := engine.SyncOnce(ctx); err != nil {
			log.Error().Err(err).Msg("sync cycle failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
