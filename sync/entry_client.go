package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MemoPage is one page of the indexing service's memo listing, keyed by
// cid (the sequential commitment index).
type MemoPage struct {
	Entries []MemoEntry `json:"entries"`
	HasMore bool        `json:"has_more"`
}

// MemoEntry is one commitment observed at a given cid, with its
// attached memo envelope (spec §5) still in encrypted form.
type MemoEntry struct {
	Cid        uint64 `json:"cid"`
	Commitment string `json:"commitment"`
	Memo       string `json:"memo"`
}

// NullifierPage is one page of revealed nullifiers, ordered by the
// block they appeared in.
type NullifierPage struct {
	Entries []NullifierEntry `json:"entries"`
	HasMore bool             `json:"has_more"`
}

// NullifierEntry is one nullifier revealed on-chain, identified by its
// sequential index among nullifiers (nid) within the block range queried.
type NullifierEntry struct {
	Nid       uint64 `json:"nid"`
	Nullifier string `json:"nullifier"`
	BlockNum  uint64 `json:"block_num"`
}

// EntryClient is an HTTP client for the indexing service's viewing
// endpoints.
type EntryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEntryClient builds a client against baseURL with the given
// per-request timeout.
func NewEntryClient(baseURL string, timeout time.Duration) *EntryClient {
	return &EntryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListMemos fetches the memo page starting at offset, up to limit
// entries, ordered ascending by cid, for the contract at address.
func (c *EntryClient) ListMemos(ctx context.Context, chainID, address string, offset, limit int) (MemoPage, error) {
	var page MemoPage
	err := c.getJSON(ctx, "/api/v1/viewing/memos/list", url.Values{
		"chain_id": {chainID},
		"address":  {address},
		"offset":   {strconv.Itoa(offset)},
		"limit":    {strconv.Itoa(limit)},
		"order":    {"asc"},
	}, &page)
	return page, err
}

// ListNullifiersByBlock fetches the nullifier page starting at offset,
// up to limit entries, ordered ascending by block number.
func (c *EntryClient) ListNullifiersByBlock(ctx context.Context, chainID string, offset, limit int) (NullifierPage, error) {
	var page NullifierPage
	err := c.getJSON(ctx, "/api/v1/viewing/nullifier/list_by_block", url.Values{
		"chain_id": {chainID},
		"offset":   {strconv.Itoa(offset)},
		"limit":    {strconv.Itoa(limit)},
		"order":    {"asc"},
	}, &page)
	return page, err
}

func (c *EntryClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
