// Package scite talks to the Scite API, the source of publication records
// and citation tallies for the import pipeline.
package scite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/config"
)

// Batch and tally lookups run against different endpoints with different
// latency profiles: a batch may legitimately take a while, a single tally
// must not stall the whole run.
var (
	papersClient  = &http.Client{Timeout: 30 * time.Second}
	talliesClient = &http.Client{Timeout: 10 * time.Second}
)

// Client is the Scite API client.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewClient creates a new Scite client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		Config: cfg,
		Logger: logger,
	}
}

// papersResponse mirrors the batch endpoint: a map keyed by requested
// identifier, with null entries for identifiers the source does not know.
type papersResponse struct {
	Papers map[string]*Paper `json:"papers"`
}

// FetchPapers retrieves the records for a batch of DOIs in a single call.
// Unknown identifiers come back as nulls and are dropped here, so callers
// only ever see usable records, in request order. Transport and decode
// failures are fatal for the run: without source records there is nothing
// to build.
func (c *Client) FetchPapers(ctx context.Context, dois []string) ([]*Paper, error) {
	body, err := json.Marshal(dois)
	if err != nil {
		return nil, fmt.Errorf("encode papers request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.SciteAPIURL+"/papers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build papers request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := papersClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scite papers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scite papers lookup returned status %d", resp.StatusCode)
	}

	var pr papersResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode papers response: %w", err)
	}

	papers := make([]*Paper, 0, len(pr.Papers))
	for _, doi := range dois {
		paper, ok := pr.Papers[doi]
		if !ok || paper == nil {
			c.Logger.Debug("No record for DOI", zap.String("doi", doi))
			continue
		}
		papers = append(papers, paper)
	}

	c.Logger.Info("Retrieved papers from Scite",
		zap.Int("requested", len(dois)),
		zap.Int("retrieved", len(papers)))
	return papers, nil
}

// FetchTally retrieves the citation counts for one DOI. Callers treat any
// error as "no tally available" and keep going; the publication is then
// built without counts.
func (c *Client) FetchTally(ctx context.Context, doi string) (*Tally, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Config.SciteAPIURL+"/tallies/"+doi, nil)
	if err != nil {
		return nil, fmt.Errorf("build tally request: %w", err)
	}

	resp, err := talliesClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scite tally request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scite tally lookup returned status %d", resp.StatusCode)
	}

	var tally Tally
	if err := json.NewDecoder(resp.Body).Decode(&tally); err != nil {
		return nil, fmt.Errorf("decode tally response: %w", err)
	}
	return &tally, nil
}
