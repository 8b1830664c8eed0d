package vivo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/rdf"
)

// namedGraph is the partition user-entered individuals live in; the VIVO
// update endpoint requires inserts to target it explicitly.
const namedGraph = "http://vitro.mannlib.cornell.edu/default/vitro-kb-2"

var importClient = &http.Client{Timeout: 60 * time.Second}

// ErrEmptyGraph is returned when a commit is attempted with zero triples.
// No request is made and no fallback file is written.
var ErrEmptyGraph = errors.New("empty graph: nothing to import")

// RejectedError reports a failed commit together with the Turtle file the
// graph was persisted to for a later manual load.
type RejectedError struct {
	Err          error
	FallbackFile string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("import rejected: %v (graph saved to %s)", e.Err, e.FallbackFile)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// Importer submits an assembled graph to the VIVO store as one SPARQL
// update transaction. The store either takes the whole graph or none of it;
// on rejection the graph is written to a local Turtle file so no assembled
// data is ever lost.
type Importer struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewImporter creates a new importer for the configured VIVO instance.
func NewImporter(cfg *config.Config, logger *zap.Logger) *Importer {
	return &Importer{
		Config: cfg,
		Logger: logger,
	}
}

// Commit loads the graph into the store with a single INSERT DATA request
// against the named graph. There is exactly one attempt: any failure
// persists the graph via WriteFallback and comes back as a RejectedError.
func (im *Importer) Commit(ctx context.Context, g *rdf.Graph) error {
	if g.Len() == 0 {
		return ErrEmptyGraph
	}

	update := fmt.Sprintf("INSERT DATA {\n  GRAPH <%s> {\n%s  }\n}\n", namedGraph, g.NTriples())
	form := url.Values{}
	form.Set("email", im.Config.VIVOEmail)
	form.Set("password", im.Config.VIVOPassword)
	form.Set("update", update)

	endpoint := im.Config.SPARQLUpdateURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	im.Logger.Info("Submitting bulk insert to VIVO",
		zap.String("endpoint", endpoint), zap.Int("triples", g.Len()))

	resp, err := importClient.Do(req)
	if err != nil {
		return im.reject(g, fmt.Errorf("sparql update request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return im.reject(g, fmt.Errorf("vivo returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body))))
	}

	im.Logger.Info("Import committed", zap.Int("triples", g.Len()))
	return nil
}

// reject persists the graph before surfacing the commit failure. When even
// the fallback write fails, both errors travel up in one message.
func (im *Importer) reject(g *rdf.Graph, cause error) error {
	path, werr := im.WriteFallback(g)
	if werr != nil {
		im.Logger.Error("Fallback write failed after rejected import",
			zap.Error(werr), zap.NamedError("cause", cause))
		return fmt.Errorf("%w (fallback write failed: %v)", cause, werr)
	}
	im.Logger.Warn("Import failed, graph persisted for manual load",
		zap.String("file", path), zap.Error(cause))
	return &RejectedError{Err: cause, FallbackFile: path}
}

// WriteFallback writes the graph as Turtle to a timestamped file in the
// configured fallback directory, creating the directory as needed, and
// returns the file path.
func (im *Importer) WriteFallback(g *rdf.Graph) (string, error) {
	dir := im.Config.FallbackDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create fallback dir: %w", err)
	}
	name := fmt.Sprintf("scite_vivo_backup_%s.ttl", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(g.Turtle()), 0o644); err != nil {
		return "", fmt.Errorf("write fallback file: %w", err)
	}
	return path, nil
}

// ExportFile writes the graph as Turtle to an explicit path instead of
// importing it.
func ExportFile(g *rdf.Graph, path string) error {
	if err := os.WriteFile(path, []byte(g.Turtle()), 0o644); err != nil {
		return fmt.Errorf("write turtle file: %w", err)
	}
	return nil
}
