package vivo

import (
	"context"

	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/rdf"
	"github.com/scitedotai/scite-vivo-integration/vocab"
)

// ReasonMissingIdentifier marks records that carry no DOI and therefore
// cannot be given an identity in the graph.
const ReasonMissingIdentifier = "missing identifier"

// TallySource supplies citation counts per DOI. The Scite client satisfies
// this; a nil source disables tally lookups altogether.
type TallySource interface {
	FetchTally(ctx context.Context, doi string) (*scite.Tally, error)
}

// Skip records one paper left out of a run and why.
type Skip struct {
	DOI    string `json:"doi"`
	Reason string `json:"reason"`
}

// Report summarizes one assembly pass over a batch.
type Report struct {
	Processed int
	Skipped   []Skip
	Triples   int
}

// Assembler builds the full triple graph for a batch of papers.
type Assembler struct {
	Config  *config.Config
	Tallies TallySource
	Logger  *zap.Logger
}

// NewAssembler creates an assembler minting URIs under the configured VIVO
// instance.
func NewAssembler(cfg *config.Config, tallies TallySource, logger *zap.Logger) *Assembler {
	return &Assembler{
		Config:  cfg,
		Tallies: tallies,
		Logger:  logger,
	}
}

// Assemble walks the batch in order and builds every paper into a single
// fresh graph. Problems stay local to the paper they occur on: a record
// without a DOI is reported as skipped, a failed tally lookup downgrades
// that paper to an import without counts. The graph and the report describe
// the same pass; the caller owns both.
func (a *Assembler) Assemble(ctx context.Context, papers []*scite.Paper) (*rdf.Graph, *Report) {
	graph := rdf.NewGraph()
	for label, ns := range vocab.Prefixes {
		graph.Bind(label, ns)
	}
	builder := NewBuilder(a.Config.IndividualBase(), graph, a.Logger)
	report := &Report{}

	for i, paper := range papers {
		if paper.DOI == "" {
			report.Skipped = append(report.Skipped, Skip{Reason: ReasonMissingIdentifier})
			a.Logger.Warn("Paper without identifier skipped", zap.String("title", paper.Title))
			continue
		}

		var tally *scite.Tally
		if a.Tallies != nil {
			t, err := a.Tallies.FetchTally(ctx, paper.DOI)
			if err != nil {
				a.Logger.Warn("Tally lookup failed, importing without citation counts",
					zap.String("doi", paper.DOI), zap.Error(err))
			} else {
				tally = t
				if tally.Empty() {
					a.Logger.Debug("No citation counts for paper", zap.String("doi", paper.DOI))
				}
			}
		}

		builder.AddPublication(paper, tally)
		report.Processed++

		if (i+1)%10 == 0 {
			a.Logger.Info("Assembly progress",
				zap.Int("processed", i+1), zap.Int("total", len(papers)))
		}
	}

	report.Triples = graph.Len()
	a.Logger.Info("Graph assembled",
		zap.Int("papers", report.Processed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("triples", report.Triples))
	return graph, report
}
