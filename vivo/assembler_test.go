package vivo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/rdf"
	"github.com/scitedotai/scite-vivo-integration/vocab"
)

type stubTallies struct {
	tallies map[string]*scite.Tally
	errs    map[string]error
	calls   []string
}

func (s *stubTallies) FetchTally(ctx context.Context, doi string) (*scite.Tally, error) {
	s.calls = append(s.calls, doi)
	if err, ok := s.errs[doi]; ok {
		return nil, err
	}
	return s.tallies[doi], nil
}

func newTestAssembler(tallies TallySource) *Assembler {
	cfg := &config.Config{VIVOBaseURL: "http://localhost:8080/vivo"}
	return NewAssembler(cfg, tallies, zap.NewNop())
}

func countType(g *rdf.Graph, class string) int {
	n := 0
	for _, tr := range g.Triples() {
		if tr.Predicate == vocab.RDFType && tr.Object == rdf.IRI(class) {
			n++
		}
	}
	return n
}

func TestAssembleSkipsPapersWithoutIdentifier(t *testing.T) {
	a := newTestAssembler(nil)
	papers := []*scite.Paper{
		{DOI: "10.1/one", Title: "One"},
		{Title: "No identifier"},
		{DOI: "10.1/three", Title: "Three"},
	}

	graph, report := a.Assemble(context.Background(), papers)

	assert.Equal(t, 2, report.Processed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, ReasonMissingIdentifier, report.Skipped[0].Reason)
	assert.Equal(t, 2, countType(graph, vocab.BIBOAcademicArticle))
	assert.Equal(t, graph.Len(), report.Triples)
}

func TestAssembleAppliesTallies(t *testing.T) {
	tallies := &stubTallies{tallies: map[string]*scite.Tally{
		"10.1/one": {Supporting: intp(4), Total: intp(9)},
	}}
	a := newTestAssembler(tallies)

	graph, report := a.Assemble(context.Background(), []*scite.Paper{{DOI: "10.1/one"}})

	pub := MintURI(testBase, prefixPublication, "10.1/one")
	assert.True(t, graph.Has(pub, vocab.VIVOSciteSupportingCites, rdf.Integer(4)))
	assert.True(t, graph.Has(pub, vocab.VIVOSciteTotalCites, rdf.Integer(9)))
	assert.Equal(t, []string{"10.1/one"}, tallies.calls)
	assert.Equal(t, 1, report.Processed)
}

// A failed tally lookup costs that paper its counts, nothing more.
func TestAssembleDegradesOnTallyFailure(t *testing.T) {
	tallies := &stubTallies{
		tallies: map[string]*scite.Tally{"10.1/ok": {Total: intp(2)}},
		errs:    map[string]error{"10.1/bad": errors.New("timeout")},
	}
	a := newTestAssembler(tallies)

	graph, report := a.Assemble(context.Background(), []*scite.Paper{
		{DOI: "10.1/bad", Title: "Degraded"},
		{DOI: "10.1/ok", Title: "Counted"},
	})

	assert.Equal(t, 2, report.Processed)
	assert.Empty(t, report.Skipped)

	bad := MintURI(testBase, prefixPublication, "10.1/bad")
	ok := MintURI(testBase, prefixPublication, "10.1/ok")
	assert.True(t, graph.Has(bad, vocab.BIBOTitle, rdf.Literal("Degraded")))
	assert.False(t, graph.Has(bad, vocab.VIVOSciteTotalCites, rdf.Integer(2)))
	assert.True(t, graph.Has(ok, vocab.VIVOSciteTotalCites, rdf.Integer(2)))
}

func TestAssembleWithoutTallySource(t *testing.T) {
	a := newTestAssembler(nil)

	graph, report := a.Assemble(context.Background(), []*scite.Paper{{DOI: "10.1/one"}})

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, countType(graph, vocab.BIBOAcademicArticle))
}

func TestAssembleEmptyBatch(t *testing.T) {
	a := newTestAssembler(&stubTallies{})

	graph, report := a.Assemble(context.Background(), nil)

	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, 0, report.Triples)
	assert.Equal(t, 0, graph.Len())
}

// The assembled graph carries the prefix bindings, so fallback files come
// out in readable Turtle.
func TestAssembledGraphSerializesWithPrefixes(t *testing.T) {
	a := newTestAssembler(nil)

	graph, _ := a.Assemble(context.Background(), []*scite.Paper{{DOI: "10.1/one", Title: "One"}})

	out := graph.Turtle()
	assert.Contains(t, out, "@prefix bibo: <http://purl.org/ontology/bibo/> .")
	assert.Contains(t, out, "a bibo:AcademicArticle, vivo:InformationResource ;")
}
