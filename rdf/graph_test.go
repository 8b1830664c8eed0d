package rdf

import (
	"testing"

	"github.com/scitedotai/scite-vivo-integration/vocab"
	"github.com/stretchr/testify/assert"
)

func TestGraphCollapsesDuplicateStatements(t *testing.T) {
	g := NewGraph()
	g.Add("http://example.org/s", vocab.RDFSLabel, Literal("label"))
	g.Add("http://example.org/s", vocab.RDFSLabel, Literal("label"))

	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has("http://example.org/s", vocab.RDFSLabel, Literal("label")))
}

func TestGraphKeepsDistinctObjects(t *testing.T) {
	g := NewGraph()
	g.Add("http://example.org/s", vocab.BIBOIssn, Literal("1111-2222"))
	g.Add("http://example.org/s", vocab.BIBOIssn, Literal("3333-4444"))
	g.Add("http://example.org/s", vocab.BIBOIssn, IRI("1111-2222"))

	assert.Equal(t, 3, g.Len())
	assert.False(t, g.Has("http://example.org/s", vocab.BIBOIssn, Literal("5555-6666")))
}

func TestTriplesAreSorted(t *testing.T) {
	g := NewGraph()
	g.Add("http://example.org/b", vocab.RDFSLabel, Literal("b"))
	g.Add("http://example.org/a", vocab.RDFType, IRI(vocab.FOAFPerson))
	g.Add("http://example.org/a", vocab.FOAFName, Literal("z"))
	g.Add("http://example.org/a", vocab.FOAFName, Literal("a"))

	got := g.Triples()
	want := []Triple{
		{Subject: "http://example.org/a", Predicate: vocab.RDFType, Object: IRI(vocab.FOAFPerson)},
		{Subject: "http://example.org/a", Predicate: vocab.FOAFName, Object: Literal("a")},
		{Subject: "http://example.org/a", Predicate: vocab.FOAFName, Object: Literal("z")},
		{Subject: "http://example.org/b", Predicate: vocab.RDFSLabel, Object: Literal("b")},
	}
	assert.Equal(t, want, got)
}

func TestIntegerTerm(t *testing.T) {
	assert.Equal(t, Term{Kind: KindTypedLiteral, Value: "42", Datatype: vocab.XSDInteger}, Integer(42))
	assert.Equal(t, "-3", Integer(-3).Value)
}
