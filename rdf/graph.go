// Package rdf implements the in-memory triple graph the pipeline
// accumulates publication data into, together with the two serializations
// the loader side needs: canonical N-Triples for SPARQL update payloads and
// prefixed Turtle for export and fallback files.
package rdf

import (
	"sort"
	"strconv"

	"github.com/scitedotai/scite-vivo-integration/vocab"
)

// TermKind discriminates the object position of a statement.
type TermKind int

const (
	// KindIRI is a reference to a resource.
	KindIRI TermKind = iota
	// KindLiteral is a plain string literal.
	KindLiteral
	// KindTypedLiteral is a literal tagged with an XSD datatype.
	KindTypedLiteral
)

// Term is the object of a statement. Subjects and predicates are always
// IRIs and stay plain strings on Triple.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRI builds a resource term.
func IRI(value string) Term { return Term{Kind: KindIRI, Value: value} }

// Literal builds a plain string literal term.
func Literal(value string) Term { return Term{Kind: KindLiteral, Value: value} }

// TypedLiteral builds a literal term tagged with the given datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindTypedLiteral, Value: value, Datatype: datatype}
}

// Integer builds an xsd:integer literal term.
func Integer(n int) Term {
	return TypedLiteral(strconv.Itoa(n), vocab.XSDInteger)
}

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Graph is a set of statements. Adding the same statement twice leaves a
// single copy, which is what lets entity builders run repeatedly over
// shared authors and affiliations without duplicating anything.
type Graph struct {
	triples  map[Triple]struct{}
	prefixes map[string]string
}

// NewGraph returns an empty graph with no prefix bindings.
func NewGraph() *Graph {
	return &Graph{
		triples:  make(map[Triple]struct{}),
		prefixes: make(map[string]string),
	}
}

// Add inserts one statement. Duplicates collapse silently.
func (g *Graph) Add(subject, predicate string, object Term) {
	g.triples[Triple{Subject: subject, Predicate: predicate, Object: object}] = struct{}{}
}

// Has reports whether the exact statement is present.
func (g *Graph) Has(subject, predicate string, object Term) bool {
	_, ok := g.triples[Triple{Subject: subject, Predicate: predicate, Object: object}]
	return ok
}

// Len returns the number of distinct statements.
func (g *Graph) Len() int { return len(g.triples) }

// Bind registers a prefix label for a namespace. Turtle serialization
// compacts IRIs under bound namespaces to prefixed names.
func (g *Graph) Bind(label, namespace string) {
	g.prefixes[label] = namespace
}

// Triples returns every statement ordered by subject, predicate and object
// so that serializations come out identical across runs.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func less(a, b Triple) bool {
	if a.Subject != b.Subject {
		return a.Subject < b.Subject
	}
	if a.Predicate != b.Predicate {
		return a.Predicate < b.Predicate
	}
	if a.Object.Kind != b.Object.Kind {
		return a.Object.Kind < b.Object.Kind
	}
	if a.Object.Value != b.Object.Value {
		return a.Object.Value < b.Object.Value
	}
	return a.Object.Datatype < b.Object.Datatype
}
