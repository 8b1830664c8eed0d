package rdf

import (
	"testing"

	"github.com/scitedotai/scite-vivo-integration/vocab"
	"github.com/stretchr/testify/assert"
)

func TestNTriples(t *testing.T) {
	g := NewGraph()
	g.Add("http://example.org/pub-1", vocab.RDFType, IRI(vocab.BIBOAcademicArticle))
	g.Add("http://example.org/pub-1", vocab.BIBODoi, Literal("10.1000/x"))
	g.Add("http://example.org/pub-1", vocab.VIVOSciteTotalCites, Integer(12))

	want := `<http://example.org/pub-1> <http://purl.org/ontology/bibo/doi> "10.1000/x" .
<http://example.org/pub-1> <http://vivoweb.org/ontology/core#sciteTotalCites> "12"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://example.org/pub-1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://purl.org/ontology/bibo/AcademicArticle> .
`
	assert.Equal(t, want, g.NTriples())
}

func TestNTriplesEscapesLiterals(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"quotes", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "line1\nline2", `"line1\nline2"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"plain", "nothing special", `"nothing special"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGraph()
			g.Add("http://example.org/s", vocab.RDFSLabel, Literal(tc.value))
			assert.Equal(t,
				"<http://example.org/s> <"+vocab.RDFSLabel+"> "+tc.want+" .\n",
				g.NTriples())
		})
	}
}

func TestTurtle(t *testing.T) {
	g := NewGraph()
	for label, ns := range vocab.Prefixes {
		g.Bind(label, ns)
	}
	pub := "http://localhost:8080/vivo/individual/pub-1"
	date := "http://localhost:8080/vivo/individual/date-1"
	g.Add(pub, vocab.RDFType, IRI(vocab.BIBOAcademicArticle))
	g.Add(pub, vocab.RDFType, IRI(vocab.VIVOInformationResource))
	g.Add(pub, vocab.BIBODoi, Literal("10.1000/x"))
	g.Add(pub, vocab.BIBOIssn, Literal("1111-2222"))
	g.Add(pub, vocab.BIBOIssn, Literal("3333-4444"))
	g.Add(pub, vocab.VIVOHasDateTimeValue, IRI(date))
	g.Add(pub, vocab.VIVOSciteTotalCites, Integer(7))
	g.Add(date, vocab.RDFType, IRI(vocab.VIVODateTimeValue))
	g.Add(date, vocab.VIVODateTime, TypedLiteral("2004-01-01T00:00:00", vocab.XSDDateTime))
	g.Add(date, vocab.VIVODateTimePrecision, IRI(vocab.VIVOYearPrecision))

	want := `@prefix bibo: <http://purl.org/ontology/bibo/> .
@prefix vivo: <http://vivoweb.org/ontology/core#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

<http://localhost:8080/vivo/individual/date-1> a vivo:DateTimeValue ;
    vivo:dateTime "2004-01-01T00:00:00"^^xsd:dateTime ;
    vivo:dateTimePrecision vivo:yearPrecision .

<http://localhost:8080/vivo/individual/pub-1> a bibo:AcademicArticle, vivo:InformationResource ;
    bibo:doi "10.1000/x" ;
    bibo:issn "1111-2222", "3333-4444" ;
    vivo:dateTimeValue <http://localhost:8080/vivo/individual/date-1> ;
    vivo:sciteTotalCites 7 .
`
	assert.Equal(t, want, g.Turtle())
}

func TestTurtleWithoutBindings(t *testing.T) {
	g := NewGraph()
	g.Add("http://example.org/s", vocab.RDFType, IRI(vocab.FOAFPerson))
	g.Add("http://example.org/s", vocab.VIVORank, Integer(2))

	out := g.Turtle()
	assert.NotContains(t, out, "@prefix")
	assert.Contains(t, out, "<http://example.org/s> a <http://xmlns.com/foaf/0.1/Person> ;")
	assert.Contains(t, out, "<http://vivoweb.org/ontology/core#rank> 2 .")
}

func TestTurtleOmitsUnusedPrefixes(t *testing.T) {
	g := NewGraph()
	for label, ns := range vocab.Prefixes {
		g.Bind(label, ns)
	}
	g.Add("http://example.org/s", vocab.FOAFName, Literal("Jane"))

	out := g.Turtle()
	assert.Contains(t, out, "@prefix foaf: <http://xmlns.com/foaf/0.1/> .")
	assert.NotContains(t, out, "@prefix bibo:")
	assert.NotContains(t, out, "@prefix vcard:")
	assert.NotContains(t, out, "@prefix obo:")
}

func TestTurtleEmptyGraph(t *testing.T) {
	g := NewGraph()
	for label, ns := range vocab.Prefixes {
		g.Bind(label, ns)
	}
	assert.Equal(t, "", g.Turtle())
}
