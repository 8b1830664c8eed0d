package rdf

import "strings"

// NTriples serializes the graph as canonical N-Triples, one statement per
// line with fully expanded IRIs. SPARQL INSERT DATA bodies require this
// form; prefixed names are not valid inside an update payload.
func (g *Graph) NTriples() string {
	var b strings.Builder
	for _, t := range g.Triples() {
		b.WriteString("<")
		b.WriteString(t.Subject)
		b.WriteString("> <")
		b.WriteString(t.Predicate)
		b.WriteString("> ")
		b.WriteString(formatObject(t.Object))
		b.WriteString(" .\n")
	}
	return b.String()
}

func formatObject(o Term) string {
	switch o.Kind {
	case KindIRI:
		return "<" + o.Value + ">"
	case KindTypedLiteral:
		return `"` + escapeLiteral(o.Value) + `"^^<` + o.Datatype + ">"
	default:
		return `"` + escapeLiteral(o.Value) + `"`
	}
}

// escapeLiteral applies the N-Triples string escapes. Turtle shares the
// same set, so both serializers use it.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
