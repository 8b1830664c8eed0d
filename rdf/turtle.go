package rdf

import (
	"sort"
	"strings"

	"github.com/scitedotai/scite-vivo-integration/vocab"
)

// Turtle serializes the graph with prefixed names, subject grouping and the
// shorthands the Turtle grammar defines: `a` for rdf:type and bare numbers
// for xsd:integer literals. This is the readable form written to export and
// fallback files.
func (g *Graph) Turtle() string {
	triples := g.Triples()
	used := g.usedPrefixes(triples)

	var b strings.Builder
	labels := sortedLabels(used)
	for _, label := range labels {
		b.WriteString("@prefix ")
		b.WriteString(label)
		b.WriteString(": <")
		b.WriteString(used[label])
		b.WriteString("> .\n")
	}
	if len(labels) > 0 && len(triples) > 0 {
		b.WriteString("\n")
	}

	for i := 0; i < len(triples); {
		j := i
		for j < len(triples) && triples[j].Subject == triples[i].Subject {
			j++
		}
		g.writeSubject(&b, triples[i:j])
		i = j
		if i < len(triples) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// writeSubject renders one subject block. Class assertions come first via
// the `a` keyword, then the remaining predicates in sorted order, objects
// of the same predicate joined by commas.
func (g *Graph) writeSubject(b *strings.Builder, group []Triple) {
	var types, rest []Triple
	for _, t := range group {
		if t.Predicate == vocab.RDFType {
			types = append(types, t)
		} else {
			rest = append(rest, t)
		}
	}

	type entry struct {
		pred string
		objs []string
	}
	var entries []entry
	if len(types) > 0 {
		objs := make([]string, 0, len(types))
		for _, t := range types {
			objs = append(objs, g.object(t.Object))
		}
		entries = append(entries, entry{pred: "a", objs: objs})
	}
	for i := 0; i < len(rest); {
		j := i
		for j < len(rest) && rest[j].Predicate == rest[i].Predicate {
			j++
		}
		objs := make([]string, 0, j-i)
		for _, t := range rest[i:j] {
			objs = append(objs, g.object(t.Object))
		}
		entries = append(entries, entry{pred: g.ref(rest[i].Predicate), objs: objs})
		i = j
	}

	b.WriteString(g.ref(group[0].Subject))
	b.WriteString(" ")
	for k, e := range entries {
		if k > 0 {
			b.WriteString("    ")
		}
		b.WriteString(e.pred)
		b.WriteString(" ")
		b.WriteString(strings.Join(e.objs, ", "))
		if k == len(entries)-1 {
			b.WriteString(" .\n")
		} else {
			b.WriteString(" ;\n")
		}
	}
}

func (g *Graph) object(o Term) string {
	switch o.Kind {
	case KindIRI:
		return g.ref(o.Value)
	case KindTypedLiteral:
		if o.Datatype == vocab.XSDInteger {
			return o.Value
		}
		return `"` + escapeLiteral(o.Value) + `"^^` + g.ref(o.Datatype)
	default:
		return `"` + escapeLiteral(o.Value) + `"`
	}
}

// ref renders an IRI as a prefixed name when a binding covers it, otherwise
// in angle brackets.
func (g *Graph) ref(iri string) string {
	for _, label := range sortedLabels(g.prefixes) {
		ns := g.prefixes[label]
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if local := iri[len(ns):]; local != "" && validLocal(local) {
			return label + ":" + local
		}
	}
	return "<" + iri + ">"
}

// usedPrefixes narrows the bound prefixes to the ones the serialization
// will actually reference. rdf:type collapses to `a` and xsd:integer to a
// bare number, so those do not count as uses on their own.
func (g *Graph) usedPrefixes(triples []Triple) map[string]string {
	used := make(map[string]string)
	note := func(iri string) {
		for label, ns := range g.prefixes {
			if ns == "" || !strings.HasPrefix(iri, ns) {
				continue
			}
			if local := iri[len(ns):]; local != "" && validLocal(local) {
				used[label] = ns
			}
		}
	}
	for _, t := range triples {
		note(t.Subject)
		if t.Predicate != vocab.RDFType {
			note(t.Predicate)
		}
		switch t.Object.Kind {
		case KindIRI:
			note(t.Object.Value)
		case KindTypedLiteral:
			if t.Object.Datatype != vocab.XSDInteger {
				note(t.Object.Datatype)
			}
		}
	}
	return used
}

func validLocal(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

func sortedLabels(m map[string]string) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
