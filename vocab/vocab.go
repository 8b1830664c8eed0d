// Package vocab defines the ontology namespaces and terms used to express
// publication records as linked data: the VIVO core ontology, BIBO and FOAF
// for the bibliographic facts, plus the W3C base vocabularies for typing,
// labels and literal datatypes.
package vocab

// Namespaces bound for serialization but asserted nowhere in this pipeline.
// The VIVO loader accepts data that declares them, so exports keep them.
const (
	VCARD = "http://www.w3.org/2006/vcard/ns#"
	OBO   = "http://purl.obolibrary.org/obo/"
)

// Prefixes maps the Turtle prefix labels to their namespace IRIs. Graphs
// bind this set before serialization so export and fallback files stay
// readable.
var Prefixes = map[string]string{
	"rdf":   RDF,
	"rdfs":  RDFS,
	"xsd":   XSD,
	"foaf":  FOAF,
	"bibo":  BIBO,
	"vivo":  VIVO,
	"vcard": VCARD,
	"obo":   OBO,
}
