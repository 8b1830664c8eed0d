package vocab

// W3C base vocabulary namespaces.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

const (
	// RDFType asserts the class of a resource.
	RDFType = RDF + "type"

	// RDFSLabel carries the human-readable label of a resource.
	RDFSLabel = RDFS + "label"
)

// XSD datatypes used for typed literals.
const (
	XSDInteger  = XSD + "integer"
	XSDDateTime = XSD + "dateTime"
)
