package vocab

// BIBO is the Bibliographic Ontology namespace. It supplies the article
// class and the standard identifier properties.
const BIBO = "http://purl.org/ontology/bibo/"

const (
	// BIBOAcademicArticle is the class of scholarly journal articles.
	BIBOAcademicArticle = BIBO + "AcademicArticle"

	// BIBODoi carries the Digital Object Identifier of a publication.
	BIBODoi = BIBO + "doi"

	// BIBOTitle carries the publication title.
	BIBOTitle = BIBO + "title"

	// BIBOAbstract carries the publication abstract.
	BIBOAbstract = BIBO + "abstract"

	// BIBOPmid carries the PubMed identifier as a string.
	BIBOPmid = BIBO + "pmid"

	// BIBOIssn carries a serial number of the publishing venue. A
	// publication may carry several.
	BIBOIssn = BIBO + "issn"
)
