package vivo

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/rdf"
	"github.com/scitedotai/scite-vivo-integration/vocab"
)

// Report pages live under this URL, keyed by the paper slug.
const reportBaseURL = "https://scite.ai/reports/"

// Builder writes the triples for papers, people and their relationships
// into one shared graph. All methods are pure graph writes without I/O, and
// because the graph is a set, building the same entity twice is a no-op.
type Builder struct {
	base   string
	graph  *rdf.Graph
	logger *zap.Logger
}

// NewBuilder creates a builder that mints URIs under base and accumulates
// into graph.
func NewBuilder(base string, graph *rdf.Graph, logger *zap.Logger) *Builder {
	return &Builder{
		base:   base,
		graph:  graph,
		logger: logger,
	}
}

// AddPerson describes one author as a foaf:Person, including the ORCID when
// known and, for authors with an affiliation, the organization and the
// position linking the two. It returns the person URI, or ok=false when the
// record carries no usable name at all.
func (b *Builder) AddPerson(author *scite.Author) (string, bool) {
	name := author.DisplayName()
	if name == "" {
		return "", false
	}
	uri := MintURI(b.base, prefixPerson, name)
	b.graph.Add(uri, vocab.RDFType, rdf.IRI(vocab.FOAFPerson))
	b.graph.Add(uri, vocab.RDFSLabel, rdf.Literal(name))
	b.graph.Add(uri, vocab.FOAFName, rdf.Literal(name))
	if orcid := author.ORCIDValue(); orcid != "" {
		b.graph.Add(uri, vocab.VIVOOrcidID, rdf.Literal(orcid))
	}
	if author.Affiliation != "" {
		orgURI := b.AddOrganization(author.Affiliation)
		b.AddPosition(uri, orgURI, name, author.Affiliation)
	}
	return uri, true
}

// AddOrganization describes an affiliation as a foaf:Organization and
// returns its URI. Identity is the organization name as given; two spellings
// of the same institution stay two individuals.
func (b *Builder) AddOrganization(name string) string {
	uri := MintURI(b.base, prefixOrg, name)
	b.graph.Add(uri, vocab.RDFType, rdf.IRI(vocab.FOAFOrganization))
	b.graph.Add(uri, vocab.RDFSLabel, rdf.Literal(name))
	return uri
}

// AddPosition links a person to an organization through a vivo:Position
// node. Identity is the name pair, so one pairing always resolves to the
// same node no matter how many papers repeat it.
func (b *Builder) AddPosition(personURI, orgURI, personName, orgName string) string {
	uri := MintURI(b.base, prefixPosition, personName+"-"+orgName)
	b.graph.Add(uri, vocab.RDFType, rdf.IRI(vocab.VIVOPosition))
	b.graph.Add(uri, vocab.VIVORelates, rdf.IRI(personURI))
	b.graph.Add(uri, vocab.VIVORelates, rdf.IRI(orgURI))
	return uri
}

// AddPublication describes one paper: the article itself, its publication
// date node, the tally counts when supplied, and one authorship node per
// usable author, with the author entities built along the way. Optional
// fields the record does not carry are simply absent from the graph. It
// returns the publication URI, or ok=false when the record has no DOI.
func (b *Builder) AddPublication(paper *scite.Paper, tally *scite.Tally) (string, bool) {
	if paper.DOI == "" {
		return "", false
	}
	uri := MintURI(b.base, prefixPublication, paper.DOI)
	g := b.graph
	g.Add(uri, vocab.RDFType, rdf.IRI(vocab.BIBOAcademicArticle))
	g.Add(uri, vocab.RDFType, rdf.IRI(vocab.VIVOInformationResource))
	g.Add(uri, vocab.BIBODoi, rdf.Literal(paper.DOI))
	if paper.Title != "" {
		g.Add(uri, vocab.RDFSLabel, rdf.Literal(paper.Title))
		g.Add(uri, vocab.BIBOTitle, rdf.Literal(paper.Title))
	}
	if paper.Abstract != "" {
		g.Add(uri, vocab.BIBOAbstract, rdf.Literal(paper.Abstract))
	}
	if paper.Year != 0 {
		b.addPublicationDate(uri, paper.DOI, paper.Year)
	}
	if paper.PMID != 0 {
		g.Add(uri, vocab.BIBOPmid, rdf.Literal(strconv.FormatInt(paper.PMID, 10)))
	}
	for _, issn := range paper.ISSNs {
		if issn != "" {
			g.Add(uri, vocab.BIBOIssn, rdf.Literal(issn))
		}
	}
	b.addTally(uri, tally)
	if paper.Slug != "" {
		g.Add(uri, vocab.VIVOSciteReportURL, rdf.Literal(reportBaseURL+paper.Slug))
	}
	for i := range paper.Authors {
		b.addAuthorship(uri, paper.DOI, &paper.Authors[i])
	}
	return uri, true
}

// addPublicationDate reifies the publication year as a vivo:DateTimeValue
// with year precision. The date node is keyed by DOI and year together so
// different papers from the same year keep separate nodes.
func (b *Builder) addPublicationDate(pubURI, doi string, year int) {
	uri := MintURI(b.base, prefixDate, fmt.Sprintf("%s-%d", doi, year))
	b.graph.Add(uri, vocab.RDFType, rdf.IRI(vocab.VIVODateTimeValue))
	b.graph.Add(uri, vocab.VIVODateTime,
		rdf.TypedLiteral(fmt.Sprintf("%d-01-01T00:00:00", year), vocab.XSDDateTime))
	b.graph.Add(uri, vocab.VIVODateTimePrecision, rdf.IRI(vocab.VIVOYearPrecision))
	b.graph.Add(pubURI, vocab.VIVOHasDateTimeValue, rdf.IRI(uri))
}

// addTally writes one triple per count the tally actually carries. A zero
// count is a statement; a missing one is not.
func (b *Builder) addTally(pubURI string, tally *scite.Tally) {
	if tally == nil {
		return
	}
	if tally.Supporting != nil {
		b.graph.Add(pubURI, vocab.VIVOSciteSupportingCites, rdf.Integer(*tally.Supporting))
	}
	if tally.Contradicting != nil {
		b.graph.Add(pubURI, vocab.VIVOSciteContrastingCites, rdf.Integer(*tally.Contradicting))
	}
	if tally.Mentioning != nil {
		b.graph.Add(pubURI, vocab.VIVOSciteMentioningCites, rdf.Integer(*tally.Mentioning))
	}
	if tally.Total != nil {
		b.graph.Add(pubURI, vocab.VIVOSciteTotalCites, rdf.Integer(*tally.Total))
	}
}

// addAuthorship builds the author's person entity and the vivo:Authorship
// node connecting them to the publication. Authors without a usable name
// contribute nothing; the rest of the paper is unaffected.
func (b *Builder) addAuthorship(pubURI, doi string, author *scite.Author) {
	personURI, ok := b.AddPerson(author)
	if !ok {
		b.logger.Debug("Author without usable name skipped", zap.String("doi", doi))
		return
	}
	uri := MintURI(b.base, prefixAuthorship, doi+"-"+author.DisplayName())
	b.graph.Add(uri, vocab.RDFType, rdf.IRI(vocab.VIVOAuthorship))
	b.graph.Add(uri, vocab.VIVORelates, rdf.IRI(pubURI))
	b.graph.Add(uri, vocab.VIVORelates, rdf.IRI(personURI))
	if author.AuthorSequenceNumber != nil {
		b.graph.Add(uri, vocab.VIVORank, rdf.Integer(*author.AuthorSequenceNumber))
	}
}
