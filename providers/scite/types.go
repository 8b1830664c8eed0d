package scite

import "strings"

// Paper is one bibliographic record as returned by the batch papers
// endpoint. Fields the source leaves out decode to their zero values.
type Paper struct {
	DOI      string   `json:"doi"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Year     int      `json:"year"`
	PMID     int64    `json:"pmid"`
	ISSNs    []string `json:"issns"`
	Slug     string   `json:"slug"`
	Authors  []Author `json:"authors"`
}

// Author is one entry in a paper's author list. The source is inconsistent
// about which name and ORCID fields it fills, so consumers go through
// DisplayName and ORCIDValue instead of reading fields directly.
type Author struct {
	AuthorName           string `json:"authorName"`
	Given                string `json:"given"`
	Family               string `json:"family"`
	ORCID                string `json:"orcid"`
	AuthorORCID          string `json:"author_orcid"`
	Affiliation          string `json:"affiliation"`
	AuthorSequenceNumber *int   `json:"authorSequenceNumber"`
}

// DisplayName returns the best available name: the explicit authorName
// field when present, otherwise given and family joined. An empty result
// means the record names nobody usable.
func (a *Author) DisplayName() string {
	if a.AuthorName != "" {
		return a.AuthorName
	}
	return strings.TrimSpace(a.Given + " " + a.Family)
}

// ORCIDValue returns the ORCID from whichever field the source populated.
func (a *Author) ORCIDValue() string {
	if a.ORCID != "" {
		return a.ORCID
	}
	return a.AuthorORCID
}

// Tally carries the citation classification counts for one publication.
// Fields are pointers because a present zero and an absent count must stay
// distinguishable.
type Tally struct {
	Supporting    *int `json:"supporting"`
	Contradicting *int `json:"contradicting"`
	Mentioning    *int `json:"mentioning"`
	Total         *int `json:"total"`
}

// Empty reports whether the tally carries no count at all.
func (t *Tally) Empty() bool {
	return t == nil ||
		(t.Supporting == nil && t.Contradicting == nil && t.Mentioning == nil && t.Total == nil)
}
