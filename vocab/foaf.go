package vocab

// FOAF is the Friend of a Friend namespace. Authors and their affiliations
// are typed with it.
const FOAF = "http://xmlns.com/foaf/0.1/"

const (
	// FOAFPerson is the class of individual people.
	FOAFPerson = FOAF + "Person"

	// FOAFOrganization is the class of institutions and affiliations.
	FOAFOrganization = FOAF + "Organization"

	// FOAFName carries a person's display name.
	FOAFName = FOAF + "name"
)
