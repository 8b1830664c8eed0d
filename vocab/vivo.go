package vocab

// VIVO is the VIVO core ontology namespace, covering research metadata:
// positions, authorships, date values and the Scite extension properties.
const VIVO = "http://vivoweb.org/ontology/core#"

// Classes.
const (
	// VIVOInformationResource marks a resource that carries information,
	// asserted alongside the BIBO article class.
	VIVOInformationResource = VIVO + "InformationResource"

	// VIVOPosition relates a person to an organization.
	VIVOPosition = VIVO + "Position"

	// VIVOAuthorship relates a person to a publication they authored.
	VIVOAuthorship = VIVO + "Authorship"

	// VIVODateTimeValue is the class of reified date nodes.
	VIVODateTimeValue = VIVO + "DateTimeValue"
)

// Properties.
const (
	// VIVORelates links a relationship node to each of its endpoints.
	VIVORelates = VIVO + "relates"

	// VIVORank carries the position of an author in the byline.
	VIVORank = VIVO + "rank"

	// VIVOOrcidID carries a person's ORCID.
	VIVOOrcidID = VIVO + "orcidId"

	// VIVOHasDateTimeValue links a publication to its date node.
	VIVOHasDateTimeValue = VIVO + "dateTimeValue"

	// VIVODateTime carries the xsd:dateTime literal of a date node.
	VIVODateTime = VIVO + "dateTime"

	// VIVODateTimePrecision states how much of a date literal is
	// meaningful.
	VIVODateTimePrecision = VIVO + "dateTimePrecision"

	// VIVOYearPrecision is the precision individual for year-only dates.
	VIVOYearPrecision = VIVO + "yearPrecision"
)

// Scite extension properties. Contradicting counts from the source land on
// sciteContrastingCites; the loader side expects that spelling.
const (
	VIVOSciteSupportingCites  = VIVO + "sciteSupportingCites"
	VIVOSciteContrastingCites = VIVO + "sciteContrastingCites"
	VIVOSciteMentioningCites  = VIVO + "sciteMentioningCites"
	VIVOSciteTotalCites       = VIVO + "sciteTotalCites"
	VIVOSciteReportURL        = VIVO + "sciteReportUrl"
)
