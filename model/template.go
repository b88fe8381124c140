package model

// Template is a previously curated map definition, harvested from a
// prior XDF export, used as a prior to relocate the same map after the
// image has drifted (moved to a new offset in a later firmware
// revision). Only RawXML is required; the rest is metadata carried
// through for downstream consumers and is not interpreted by the
// rescanner itself, which re-derives address/dims straight from the
// embedded XML.
type Template struct {
	Title  string `json:"title,omitempty"`
	Offset int64  `json:"offset,omitempty"`

	// Rows and Cols mirror the source catalog's convention of carrying
	// advertised dimensions as strings.
	Rows string `json:"rows,omitempty"`
	Cols string `json:"cols,omitempty"`

	ElementSizeBits int    `json:"elementSizeBits,omitempty"`
	Datatype        string `json:"datatype,omitempty"` // "signed" or "unsigned"

	RawXML string `json:"rawXML"`
}
