package report

import "github.com/agrivision/agrivision/internal/domain/i18n"

// DataPoint is an optional labeled value attached to a report.
type DataPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is a generated advisory document for one feature module.
// Content is the sole required field; an empty content is a failure upstream,
// never a valid empty report.
type Report struct {
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	DataPoints []DataPoint `json:"dataPoints,omitempty"`
}

// Context carries optional grounding facts interpolated into templates.
type Context struct {
	Plant    string
	Soil     string
	Location string
}

// Request selects one feature module and the grounding context.
type Request struct {
	FeatureID string
	Context   Context
	Language  i18n.Language
}
