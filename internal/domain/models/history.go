package models

// Source says which fallback stage produced a history series.
type Source string

const (
	SourceDirect       Source = "direct"
	SourceTriangulated Source = "triangulated"
	SourceReduced      Source = "reduced"
)

// HistoryResult is the outcome of the history use case.
type HistoryResult struct {
	From      string
	To        string
	Requested DateRange
	Effective DateRange
	Source    Source
	Pivot     string // set when Source is triangulated
	Points    int
	Report    Report
}

// Reduced reports whether the effective range is shorter than the requested one.
func (h HistoryResult) Reduced() bool {
	return h.Source == SourceReduced
}
