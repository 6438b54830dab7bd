package entities

// AnalysisField names a top-level field of an AnalysisResult
type AnalysisField string

const (
	FieldSentiments    AnalysisField = "sentiments"
	FieldHeadline      AnalysisField = "headline"
	FieldDiscussions   AnalysisField = "discussions"
	FieldPeople        AnalysisField = "people"
	FieldOtherInsights AnalysisField = "other_insights"
	FieldVideoRequests AnalysisField = "video_requests"
)

// AnalysisFields lists every top-level field in storage order
var AnalysisFields = []AnalysisField{
	FieldSentiments,
	FieldHeadline,
	FieldDiscussions,
	FieldPeople,
	FieldOtherInsights,
	FieldVideoRequests,
}

// Value returns the field's value from r
func (f AnalysisField) Value(r AnalysisResult) interface{} {
	switch f {
	case FieldSentiments:
		return r.Sentiments
	case FieldHeadline:
		return r.Headline
	case FieldDiscussions:
		return r.Discussions
	case FieldPeople:
		return r.People
	case FieldOtherInsights:
		return r.OtherInsights
	case FieldVideoRequests:
		return r.VideoRequests
	}
	return nil
}

// AnalysisPatch is a partial update: only Fields are written, taking values from Result
type AnalysisPatch struct {
	Fields []AnalysisField
	Result AnalysisResult
}

// IsEmpty reports whether the patch touches nothing
func (p AnalysisPatch) IsEmpty() bool {
	return len(p.Fields) == 0
}

// FieldNames returns the patched field names
func (p AnalysisPatch) FieldNames() []string {
	names := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		names = append(names, string(f))
	}
	return names
}
