package report

// Feature statuses shown in the catalog.
const (
	StatusLive       = "Live"
	StatusBeta       = "Beta"
	StatusExplore    = "Explore"
	StatusComingSoon = "Coming Soon"
)

// Feature is one static catalog entry for a report-generating module.
// Name and Description are translation keys resolved per session language.
type Feature struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// features is the fixed catalog, defined at process start and never mutated.
var features = []Feature{
	{ID: "1", Name: "feat_weather", Icon: "weather", Status: StatusLive, Description: "feat_weather_desc"},
	{ID: "2", Name: "feat_water", Icon: "water", Status: StatusLive, Description: "feat_water_desc"},
	{ID: "3", Name: "feat_trend", Icon: "trend", Status: StatusLive, Description: "feat_trend_desc"},
	{ID: "4", Name: "feat_finance", Icon: "finance", Status: StatusLive, Description: "feat_finance_desc"},
	{ID: "5", Name: "feat_sat", Icon: "sat", Status: StatusLive, Description: "feat_sat_desc"},
	{ID: "6", Name: "feat_risk", Icon: "risk", Status: StatusLive, Description: "feat_risk_desc"},
	{ID: "7", Name: "feat_security", Icon: "security", Status: StatusLive, Description: "feat_security_desc"},
	{ID: "8", Name: "feat_comm", Icon: "community", Status: StatusLive, Description: "feat_comm_desc"},
}

// Features returns the catalog.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// FeatureByID looks up a catalog entry.
func FeatureByID(id string) (Feature, bool) {
	for _, f := range features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}
