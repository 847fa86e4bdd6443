package entities

// ConditionRecommendations groups per-condition guidance for display.
type ConditionRecommendations struct {
	ImmediateActions []string `json:"immediate_actions"`
	WarningSigns     []string `json:"warning_signs"`
	Prevention       []string `json:"prevention"`
}

// ResourceLink points at external reading material for a condition.
type ResourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
