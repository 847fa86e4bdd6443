package taxonomy

type keywordGroup struct {
	label string
	terms []string
}

// First-match-wins groups. Order encodes precedence.
var severityGroups = []keywordGroup{
	{"mild", []string{"mild", "slight", "minor", "low"}},
	{"moderate", []string{"moderate", "medium", "noticeable"}},
	{"severe", []string{"severe", "intense", "unbearable", "excruciating", "worst"}},
	{"emergency", []string{"emergency", "urgent", "critical", "life-threatening"}},
}

var durationGroups = []keywordGroup{
	{"acute", []string{"sudden", "acute", "immediate", "just started", "minutes ago"}},
	{"subacute", []string{"hours ago", "this morning", "yesterday", "few days"}},
	{"chronic", []string{"weeks", "months", "years", "ongoing", "persistent", "recurring"}},
}

var onsetGroups = []keywordGroup{
	{"sudden", []string{"sudden", "acute", "immediate", "all at once"}},
	{"gradual", []string{"gradual", "slowly", "over time", "progressively"}},
	{"intermittent", []string{"intermittent", "comes and goes", "episodic", "sporadic"}},
}

var analysisBodyParts = []string{
	"head", "chest", "back", "stomach", "abdomen", "arm", "leg", "hand", "foot",
	"neck", "throat", "eye", "ear", "nose", "mouth", "heart", "lung", "kidney",
}

// Cumulative scan: every matching system is reported.
var bodySystemGroups = []keywordGroup{
	{"cardiovascular", []string{"chest", "heart", "breathing", "palpitations"}},
	{"neurological", []string{"head", "brain", "seizure", "confusion", "weakness"}},
	{"respiratory", []string{"cough", "breathing", "lung", "chest"}},
	{"gastrointestinal", []string{"stomach", "abdomen", "nausea", "vomiting", "diarrhea"}},
	{"musculoskeletal", []string{"joint", "muscle", "bone", "back", "pain"}},
	{"dermatological", []string{"skin", "rash", "itching", "swelling"}},
}

// Named symptom patterns, flattened from the clinical grouping. Every
// matching entry is reported.
var symptomPatternGroups = []keywordGroup{
	{"chest_pain_types_crushing", []string{"crushing chest pain", "chest being crushed", "heavy chest pressure"}},
	{"chest_pain_types_burning", []string{"burning chest pain", "chest burning", "heartburn-like chest pain"}},
	{"chest_pain_types_pressure", []string{"chest pressure", "chest heaviness", "chest tightness", "chest squeezing"}},
	{"chest_pain_types_sharp", []string{"sharp chest pain", "stabbing chest pain", "knife-like chest pain"}},
	{"chest_pain_types_dull", []string{"dull chest pain", "aching chest pain", "chest discomfort"}},
	{"cardiac_symptoms_chest_pain", []string{"chest pain", "chest pressure", "chest tightness", "chest discomfort", "chest burning"}},
	{"cardiac_symptoms_shortness_breath", []string{"shortness of breath", "dyspnea", "can't breathe", "struggling to breathe", "breathless"}},
	{"cardiac_symptoms_palpitations", []string{"palpitations", "irregular heartbeat", "racing heart", "heart skipping", "heart pounding"}},
	{"cardiac_symptoms_fatigue", []string{"fatigue", "tiredness", "exhaustion", "weakness", "lethargy"}},
	{"cardiac_symptoms_edema", []string{"swelling", "edema", "puffiness", "fluid retention", "ankle swelling"}},
	{"neurological_symptoms_headache_types", []string{"migraine", "tension", "cluster", "thunderclap"}},
	{"neurological_symptoms_seizure_symptoms", []string{"seizure", "convulsions", "uncontrollable shaking", "jerking movements", "loss of consciousness"}},
	{"neurological_symptoms_stroke_symptoms", []string{"facial droop", "arm weakness", "speech difficulty", "sudden weakness", "numbness"}},
	{"neurological_symptoms_cognitive", []string{"confusion", "memory problems", "disorientation", "brain fog", "mental fog"}},
	{"respiratory_symptoms_cough_types", []string{"productive", "dry", "barking", "whooping"}},
	{"respiratory_symptoms_breathing_difficulty", []string{"shortness of breath", "difficulty breathing", "labored breathing", "rapid breathing"}},
	{"respiratory_symptoms_respiratory_sounds", []string{"wheezing", "stridor", "crackles", "rales", "rhonchi"}},
	{"gastrointestinal_symptoms_nausea_vomiting", []string{"nausea", "vomiting", "nauseous", "queasy", "throwing up"}},
	{"gastrointestinal_symptoms_diarrhea", []string{"diarrhea", "loose stools", "watery stools", "frequent bowel movements"}},
	{"gastrointestinal_symptoms_abdominal_pain", []string{"abdominal pain", "stomach pain", "belly pain", "tummy ache"}},
	{"gastrointestinal_symptoms_digestive", []string{"indigestion", "heartburn", "acid reflux", "bloating", "gas"}},
}

var (
	analysisEmergencyTerms = []string{"emergency", "urgent", "severe", "unbearable", "can't breathe", "chest pain"}
	analysisUrgentTerms    = []string{"moderate", "persistent", "worsening", "fever", "pain"}
)

// AnalysisView owns the descriptor keyword tables for symptom analysis.
// All methods expect lowercased text.
type AnalysisView struct{}

func NewAnalysisView() *AnalysisView { return &AnalysisView{} }

func firstMatch(text string, groups []keywordGroup, fallback string) string {
	for _, g := range groups {
		if containsAnyTerm(text, g.terms) {
			return g.label
		}
	}
	return fallback
}

func (v *AnalysisView) Severity(text string) string {
	return firstMatch(text, severityGroups, "mild")
}

func (v *AnalysisView) DurationClass(text string) string {
	return firstMatch(text, durationGroups, "unknown")
}

func (v *AnalysisView) Onset(text string) string {
	return firstMatch(text, onsetGroups, "gradual")
}

// BodyParts lists every mentioned body part in table order.
func (v *AnalysisView) BodyParts(text string) []string {
	var out []string
	for _, part := range analysisBodyParts {
		if containsAnyTerm(text, []string{part}) {
			out = append(out, part)
		}
	}
	return out
}

// BodySystems lists every affected system, cumulative over all groups.
func (v *AnalysisView) BodySystems(text string) []string {
	var out []string
	for _, g := range bodySystemGroups {
		if containsAnyTerm(text, g.terms) {
			out = append(out, g.label)
		}
	}
	return out
}

// PatternMatches lists every named symptom pattern present in the text.
func (v *AnalysisView) PatternMatches(text string) []string {
	var out []string
	for _, g := range symptomPatternGroups {
		if containsAnyTerm(text, g.terms) {
			out = append(out, g.label)
		}
	}
	return out
}

// UrgencyLevel is a two-tier scan: emergency terms win over urgent terms.
func (v *AnalysisView) UrgencyLevel(text string) string {
	switch {
	case containsAnyTerm(text, analysisEmergencyTerms):
		return "emergency"
	case containsAnyTerm(text, analysisUrgentTerms):
		return "urgent"
	default:
		return "routine"
	}
}
