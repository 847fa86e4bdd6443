package taxonomy

import "strings"

// Pattern token vocabulary for feedback learning. Tokens are substrings
// matched against the lowercased symptom text; every hit becomes a weight
// table key.
var learningSymptomKeywords = []string{
	// Pain and discomfort
	"pain", "ache", "hurt", "sore", "tender", "throbbing", "burning", "stabbing", "cramping",
	// Fever and temperature
	"fever", "temperature", "hot", "cold", "chills", "sweating", "rigors", "hyperthermia", "hypothermia",
	// Gastrointestinal
	"nausea", "vomit", "sick", "queasy", "emesis", "regurgitation", "retching",
	"diarrhea", "loose", "watery", "constipation", "bowel", "stool",
	// Neurological
	"headache", "migraine", "throbbing", "cephalgia", "cranial pain",
	"confusion", "memory", "forget", "disorientation", "cognitive", "mental fog",
	"seizure", "convulsion", "shaking", "epileptic", "tonic-clonic",
	"weakness", "fatigue", "tired", "exhausted", "lethargy", "malaise",
	"numbness", "tingling", "paresthesia", "loss of sensation",
	// Cardiovascular
	"chest", "heart", "breathing", "breath", "dyspnea", "shortness", "palpitations", "arrhythmia",
	// Respiratory
	"cough", "coughing", "phlegm", "sputum", "wheezing", "stridor", "barking",
	// Dermatological
	"rash", "itch", "red", "swollen", "inflammation", "lesion", "blister", "hives",
	// Musculoskeletal
	"joint", "muscle", "bone", "stiffness", "swelling", "tenderness", "spasm",
	// Genitourinary
	"urination", "urinary", "bladder", "kidney", "pelvic", "genital",
	// Mental health
	"anxiety", "panic", "depression", "sad", "hopeless", "mood", "emotional",
	// Emergency
	"bleeding", "blood", "hemorrhage", "unconscious", "faint", "collapse", "emergency",
}

var learningBodyParts = []string{
	"head", "neck", "chest", "back", "stomach", "abdomen", "pelvis",
	"arm", "leg", "hand", "foot", "knee", "elbow", "shoulder", "hip",
	"throat", "ear", "eye", "nose", "mouth", "tongue", "lips",
	"heart", "lung", "liver", "kidney", "bladder", "brain", "spine",
}

var learningTemporalTerms = []string{
	"sudden", "acute", "chronic", "persistent", "ongoing", "recurring",
	"intermittent", "episodic", "gradual", "rapid", "slow", "immediate",
}

var learningSeverityTerms = []string{
	"severe", "mild", "moderate", "intense", "unbearable", "excruciating",
	"worst", "terrible", "awful", "horrible", "extreme", "minimal",
}

type comboPattern struct {
	token string
	terms []string
}

var learningCombos = []comboPattern{
	{"chest_pain_combo", []string{"chest", "pain"}},
	{"shortness_breath_combo", []string{"shortness", "breath"}},
	{"nausea_vomiting_combo", []string{"nausea", "vomiting"}},
	{"fever_cough_combo", []string{"fever", "cough"}},
	{"headache_nausea_combo", []string{"headache", "nausea"}},
}

// Emergency bonus tables for the confidence adjustment.
var (
	learningEmergencyConditions = []string{"heart attack", "stroke", "anaphylaxis", "septic shock"}
	learningEmergencyMarkers    = []string{"severe", "intense", "unbearable", "emergency", "urgent"}
)

// LearningView owns pattern token extraction and the per-token scaling used
// when learned weights are applied to predictions.
type LearningView struct{}

func NewLearningView() *LearningView { return &LearningView{} }

// ExtractPatterns returns every vocabulary token present in the lowercased
// symptom text: plain symptom keywords, body_-prefixed parts, temporal_-
// and severity_-prefixed qualifiers, and combination tokens.
func (v *LearningView) ExtractPatterns(symptomsLower string) []string {
	var patterns []string
	for _, kw := range learningSymptomKeywords {
		if strings.Contains(symptomsLower, kw) {
			patterns = append(patterns, kw)
		}
	}
	for _, part := range learningBodyParts {
		if strings.Contains(symptomsLower, part) {
			patterns = append(patterns, "body_"+part)
		}
	}
	for _, t := range learningTemporalTerms {
		if strings.Contains(symptomsLower, t) {
			patterns = append(patterns, "temporal_"+t)
		}
	}
	for _, s := range learningSeverityTerms {
		if strings.Contains(symptomsLower, s) {
			patterns = append(patterns, "severity_"+s)
		}
	}
	for _, combo := range learningCombos {
		all := true
		for _, term := range combo.terms {
			if !strings.Contains(symptomsLower, term) {
				all = false
				break
			}
		}
		if all {
			patterns = append(patterns, combo.token)
		}
	}
	return patterns
}

// PatternScale returns the weight applied to a token's learned weight when
// adjusting predictions. Combination tokens carry the most signal.
func (v *LearningView) PatternScale(pattern string) float64 {
	switch {
	case strings.HasSuffix(pattern, "_combo"):
		return 0.2
	case strings.HasPrefix(pattern, "severity_"):
		return 0.15
	case strings.HasPrefix(pattern, "temporal_"):
		return 0.12
	default:
		return 0.1
	}
}

// IsEmergencyCondition reports whether a condition is in the emergency
// group eligible for the confidence bonus.
func (v *LearningView) IsEmergencyCondition(condition string) bool {
	return containsString(learningEmergencyConditions, condition)
}

// HasEmergencyMarkers reports whether the text carries a severity marker
// qualifying an emergency condition for the confidence bonus.
func (v *LearningView) HasEmergencyMarkers(symptomsLower string) bool {
	return containsAnyTerm(symptomsLower, learningEmergencyMarkers)
}
