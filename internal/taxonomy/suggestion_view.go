package taxonomy

import "strings"

// ConditionScore pairs a condition label with a base plausibility score.
type ConditionScore struct {
	Condition string
	Score     float64
}

type keywordEntry struct {
	keyword    string
	conditions []ConditionScore
}

// Keyword table for short inputs. Order matters: candidate labels for the
// classifier are derived from it in declaration order.
var keywordConditions = []keywordEntry{
	{"headache", []ConditionScore{
		{"migraine", 0.85},
		{"tension headache", 0.80},
		{"cluster headache", 0.60},
		{"sinus headache", 0.50},
	}},
	{"fever", []ConditionScore{
		{"influenza", 0.80},
		{"pneumonia", 0.75},
		{"covid-19", 0.70},
		{"respiratory infection", 0.65},
		{"viral infection", 0.60},
	}},
	{"cough", []ConditionScore{
		{"bronchitis", 0.80},
		{"respiratory infection", 0.75},
		{"pneumonia", 0.70},
		{"asthma", 0.60},
		{"covid-19", 0.65},
	}},
	{"chest pain", []ConditionScore{
		{"heart attack", 0.90},
		{"angina", 0.80},
		{"heart failure", 0.70},
		{"pericarditis", 0.60},
		{"muscle strain", 0.50},
	}},
	{"nausea", []ConditionScore{
		{"gastroenteritis", 0.80},
		{"migraine", 0.70},
		{"food poisoning", 0.75},
		{"pregnancy", 0.60},
		{"motion sickness", 0.55},
	}},
	{"vomiting", []ConditionScore{
		{"gastroenteritis", 0.85},
		{"food poisoning", 0.80},
		{"migraine", 0.70},
		{"pregnancy", 0.65},
		{"appendicitis", 0.60},
	}},
	{"diarrhea", []ConditionScore{
		{"gastroenteritis", 0.85},
		{"food poisoning", 0.80},
		{"irritable bowel syndrome", 0.60},
		{"viral infection", 0.70},
		{"bacterial infection", 0.65},
	}},
	{"tired", []ConditionScore{
		{"fatigue", 0.90},
		{"anemia", 0.70},
		{"depression", 0.65},
		{"thyroid disorder", 0.60},
		{"sleep disorder", 0.55},
	}},
	{"fatigue", []ConditionScore{
		{"chronic fatigue syndrome", 0.80},
		{"anemia", 0.75},
		{"depression", 0.70},
		{"thyroid disorder", 0.65},
		{"fibromyalgia", 0.60},
	}},
	{"dizzy", []ConditionScore{
		{"vertigo", 0.85},
		{"low blood pressure", 0.70},
		{"inner ear disorder", 0.65},
		{"dehydration", 0.60},
		{"anxiety", 0.55},
	}},
	{"dizziness", []ConditionScore{
		{"vertigo", 0.90},
		{"low blood pressure", 0.75},
		{"inner ear disorder", 0.70},
		{"dehydration", 0.65},
		{"anxiety", 0.60},
	}},
	{"sore throat", []ConditionScore{
		{"pharyngitis", 0.85},
		{"strep throat", 0.80},
		{"tonsillitis", 0.75},
		{"viral infection", 0.70},
		{"allergic reaction", 0.50},
	}},
	{"back pain", []ConditionScore{
		{"muscle strain", 0.80},
		{"herniated disc", 0.70},
		{"arthritis", 0.65},
		{"kidney stones", 0.60},
		{"spinal stenosis", 0.55},
	}},
	{"stomach ache", []ConditionScore{
		{"gastroenteritis", 0.80},
		{"irritable bowel syndrome", 0.70},
		{"food poisoning", 0.75},
		{"gastritis", 0.65},
		{"appendicitis", 0.60},
	}},
	{"abdominal pain", []ConditionScore{
		{"appendicitis", 0.80},
		{"gastroenteritis", 0.75},
		{"gallstones", 0.70},
		{"irritable bowel syndrome", 0.65},
		{"kidney stones", 0.60},
	}},
	{"rash", []ConditionScore{
		{"allergic reaction", 0.80},
		{"contact dermatitis", 0.75},
		{"eczema", 0.70},
		{"psoriasis", 0.60},
		{"viral infection", 0.55},
	}},
	{"swollen", []ConditionScore{
		{"edema", 0.85},
		{"inflammation", 0.80},
		{"allergic reaction", 0.70},
		{"infection", 0.65},
		{"injury", 0.60},
	}},
	{"swelling", []ConditionScore{
		{"edema", 0.90},
		{"inflammation", 0.85},
		{"allergic reaction", 0.75},
		{"infection", 0.70},
		{"injury", 0.65},
	}},
	{"bleeding", []ConditionScore{
		{"hemorrhage", 0.85},
		{"injury", 0.80},
		{"ulcer", 0.70},
		{"hemorrhoids", 0.65},
		{"menstrual disorder", 0.60},
	}},
	{"itchy", []ConditionScore{
		{"allergic reaction", 0.80},
		{"eczema", 0.75},
		{"contact dermatitis", 0.70},
		{"psoriasis", 0.60},
		{"dry skin", 0.55},
	}},
	{"itching", []ConditionScore{
		{"allergic reaction", 0.85},
		{"eczema", 0.80},
		{"contact dermatitis", 0.75},
		{"psoriasis", 0.65},
		{"dry skin", 0.60},
	}},
	{"shortness of breath", []ConditionScore{
		{"asthma", 0.85},
		{"heart failure", 0.80},
		{"pneumonia", 0.75},
		{"anxiety", 0.70},
		{"copd", 0.65},
	}},
	{"breathing difficulty", []ConditionScore{
		{"asthma", 0.90},
		{"heart failure", 0.85},
		{"pneumonia", 0.80},
		{"anxiety", 0.75},
		{"copd", 0.70},
	}},
	{"joint pain", []ConditionScore{
		{"arthritis", 0.85},
		{"rheumatoid arthritis", 0.80},
		{"osteoarthritis", 0.75},
		{"gout", 0.70},
		{"fibromyalgia", 0.60},
	}},
	{"muscle pain", []ConditionScore{
		{"muscle strain", 0.85},
		{"fibromyalgia", 0.80},
		{"tendonitis", 0.70},
		{"overuse injury", 0.65},
		{"viral infection", 0.60},
	}},
	{"weakness", []ConditionScore{
		{"anemia", 0.80},
		{"stroke", 0.75},
		{"multiple sclerosis", 0.70},
		{"thyroid disorder", 0.65},
		{"dehydration", 0.60},
	}},
	{"confusion", []ConditionScore{
		{"stroke", 0.85},
		{"dementia", 0.80},
		{"dehydration", 0.70},
		{"low blood sugar", 0.65},
		{"concussion", 0.60},
	}},
	{"seizure", []ConditionScore{
		{"epilepsy", 0.95},
		{"febrile seizure", 0.80},
		{"brain injury", 0.70},
		{"stroke", 0.65},
		{"metabolic disorder", 0.60},
	}},
	{"fainting", []ConditionScore{
		{"syncope", 0.90},
		{"low blood pressure", 0.80},
		{"dehydration", 0.70},
		{"heart condition", 0.65},
		{"anxiety", 0.60},
	}},
	{"faint", []ConditionScore{
		{"syncope", 0.85},
		{"low blood pressure", 0.75},
		{"dehydration", 0.70},
		{"heart condition", 0.65},
		{"anxiety", 0.60},
	}},
}

type synonymGroup struct {
	term     string
	synonyms []string
}

var synonymGroups = []synonymGroup{
	{"headache", []string{"head pain", "head ache", "cranial pain", "cephalgia"}},
	{"fever", []string{"temperature", "high temp", "hot", "burning up", "febrile"}},
	{"cough", []string{"coughing", "hacking", "persistent cough"}},
	{"chest pain", []string{"chest pressure", "chest tightness", "chest discomfort"}},
	{"nausea", []string{"nauseous", "queasy", "sick feeling", "upset stomach"}},
	{"vomiting", []string{"vomit", "throwing up", "puking", "emesis"}},
	{"diarrhea", []string{"loose stools", "watery stools", "frequent bowel movements"}},
	{"tired", []string{"fatigue", "exhausted", "weary", "lethargic"}},
	{"dizzy", []string{"dizziness", "lightheaded", "vertigo", "unsteady"}},
	{"sore throat", []string{"throat pain", "pharyngitis", "throat irritation"}},
	{"back pain", []string{"backache", "spinal pain", "lumbar pain"}},
	{"stomach ache", []string{"abdominal pain", "belly pain", "tummy ache", "stomach pain"}},
	{"rash", []string{"skin rash", "redness", "skin irritation", "dermatitis"}},
	{"swollen", []string{"swelling", "puffiness", "inflammation", "edema"}},
	{"bleeding", []string{"blood", "hemorrhage", "blood loss"}},
	{"itchy", []string{"itching", "pruritus", "skin irritation"}},
	{"shortness of breath", []string{"breathing difficulty", "dyspnea", "can't breathe"}},
	{"joint pain", []string{"arthralgia", "joint stiffness", "joint inflammation"}},
	{"muscle pain", []string{"myalgia", "muscle ache", "muscle soreness"}},
	{"weakness", []string{"muscle weakness", "generalized weakness", "fatigue"}},
	{"confusion", []string{"disorientation", "mental fog", "brain fog"}},
	{"seizure", []string{"convulsions", "uncontrollable shaking", "fits"}},
	{"fainting", []string{"faint", "passing out", "syncope", "blackout"}},
}

type emergencyKeyword struct {
	keyword   string
	condition string
}

var emergencyKeywords = []emergencyKeyword{
	{"chest pain", "heart attack"},
	{"shortness of breath", "respiratory emergency"},
	{"severe headache", "stroke"},
	{"confusion", "stroke"},
	{"seizure", "epilepsy"},
	{"fainting", "syncope"},
	{"severe bleeding", "hemorrhage"},
	{"unconscious", "emergency"},
}

var emergencySeverityConditions = map[string]bool{
	"heart attack":          true,
	"stroke":                true,
	"anaphylaxis":           true,
	"septic shock":          true,
	"cardiac arrest":        true,
	"respiratory emergency": true,
	"severe bleeding":       true,
	"hemorrhage":            true,
	"syncope":               true,
}

var urgentSeverityConditions = map[string]bool{
	"pneumonia":             true,
	"appendicitis":          true,
	"gallstones":            true,
	"kidney stones":         true,
	"meningitis":            true,
	"sepsis":                true,
	"diabetic ketoacidosis": true,
	"hypoglycemia":          true,
	"epilepsy":              true,
}

type categoryEntry struct {
	category   string
	conditions []string
}

var conditionCategories = []categoryEntry{
	{"cardiovascular", []string{"heart attack", "stroke", "angina", "heart failure", "syncope"}},
	{"respiratory", []string{"pneumonia", "asthma", "copd", "bronchitis", "respiratory infection"}},
	{"neurological", []string{"migraine", "tension headache", "epilepsy", "vertigo", "dementia"}},
	{"gastrointestinal", []string{"gastroenteritis", "food poisoning", "appendicitis", "gallstones", "irritable bowel syndrome"}},
	{"dermatological", []string{"allergic reaction", "eczema", "psoriasis", "contact dermatitis"}},
	{"musculoskeletal", []string{"arthritis", "muscle strain", "fibromyalgia", "tendonitis"}},
	{"endocrine", []string{"diabetes", "thyroid disorder", "diabetic ketoacidosis", "hypoglycemia"}},
	{"mental_health", []string{"depression", "anxiety", "chronic fatigue syndrome"}},
	{"infectious", []string{"influenza", "covid-19", "viral infection", "bacterial infection", "strep throat"}},
}

// Contextual adjustment allow-lists. Each multiplier only applies to the
// conditions in its list.
var (
	pediatricBoostConditions  = []string{"febrile seizure", "croup", "hand foot mouth disease", "chickenpox"}
	adultDampedConditions     = []string{"dementia", "alzheimer's", "prostate cancer", "menopause"}
	geriatricBoostConditions  = []string{"dementia", "alzheimer's", "stroke", "pneumonia", "fall risk"}
	pediatricDampedConditions = []string{"croup", "hand foot mouth disease", "chickenpox", "measles"}

	acuteBoostConditions   = []string{"heart attack", "stroke", "appendicitis", "gallstones", "anaphylaxis"}
	chronicDampedAcute     = []string{"fibromyalgia", "irritable bowel syndrome", "chronic fatigue syndrome"}
	chronicBoostConditions = []string{"fibromyalgia", "irritable bowel syndrome", "chronic fatigue syndrome", "arthritis"}
	acuteDampedChronic     = []string{"appendicitis", "gallstones", "food poisoning"}

	diabetesHistoryTerms      = []string{"diabetes", "diabetic"}
	diabetesBoostConditions   = []string{"diabetes", "diabetic ketoacidosis", "hypoglycemia", "diabetic neuropathy"}
	cardiacHistoryTerms       = []string{"heart", "cardiac", "hypertension", "high blood pressure"}
	cardiacBoostConditions    = []string{"heart attack", "stroke", "heart failure", "angina"}
	respiratoryHistoryTerms   = []string{"asthma", "copd", "lung"}
	respiratoryBoostCondition = []string{"asthma", "copd", "pneumonia", "bronchitis"}

	emergencyBoostConditions = []string{"heart attack", "stroke", "anaphylaxis"}
	emergencyBoostMarkers    = []string{"severe", "intense", "emergency"}
)

// SuggestionView exposes the keyword table, synonym expansion, emergency
// keywords and contextual score adjustments used by condition suggestion.
type SuggestionView struct {
	keywordIndex map[string][]ConditionScore
	labels       []string
}

func NewSuggestionView() *SuggestionView {
	v := &SuggestionView{keywordIndex: make(map[string][]ConditionScore, len(keywordConditions))}
	seen := make(map[string]bool)
	for _, entry := range keywordConditions {
		v.keywordIndex[entry.keyword] = entry.conditions
		for _, cs := range entry.conditions {
			if !seen[cs.Condition] {
				seen[cs.Condition] = true
				v.labels = append(v.labels, cs.Condition)
			}
		}
	}
	return v
}

// KeywordConditions returns the base condition scores for an exact keyword
// match of the whole normalized input, or false when the input is not in
// the table.
func (v *SuggestionView) KeywordConditions(normalized string) ([]ConditionScore, bool) {
	cs, ok := v.keywordIndex[normalized]
	return cs, ok
}

// EmergencyMatches returns the emergency conditions whose trigger keyword
// appears anywhere in the normalized input, in table order.
func (v *SuggestionView) EmergencyMatches(normalized string) []string {
	var out []string
	for _, ek := range emergencyKeywords {
		if strings.Contains(normalized, ek.keyword) {
			out = append(out, ek.condition)
		}
	}
	return out
}

// CandidateLabels returns every condition in the keyword table, deduplicated
// in declaration order, for use as classifier candidate labels.
func (v *SuggestionView) CandidateLabels() []string {
	return v.labels
}

// ExpandSynonyms appends known synonyms for any term found in the text and
// the canonical term for any synonym found, widening classifier matching.
func (v *SuggestionView) ExpandSynonyms(normalized string) string {
	expanded := normalized
	for _, group := range synonymGroups {
		if strings.Contains(normalized, group.term) {
			expanded += " " + strings.Join(group.synonyms, " ")
			continue
		}
		for _, syn := range group.synonyms {
			if strings.Contains(normalized, syn) {
				expanded += " " + group.term
				break
			}
		}
	}
	return expanded
}

// ConditionSeverity classifies a condition as emergency, urgent or routine.
func (v *SuggestionView) ConditionSeverity(condition string) string {
	switch {
	case emergencySeverityConditions[condition]:
		return "emergency"
	case urgentSeverityConditions[condition]:
		return "urgent"
	default:
		return "routine"
	}
}

// ConditionCategory returns the clinical category for a condition, or
// "general" when it belongs to none.
func (v *SuggestionView) ConditionCategory(condition string) string {
	for _, entry := range conditionCategories {
		for _, c := range entry.conditions {
			if c == condition {
				return entry.category
			}
		}
	}
	return "general"
}

// AdjustForAge scales a condition score by the age bracket allow-lists.
// Scores are clamped to 1.0 by the caller.
func (v *SuggestionView) AdjustForAge(condition string, score float64, age int) float64 {
	if age < 18 {
		if containsString(pediatricBoostConditions, condition) {
			return min1(score * 1.3)
		}
		if containsString(adultDampedConditions, condition) {
			return score * 0.5
		}
	} else if age >= 65 {
		if containsString(geriatricBoostConditions, condition) {
			return min1(score * 1.2)
		}
		if containsString(pediatricDampedConditions, condition) {
			return score * 0.3
		}
	}
	return score
}

// AdjustForDuration scales a condition score by acute/chronic allow-lists.
func (v *SuggestionView) AdjustForDuration(condition string, score float64, durationHours float64) float64 {
	if durationHours <= 6 {
		if containsString(acuteBoostConditions, condition) {
			return min1(score * 1.2)
		}
		if containsString(chronicDampedAcute, condition) {
			return score * 0.7
		}
	} else if durationHours > 168 {
		if containsString(chronicBoostConditions, condition) {
			return min1(score * 1.2)
		}
		if containsString(acuteDampedChronic, condition) {
			return score * 0.6
		}
	}
	return score
}

// AdjustForHistory scales a condition score when the reported medical
// history mentions a related risk group.
func (v *SuggestionView) AdjustForHistory(condition string, score float64, medicalHistory string) float64 {
	history := strings.ToLower(medicalHistory)
	if containsAnyTerm(history, diabetesHistoryTerms) && containsString(diabetesBoostConditions, condition) {
		score = min1(score * 1.3)
	}
	if containsAnyTerm(history, cardiacHistoryTerms) && containsString(cardiacBoostConditions, condition) {
		score = min1(score * 1.2)
	}
	if containsAnyTerm(history, respiratoryHistoryTerms) && containsString(respiratoryBoostCondition, condition) {
		score = min1(score * 1.2)
	}
	return score
}

// EmergencyBoost scales the score for life-threatening conditions when the
// input carries a severity marker.
func (v *SuggestionView) EmergencyBoost(condition string, score float64, normalized string) float64 {
	if containsString(emergencyBoostConditions, condition) && containsAnyTerm(normalized, emergencyBoostMarkers) {
		return min1(score * 1.3)
	}
	return score
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func min1(f float64) float64 {
	if f > 1.0 {
		return 1.0
	}
	return f
}
