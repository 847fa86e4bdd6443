package taxonomy

import "regexp"

// Red-flag patterns grouped by clinical domain. A single hit anywhere in
// the text short-circuits triage to Emergency.
var emergencyPatterns = []*regexp.Regexp{
	// Cardiovascular
	regexp.MustCompile(`(?i)\b(chest pain|pressure|tightness|squeezing|crushing)\b`),
	regexp.MustCompile(`(?i)\b(short(ness)? of breath|difficulty breathing|can't breathe|struggling to breathe)\b`),
	regexp.MustCompile(`(?i)\b(sudden weakness|facial droop|slurred speech|one-sided weakness|arm weakness)\b`),
	regexp.MustCompile(`(?i)\b(irregular heartbeat|racing heart|palpitations|heart skipping)\b`),

	// Neurological
	regexp.MustCompile(`(?i)\b(violent|worst|thunderclap|sudden severe) headache\b`),
	regexp.MustCompile(`(?i)\b(confusion|loss of consciousness|faint(ed|ing)|unresponsive)\b`),
	regexp.MustCompile(`(?i)\b(seizure|convulsions|uncontrollable shaking|epileptic)\b`),
	regexp.MustCompile(`(?i)\b(sudden vision loss|double vision|blind spot)\b`),

	// Respiratory
	regexp.MustCompile(`(?i)\b(anaphylaxis|throat swelling|can't breathe|airway obstruction)\b`),
	regexp.MustCompile(`(?i)\b(severe asthma attack|wheezing severely|blue lips|cyanosis)\b`),

	// Trauma and bleeding
	regexp.MustCompile(`(?i)\b(severe bleeding|uncontrolled bleeding|profuse bleeding|arterial bleeding)\b`),
	regexp.MustCompile(`(?i)\b(head injury|concussion|loss of consciousness|memory loss)\b`),
	regexp.MustCompile(`(?i)\b(severe burn|third degree|chemical burn)\b`),

	// Abdominal
	regexp.MustCompile(`(?i)\b(severe abdominal pain|peritonitis|rigid abdomen)\b`),
	regexp.MustCompile(`(?i)\b(vomiting blood|hematemesis|black stools|melena)\b`),

	// Metabolic
	regexp.MustCompile(`(?i)\b(diabetic ketoacidosis|DKA|high blood sugar|ketones)\b`),
	regexp.MustCompile(`(?i)\b(severe hypoglycemia|low blood sugar|diabetic coma)\b`),
	regexp.MustCompile(`(?i)\b(heat stroke|hyperthermia|no sweating|hot and dry)\b`),
	regexp.MustCompile(`(?i)\b(hypothermia|severe cold|shivering uncontrollably)\b`),

	// Poisoning and overdose
	regexp.MustCompile(`(?i)\b(drug overdose|alcohol poisoning|suicide attempt|poisoning)\b`),
	regexp.MustCompile(`(?i)\b(carbon monoxide|CO poisoning|headache nausea confusion)\b`),

	// Pediatric
	regexp.MustCompile(`(?i)\b(high fever|febrile seizure|temperature over 104)\b`),
	regexp.MustCompile(`(?i)\b(severe dehydration|no urination|sunken eyes|dry mouth)\b`),
	regexp.MustCompile(`(?i)\b(croup|barking cough|stridor|difficulty breathing)\b`),
}

// Urgent-concern patterns. Each hit increments the urgent count; the count
// scaled by the context multiplier picks the urgency tier.
var urgentPatterns = []*regexp.Regexp{
	// Fever and infection
	regexp.MustCompile(`(?i)\b(fever|temperature|high temp|chills)\b`),
	regexp.MustCompile(`(?i)\b(persistent fever|fever for days|fever not responding)\b`),
	regexp.MustCompile(`(?i)\b(severe infection|worsening infection|spreading infection)\b`),

	// Pain
	regexp.MustCompile(`(?i)\b(severe pain|intense pain|unbearable pain|pain scale 8|pain scale 9|pain scale 10)\b`),
	regexp.MustCompile(`(?i)\b(persistent pain|pain not improving|pain getting worse)\b`),
	regexp.MustCompile(`(?i)\b(abdominal pain|stomach pain|belly pain)\b`),
	regexp.MustCompile(`(?i)\b(chest pain|chest discomfort|chest pressure)\b`),

	// Gastrointestinal
	regexp.MustCompile(`(?i)\b(persistent vomiting|unable to keep fluids down|vomiting blood)\b`),
	regexp.MustCompile(`(?i)\b(severe diarrhea|bloody diarrhea|dehydration)\b`),
	regexp.MustCompile(`(?i)\b(severe nausea|constant nausea|can't eat)\b`),

	// Respiratory
	regexp.MustCompile(`(?i)\b(coughing blood|hemoptysis|blood in sputum)\b`),
	regexp.MustCompile(`(?i)\b(worsening cough|cough not improving|persistent cough)\b`),
	regexp.MustCompile(`(?i)\b(shortness of breath|breathing difficulty|can't catch breath)\b`),

	// Neurological
	regexp.MustCompile(`(?i)\b(severe headache|migraine|headache not responding)\b`),
	regexp.MustCompile(`(?i)\b(confusion|disorientation|memory problems)\b`),
	regexp.MustCompile(`(?i)\b(seizure|convulsions|uncontrollable shaking)\b`),

	// Cardiovascular
	regexp.MustCompile(`(?i)\b(chest pain|chest pressure|chest tightness)\b`),
	regexp.MustCompile(`(?i)\b(irregular heartbeat|palpitations|racing heart)\b`),
	regexp.MustCompile(`(?i)\b(dizziness|lightheadedness|feeling faint)\b`),

	// Genitourinary
	regexp.MustCompile(`(?i)\b(painful urination|burning urination|blood in urine)\b`),
	regexp.MustCompile(`(?i)\b(severe back pain|flank pain|kidney pain)\b`),
	regexp.MustCompile(`(?i)\b(inability to urinate|urinary retention|no urination)\b`),

	// Dermatological
	regexp.MustCompile(`(?i)\b(severe rash|spreading rash|rash with fever)\b`),
	regexp.MustCompile(`(?i)\b(allergic reaction|swelling|hives)\b`),
	regexp.MustCompile(`(?i)\b(severe itching|uncontrollable itching)\b`),

	// Musculoskeletal
	regexp.MustCompile(`(?i)\b(severe back pain|back pain with numbness|back pain with weakness)\b`),
	regexp.MustCompile(`(?i)\b(joint swelling|severe joint pain|joint deformity)\b`),
	regexp.MustCompile(`(?i)\b(inability to move|paralysis|numbness)\b`),

	// Pediatric
	regexp.MustCompile(`(?i)\b(fever in infant|fever under 3 months|high fever child)\b`),
	regexp.MustCompile(`(?i)\b(severe dehydration|no wet diapers|sunken fontanelle)\b`),
	regexp.MustCompile(`(?i)\b(severe croup|barking cough|stridor)\b`),

	// Geriatric
	regexp.MustCompile(`(?i)\b(fever in elderly|confusion in elderly|fall in elderly)\b`),
	regexp.MustCompile(`(?i)\b(severe weakness|inability to walk|bedridden)\b`),

	// Mental health
	regexp.MustCompile(`(?i)\b(suicidal thoughts|self harm|suicide attempt)\b`),
	regexp.MustCompile(`(?i)\b(severe depression|hopelessness|can't function)\b`),
	regexp.MustCompile(`(?i)\b(severe anxiety|panic attack|can't calm down)\b`),
}

// HistoryRisk is a matched medical-history risk group with its urgency
// multiplier and the reason shown to the user.
type HistoryRisk struct {
	Multiplier float64
	Reason     string
}

type historyRiskGroup struct {
	terms      []string
	multiplier float64
	reason     string
}

var historyRiskGroups = []historyRiskGroup{
	{[]string{"diabetes", "diabetic", "heart disease", "hypertension", "high blood pressure", "coronary artery disease"}, 1.3, "Cardiovascular risk factors"},
	{[]string{"immunocompromised", "cancer", "chemotherapy", "transplant", "hiv", "aids"}, 1.6, "Immunocompromised status - high risk"},
	{[]string{"pregnancy", "pregnant", "gestational"}, 1.4, "Pregnancy - higher risk"},
	{[]string{"stroke", "cerebrovascular", "neurological", "seizure", "epilepsy"}, 1.3, "Neurological history"},
	{[]string{"asthma", "copd", "lung disease", "respiratory"}, 1.2, "Respiratory history"},
	{[]string{"kidney disease", "renal", "dialysis", "liver disease", "hepatic"}, 1.3, "Organ dysfunction"},
}

// Age-conditional urgent keyword scans.
var (
	elderlyRiskTerms    = []string{"fever", "temperature", "chills", "confusion"}
	childFeverTerms     = []string{"fever", "temperature", "chills"}
	infantFeverTerms    = []string{"fever", "temperature"}
	childCroupTerms     = []string{"croup", "barking cough", "stridor"}
	persisting24hTerms  = []string{"fever", "pain", "nausea", "vomiting", "diarrhea"}
	persisting48hTerms  = []string{"fever", "pain", "nausea", "vomiting"}
	moderateSymptomTerm = []string{"persistent", "ongoing", "recurring", "chronic", "daily", "frequent", "intermittent"}
)

// TriageView owns pattern matching for the triage decision: emergency
// short-circuit, urgent counting, history risk groups and the conditional
// keyword scans.
type TriageView struct{}

func NewTriageView() *TriageView { return &TriageView{} }

// EmergencyMatchCount counts the red-flag patterns matching the raw text.
func (v *TriageView) EmergencyMatchCount(text string) int {
	n := 0
	for _, p := range emergencyPatterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

// UrgentMatchCount counts the urgent-concern patterns matching the raw text.
func (v *TriageView) UrgentMatchCount(text string) int {
	n := 0
	for _, p := range urgentPatterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

// HistoryRisks returns every matched history risk group in table order.
// Multipliers compound; a history can match more than one group.
func (v *TriageView) HistoryRisks(historyLower string) []HistoryRisk {
	var out []HistoryRisk
	for _, g := range historyRiskGroups {
		if containsAnyTerm(historyLower, g.terms) {
			out = append(out, HistoryRisk{Multiplier: g.multiplier, Reason: g.reason})
		}
	}
	return out
}

func (v *TriageView) HasElderlyRiskTerms(normalized string) bool {
	return containsAnyTerm(normalized, elderlyRiskTerms)
}

func (v *TriageView) HasChildFeverTerms(normalized string) bool {
	return containsAnyTerm(normalized, childFeverTerms)
}

func (v *TriageView) HasInfantFeverTerms(normalized string) bool {
	return containsAnyTerm(normalized, infantFeverTerms)
}

func (v *TriageView) HasChildCroupTerms(normalized string) bool {
	return containsAnyTerm(normalized, childCroupTerms)
}

func (v *TriageView) HasPersisting24hTerms(normalized string) bool {
	return containsAnyTerm(normalized, persisting24hTerms)
}

func (v *TriageView) HasPersisting48hTerms(normalized string) bool {
	return containsAnyTerm(normalized, persisting48hTerms)
}

func (v *TriageView) HasModerateSymptomTerms(normalized string) bool {
	return containsAnyTerm(normalized, moderateSymptomTerm)
}
