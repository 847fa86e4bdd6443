package services

import (
	"fmt"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

var emergencyActions = []string{
	"🚨 Call your local emergency number immediately (911, 999, 112, etc.)",
	"🚨 Do not drive yourself - use emergency services",
	"🚨 If unconscious, call emergency services and begin CPR if trained",
	"🚨 Stay with the person until help arrives",
	"🚨 Do not delay - every minute counts in emergencies",
}

var urgent12hActions = []string{
	"🏥 Seek urgent care or contact your healthcare provider within 12 hours",
	"🏥 Consider visiting urgent care center or emergency department",
	"📞 Call your doctor's office for same-day appointment",
	"⚠️ If symptoms worsen or new red flags develop, call emergency services",
	"📝 Keep track of symptoms and any changes",
	"🔄 Monitor closely and seek immediate care if condition deteriorates",
}

var urgent24hActions = []string{
	"🏥 Seek urgent care or contact your healthcare provider within 24 hours",
	"🏥 Consider visiting urgent care center if symptoms worsen",
	"📞 Call your doctor's office for appointment within 1-2 days",
	"⚠️ If symptoms worsen or new red flags develop, seek immediate care",
	"📝 Keep track of symptoms and any changes",
}

var routinePersistentActions = []string{
	"📅 Schedule a routine appointment with your primary care provider",
	"📝 Keep a detailed symptom diary and bring it to your visit",
	"📊 Note symptom patterns, triggers, and any treatments tried",
	"🔄 Monitor symptoms and seek care if they worsen",
	"💊 Consider over-the-counter treatments as appropriate",
}

var routineModerateActions = []string{
	"📅 Schedule appointment with your healthcare provider within 1-2 weeks",
	"📝 Document symptoms, triggers, and treatments tried",
	"🔄 Continue monitoring and seek care if symptoms worsen",
	"💊 Consider over-the-counter treatments as appropriate",
}

var selfCareActions = []string{
	"🏠 Consider rest, fluids, and over-the-counter symptom relief as appropriate",
	"📊 Monitor symptoms closely for any changes or worsening",
	"📝 Keep track of symptom progression and triggers",
	"🔄 If symptoms worsen, persist beyond 3 days, or new symptoms develop, seek medical advice",
	"📞 Contact healthcare provider if you have concerns",
	"💊 Use appropriate over-the-counter medications as directed",
	"🥤 Stay hydrated and get adequate rest",
}

// TriageService maps a symptom report to a care-urgency level with reasons
// and next-step actions. It is deterministic and independent of the
// learning state.
type TriageService struct {
	view *taxonomy.TriageView
}

func NewTriageService(view *taxonomy.TriageView) *TriageService {
	return &TriageService{view: view}
}

// Evaluate computes the triage level. A red-flag pattern match returns
// Emergency immediately; otherwise urgent-concern matches are counted,
// scaled by a context multiplier built from age, duration, history, pain
// and severity, and thresholded into Urgent, Routine or Self-care.
func (s *TriageService) Evaluate(report *entities.SymptomReport) *entities.TriageResult {
	text := strings.TrimSpace(report.Text)
	textLower := strings.ToLower(text)
	var reasons []string
	urgencyMultiplier := 1.0

	// Age brackets: first match wins, sets the starting multiplier.
	if report.Age != nil {
		age := *report.Age
		switch {
		case age < 1:
			urgencyMultiplier = 2.5
			reasons = append(reasons, "Infant under 1 year - very high risk")
		case age < 3:
			urgencyMultiplier = 2.0
			reasons = append(reasons, "Child under 3 years - high risk")
		case age < 12:
			urgencyMultiplier = 1.3
			reasons = append(reasons, "Child under 12 years - higher risk")
		case age >= 80:
			urgencyMultiplier = 1.8
			reasons = append(reasons, "Age 80+ - very high risk")
		case age >= 65:
			urgencyMultiplier = 1.4
			reasons = append(reasons, "Age 65+ - higher risk")
		case age >= 50:
			urgencyMultiplier = 1.1
			reasons = append(reasons, "Age 50+ - slightly higher risk")
		}
	}

	if report.DurationHours != nil {
		d := *report.DurationHours
		switch {
		case d < 0.5:
			urgencyMultiplier *= 1.4
			reasons = append(reasons, "Very recent onset (< 30 minutes)")
		case d < 1:
			urgencyMultiplier *= 1.3
			reasons = append(reasons, "Recent onset (< 1 hour)")
		case d < 6:
			urgencyMultiplier *= 1.2
			reasons = append(reasons, "Acute onset (< 6 hours)")
		case d > 168:
			reasons = append(reasons, "Symptoms persist > 7 days")
		case d > 72:
			reasons = append(reasons, "Symptoms persist > 3 days")
		case d > 24:
			reasons = append(reasons, "Symptoms persist > 24 hours")
		}
	}

	if report.MedicalHistory != "" {
		historyLower := strings.ToLower(report.MedicalHistory)
		for _, risk := range s.view.HistoryRisks(historyLower) {
			urgencyMultiplier *= risk.Multiplier
			reasons = append(reasons, risk.Reason)
		}
	}

	if report.PainScale != nil {
		pain := *report.PainScale
		switch {
		case pain >= 9:
			urgencyMultiplier *= 1.8
			reasons = append(reasons, fmt.Sprintf("Severe pain level (%d/10) - immediate attention needed", pain))
		case pain >= 8:
			urgencyMultiplier *= 1.6
			reasons = append(reasons, fmt.Sprintf("Very high pain level (%d/10)", pain))
		case pain >= 7:
			urgencyMultiplier *= 1.4
			reasons = append(reasons, fmt.Sprintf("High pain level (%d/10)", pain))
		case pain >= 5:
			urgencyMultiplier *= 1.2
			reasons = append(reasons, fmt.Sprintf("Moderate pain level (%d/10)", pain))
		case pain > 0:
			reasons = append(reasons, fmt.Sprintf("Mild pain level (%d/10)", pain))
		}
	}

	if report.Severity != "" {
		switch strings.ToLower(report.Severity) {
		case "severe":
			urgencyMultiplier *= 1.6
			reasons = append(reasons, "Severe symptom severity")
		case "moderate":
			urgencyMultiplier *= 1.2
			reasons = append(reasons, "Moderate symptom severity")
		default:
			reasons = append(reasons, "Mild symptom severity")
		}
	}

	// Red flags short-circuit everything else.
	if n := s.view.EmergencyMatchCount(text); n > 0 {
		emergencyReasons := make([]string, n)
		for i := range emergencyReasons {
			emergencyReasons[i] = "Emergency red flag detected"
		}
		return &entities.TriageResult{
			Level:   entities.LevelEmergency,
			Reasons: append(emergencyReasons, reasons...),
			Actions: emergencyActions,
		}
	}

	urgentCount := s.view.UrgentMatchCount(text)
	urgentReasons := make([]string, 0, urgentCount)
	for i := 0; i < urgentCount; i++ {
		urgentReasons = append(urgentReasons, "Urgent concern detected")
	}

	if report.Age != nil {
		age := *report.Age
		if age >= 65 && s.view.HasElderlyRiskTerms(textLower) {
			urgentReasons = append(urgentReasons, "Age 65+ with fever/confusion - high risk")
			urgentCount += 2
		}
		if age < 3 && s.view.HasChildFeverTerms(textLower) {
			urgentReasons = append(urgentReasons, "Child under 3 with fever - high risk")
			urgentCount += 2
		}
		if age < 1 && s.view.HasInfantFeverTerms(textLower) {
			urgentReasons = append(urgentReasons, "Infant with fever - immediate attention needed")
			urgentCount += 3
		}
		if age < 6 && s.view.HasChildCroupTerms(textLower) {
			urgentReasons = append(urgentReasons, "Young child with respiratory distress - urgent")
			urgentCount += 2
		}
	}

	if report.DurationHours != nil {
		d := *report.DurationHours
		if d > 24 && s.view.HasPersisting24hTerms(textLower) {
			urgentReasons = append(urgentReasons, "Symptoms persisting > 24 hours")
			urgentCount++
		}
		if d > 48 && s.view.HasPersisting48hTerms(textLower) {
			urgentReasons = append(urgentReasons, "Symptoms persisting > 48 hours")
			urgentCount++
		}
	}

	if report.PainScale != nil && *report.PainScale >= 7 {
		urgentReasons = append(urgentReasons, fmt.Sprintf("High pain level (%d/10) - urgent evaluation needed", *report.PainScale))
		urgentCount++
	}

	if strings.EqualFold(report.Severity, "severe") {
		urgentReasons = append(urgentReasons, "Severe symptom severity - urgent evaluation needed")
		urgentCount++
	}

	// Urgent concerns scaled below 2.0 fall through to the routine and
	// self-care branches and their reasons are dropped.
	if urgentCount > 0 {
		adjusted := float64(urgentCount) * urgencyMultiplier
		if adjusted >= 3.0 {
			return &entities.TriageResult{
				Level:   entities.LevelUrgent,
				Reasons: append(urgentReasons, reasons...),
				Actions: urgent12hActions,
			}
		}
		if adjusted >= 2.0 {
			return &entities.TriageResult{
				Level:   entities.LevelUrgent,
				Reasons: append(urgentReasons, reasons...),
				Actions: urgent24hActions,
			}
		}
	}

	if report.DurationHours != nil && *report.DurationHours > 168 {
		return &entities.TriageResult{
			Level:   entities.LevelRoutine,
			Reasons: append([]string{"Symptoms persist > 7 days"}, reasons...),
			Actions: routinePersistentActions,
		}
	}

	if s.view.HasModerateSymptomTerms(textLower) && report.DurationHours != nil && *report.DurationHours > 72 {
		return &entities.TriageResult{
			Level:   entities.LevelRoutine,
			Reasons: append([]string{"Moderate persistent symptoms"}, reasons...),
			Actions: routineModerateActions,
		}
	}

	return &entities.TriageResult{
		Level:   entities.LevelSelfCare,
		Reasons: append([]string{"No urgent red flags detected"}, reasons...),
		Actions: selfCareActions,
	}
}
