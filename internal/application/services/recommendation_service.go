package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

var conditionRecommendations = map[string]*entities.ConditionRecommendations{
	"heart attack": {
		ImmediateActions: []string{
			"🚨 Call emergency services immediately (911/999/112)",
			"🚨 Do not drive yourself - use emergency services",
			"🚨 Chew aspirin if available and not allergic",
			"🚨 Stay calm and rest while waiting for help",
		},
		WarningSigns: []string{
			"Chest pain or pressure lasting more than a few minutes",
			"Pain spreading to arm, neck, jaw, or back",
			"Shortness of breath with or without chest pain",
			"Nausea, vomiting, or cold sweats",
		},
	},
	"stroke": {
		ImmediateActions: []string{
			"🚨 Call emergency services immediately",
			"🚨 Note the time symptoms started (critical for treatment)",
			"🚨 Do not give food or drink",
			"🚨 Keep person calm and comfortable",
		},
		WarningSigns: []string{
			"Facial drooping (one side of face droops)",
			"Arm weakness (one arm drifts down)",
			"Speech difficulty (slurred or strange speech)",
			"Time to call emergency services",
		},
	},
	"migraine": {
		ImmediateActions: []string{
			"🌙 Rest in a dark, quiet room",
			"💊 Take migraine medication as prescribed",
			"🧊 Apply cold compress to head or neck",
			"💧 Stay hydrated",
		},
		Prevention: []string{
			"Identify and avoid triggers",
			"Maintain regular sleep schedule",
			"Eat regular meals, stay hydrated",
		},
	},
	"pneumonia": {
		ImmediateActions: []string{
			"🏥 Seek medical attention within 24 hours",
			"💊 Take prescribed antibiotics as directed",
			"💧 Stay hydrated and get plenty of rest",
			"🌡️ Monitor fever and breathing",
		},
		WarningSigns: []string{
			"High fever (101°F/38.3°C or higher)",
			"Cough with yellow, green, or bloody mucus",
			"Shortness of breath or rapid breathing",
		},
	},
}

var genericRecommendations = &entities.ConditionRecommendations{
	ImmediateActions: []string{"Consult with a healthcare provider"},
	WarningSigns:     []string{"Monitor symptoms closely"},
	Prevention:       []string{"Follow medical advice"},
}

var conditionExplanations = map[string]string{
	"heart attack":            "A heart attack occurs when blood flow to the heart muscle is blocked, usually by a blood clot. Symptoms often include chest pain, shortness of breath, and sweating. This is a medical emergency requiring immediate attention.",
	"stroke":                  "A stroke occurs when blood flow to the brain is interrupted, causing brain cells to die. Symptoms may include sudden weakness, confusion, or difficulty speaking. This is a medical emergency requiring immediate attention.",
	"pneumonia":               "Pneumonia is an infection that inflames the air sacs in one or both lungs. Symptoms typically include fever, cough, and difficulty breathing. Treatment often involves antibiotics and rest.",
	"asthma":                  "Asthma is a chronic condition that causes inflammation and narrowing of the airways. Symptoms include wheezing, shortness of breath, and chest tightness. Triggers vary by individual.",
	"migraine":                "A migraine is a severe headache that can cause throbbing pain, nausea, and sensitivity to light and sound. It often affects one side of the head and can last for hours or days.",
	"gastroenteritis":         "Gastroenteritis is inflammation of the stomach and intestines, often caused by viruses or bacteria. Symptoms include nausea, vomiting, diarrhea, and abdominal pain.",
	"urinary tract infection": "A UTI is an infection in any part of the urinary system. Symptoms include painful urination, frequent urination, and lower abdominal pain. Treatment typically involves antibiotics.",
	"anxiety":                 "Anxiety is a feeling of worry, nervousness, or unease. It can cause physical symptoms like rapid heartbeat, sweating, and difficulty concentrating. Treatment may include therapy and medication.",
	"depression":              "Depression is a mood disorder that causes persistent feelings of sadness and loss of interest. Symptoms can include fatigue, changes in sleep and appetite, and difficulty concentrating.",
	"allergic reaction":       "An allergic reaction occurs when the immune system overreacts to a substance. Symptoms can range from mild (rash, itching) to severe (anaphylaxis). Severe reactions require immediate medical attention.",
}

// resourceFile mirrors the on-disk layout of the resource links file.
type resourceFile struct {
	General    []entities.ResourceLink            `json:"general"`
	Conditions map[string][]entities.ResourceLink `json:"conditions"`
}

// RecommendationService serves per-condition action lists, explanations and
// curated resource links. All data is static; the resource links come from
// a JSON file loaded at startup.
type RecommendationService struct {
	resources resourceFile
}

// NewRecommendationService loads the resource links file. A missing file is
// not an error; resource lookups then return empty lists.
func NewRecommendationService(resourcePath string) (*RecommendationService, error) {
	svc := &RecommendationService{
		resources: resourceFile{Conditions: make(map[string][]entities.ResourceLink)},
	}
	if resourcePath == "" {
		return svc, nil
	}

	data, err := os.ReadFile(resourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return svc, nil
		}
		return nil, fmt.Errorf("failed to read resources file: %w", err)
	}
	if err := json.Unmarshal(data, &svc.resources); err != nil {
		return nil, fmt.Errorf("failed to parse resources file: %w", err)
	}
	if svc.resources.Conditions == nil {
		svc.resources.Conditions = make(map[string][]entities.ResourceLink)
	}
	return svc, nil
}

// Recommendations returns the action lists for a condition, or the generic
// triple for conditions without a dedicated entry.
func (s *RecommendationService) Recommendations(condition string) *entities.ConditionRecommendations {
	if rec, ok := conditionRecommendations[taxonomy.NormalizeText(condition)]; ok {
		return rec
	}
	return genericRecommendations
}

// Explanation returns a lay explanation of the condition with contextual
// sentences for age and symptom duration.
func (s *RecommendationService) Explanation(condition string, age *int, durationHours *float64) string {
	explanation, ok := conditionExplanations[strings.ToLower(condition)]
	if !ok {
		explanation = fmt.Sprintf("%s is a medical condition that may be related to your symptoms. Please consult with a healthcare provider for proper evaluation and treatment.", condition)
	}

	var context []string
	if age != nil {
		if *age < 18 {
			context = append(context, "In children, this condition may present differently and requires special consideration.")
		} else if *age >= 65 {
			context = append(context, "In older adults, this condition may have additional risk factors and complications.")
		}
	}
	if durationHours != nil {
		if *durationHours < 24 {
			context = append(context, "The recent onset of symptoms suggests an acute condition that may require prompt evaluation.")
		} else if *durationHours > 168 {
			context = append(context, "The prolonged duration of symptoms suggests a chronic or persistent condition that should be evaluated.")
		}
	}

	if len(context) > 0 {
		explanation += " " + strings.Join(context, " ")
	}
	return explanation
}

// ConditionResources returns curated links for a condition, empty when the
// condition has none.
func (s *RecommendationService) ConditionResources(condition string) []entities.ResourceLink {
	return s.resources.Conditions[taxonomy.NormalizeText(condition)]
}

// GeneralResources returns the curated general links.
func (s *RecommendationService) GeneralResources() []entities.ResourceLink {
	return s.resources.General
}
