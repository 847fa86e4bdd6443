package services

import (
	"context"
	"strings"
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
)

// SurveyService mirrors survey submissions into the relational row store.
type SurveyService struct {
	mirror repositories.RowStoreRepository // nil disables mirroring
}

func NewSurveyService(mirror repositories.RowStoreRepository) *SurveyService {
	return &SurveyService{mirror: mirror}
}

// Submit inserts the survey. Unlike feedback mirroring this failure is
// returned: the survey row is the only record of the submission.
func (s *SurveyService) Submit(ctx context.Context, survey *entities.Survey) error {
	if s.mirror == nil {
		return nil
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now().UTC()
	}

	row := map[string]interface{}{
		"age":             survey.Age,
		"duration_hours":  survey.DurationHours,
		"symptoms_text":   survey.SymptomsText,
		"medical_history": survey.MedicalHistory,
		"pain_scale":      survey.PainScale,
		"severity":        survey.Severity,
		"created_at":      survey.CreatedAt,
	}
	if survey.UserID != "" {
		row["user_id"] = survey.UserID
	}

	if err := s.mirror.Insert(ctx, "surveys", row); err != nil {
		if _, hasUser := row["user_id"]; hasUser && strings.Contains(err.Error(), "user_id") {
			delete(row, "user_id")
			return s.mirror.Insert(ctx, "surveys", row)
		}
		return err
	}
	return nil
}
