package public

import (
	"time"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

type submissionResponse struct {
	ID                           string           `json:"id"`
	Name                         string           `json:"name"`
	Email                        string           `json:"email"`
	Location                     string           `json:"location"`
	Age                          int              `json:"age"`
	Education                    string           `json:"education"`
	WorkStatus                   string           `json:"workStatus"`
	InterestInCognitiveEconomics string           `json:"interestInCognitiveEconomics"`
	SelectedChapters             []string         `json:"selectedChapters"`
	SelectedBooks                []string         `json:"selectedBooks"`
	ParticipationPreferences     []string         `json:"participationPreferences"`
	Proposal                     proposalResponse `json:"proposal"`
	CreatedAt                    time.Time        `json:"createdAt"`
}

type proposalResponse struct {
	Title         *string `json:"title"`
	Summary       *string `json:"summary"`
	Documentation *string `json:"documentation"`
}

func buildSubmissionResponse(sub domain.Submission) submissionResponse {
	resp := submissionResponse{
		ID:                           sub.ID,
		Name:                         sub.Name,
		Email:                        sub.Email,
		Location:                     sub.Location,
		Age:                          sub.Age,
		Education:                    sub.Education,
		WorkStatus:                   sub.WorkStatus,
		InterestInCognitiveEconomics: sub.InterestInCognitiveEconomics,
		SelectedChapters:             sub.SelectedChapters,
		SelectedBooks:                sub.SelectedBooks,
		ParticipationPreferences:     sub.ParticipationPreferences,
		Proposal: proposalResponse{
			Title:   sub.Proposal.Title,
			Summary: sub.Proposal.Summary,
		},
		CreatedAt: sub.CreatedAt,
	}
	if doc := sub.Proposal.Document; doc != nil {
		path := "/uploads/" + doc.StoredName
		resp.Proposal.Documentation = &path
	}
	return resp
}
