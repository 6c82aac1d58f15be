package application

import (
	"context"
	"io"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// SubmissionRepository abstracts the durable record store for questionnaire
// responses. The observed surface is insert, list-all and delete-all; there
// is no per-record update or delete path.
type SubmissionRepository interface {
	Insert(ctx context.Context, sub *domain.Submission) error
	ListAll(ctx context.Context) ([]domain.Submission, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// FileStore stages uploaded proposal documents on durable media and hands
// back a reference usable for static serving and mail attachment.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, originalName, contentType string) (*domain.FileRef, error)
}

// Notifier delivers the admin summary for an accepted submission. One
// message per call, no retry.
type Notifier interface {
	Notify(ctx context.Context, sub *domain.Submission) error
}

// SubmissionService describes the intake use-cases exposed over HTTP.
type SubmissionService interface {
	Submit(ctx context.Context, fields FormFields, upload *Upload) (*domain.Submission, error)
	Responses(ctx context.Context) ([]domain.Submission, error)
}

// FormFields carries the raw multipart field values before validation.
// The three list fields arrive as JSON-encoded arrays, empty when absent.
type FormFields struct {
	Name                         string
	Email                        string
	Location                     string
	Age                          string
	Education                    string
	WorkStatus                   string
	InterestInCognitiveEconomics string
	SelectedChapters             string
	SelectedBooks                string
	ParticipationPreferences     string
	ProposalTitle                string
	ProposalSummary              string
}

// Upload is a pending attachment read off the multipart request. At most
// one per submission.
type Upload struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64
}
