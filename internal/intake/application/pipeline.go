package application

import (
	"context"
	"time"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// IntakeService orchestrates validation, file staging, persistence and
// notification for inbound questionnaire submissions.
type IntakeService struct {
	repo   SubmissionRepository
	files  FileStore
	mailer Notifier
}

// NewIntakeService wires the intake pipeline from its three ports.
func NewIntakeService(repo SubmissionRepository, files FileStore, mailer Notifier) *IntakeService {
	return &IntakeService{repo: repo, files: files, mailer: mailer}
}

// Submit runs one submission through the pipeline. The ordering is
// load-bearing: nothing durable happens before validation passes, the
// upload is staged before the record is inserted so the file reference is
// valid at insert time, and the record is inserted before notification is
// attempted. A notification failure does not roll the record back; the
// persisted submission is returned alongside the error so callers can
// observe the persisted-but-unnotified state.
func (s *IntakeService) Submit(ctx context.Context, fields FormFields, upload *Upload) (*domain.Submission, error) {
	sub, err := ParseForm(fields)
	if err != nil {
		return nil, err
	}

	if upload != nil {
		ref, err := s.files.Save(ctx, upload.Reader, upload.OriginalName, upload.ContentType)
		if err != nil {
			return nil, &IntakeError{Kind: KindStorage, Err: err}
		}
		sub.Proposal.Document = ref
	}

	sub.CreatedAt = time.Now().UTC()
	if err := s.repo.Insert(ctx, sub); err != nil {
		return nil, &IntakeError{Kind: KindPersistence, Err: err}
	}

	if err := s.mailer.Notify(ctx, sub); err != nil {
		return sub, &IntakeError{Kind: KindNotification, Err: err}
	}

	return sub, nil
}

// Responses returns every stored submission in store-native order.
func (s *IntakeService) Responses(ctx context.Context) ([]domain.Submission, error) {
	return s.repo.ListAll(ctx)
}
