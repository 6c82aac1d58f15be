package domain

import "time"

// Submission is the persisted, validated representation of one
// questionnaire entry. Records are created exactly once on successful
// intake, never updated, and only removed in bulk by the retention sweep.
type Submission struct {
	ID                           string
	Name                         string
	Email                        string
	Location                     string
	Age                          int
	Education                    string
	WorkStatus                   string
	InterestInCognitiveEconomics string
	SelectedChapters             []string
	SelectedBooks                []string
	ParticipationPreferences     []string
	Proposal                     Proposal
	CreatedAt                    time.Time
}

// Proposal carries the optional project proposal attached to a submission.
// Nil pointers mark fields the respondent left blank, as opposed to an
// empty string the respondent actually typed.
type Proposal struct {
	Title    *string
	Summary  *string
	Document *FileRef
}

// FileRef identifies a staged upload by its stored name. The stored name
// is unique within the file stage; the original name is kept for display
// and for the mail attachment.
type FileRef struct {
	StoredName   string
	OriginalName string
	Size         int64
	ContentType  string
}
