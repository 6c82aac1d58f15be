package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// ErrMissingRequiredField is wrapped into the validation error when any of
// the six required scalar fields is absent or blank.
var ErrMissingRequiredField = errors.New("all required fields must be filled")

// ParseForm checks required fields, decodes the encoded list fields and
// normalizes the optional proposal fields into a Submission ready for
// storage. It performs no I/O; the returned Submission has no ID or
// CreatedAt yet.
func ParseForm(fields FormFields) (*domain.Submission, error) {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", fields.Name},
		{"email", fields.Email},
		{"location", fields.Location},
		{"age", fields.Age},
		{"education", fields.Education},
		{"workStatus", fields.WorkStatus},
		{"interestInCognitiveEconomics", fields.InterestInCognitiveEconomics},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &IntakeError{
			Kind: KindValidation,
			Err:  fmt.Errorf("%w: missing %s", ErrMissingRequiredField, strings.Join(missing, ", ")),
		}
	}

	age, err := strconv.Atoi(strings.TrimSpace(fields.Age))
	if err != nil {
		return nil, &IntakeError{
			Kind: KindValidation,
			Err:  fmt.Errorf("age must be numeric: %w", err),
		}
	}

	chapters, err := decodeList("selectedChapters", fields.SelectedChapters)
	if err != nil {
		return nil, err
	}
	books, err := decodeList("selectedBooks", fields.SelectedBooks)
	if err != nil {
		return nil, err
	}
	preferences, err := decodeList("participationPreferences", fields.ParticipationPreferences)
	if err != nil {
		return nil, err
	}

	return &domain.Submission{
		Name:                         strings.TrimSpace(fields.Name),
		Email:                        strings.TrimSpace(fields.Email),
		Location:                     strings.TrimSpace(fields.Location),
		Age:                          age,
		Education:                    strings.TrimSpace(fields.Education),
		WorkStatus:                   strings.TrimSpace(fields.WorkStatus),
		InterestInCognitiveEconomics: strings.TrimSpace(fields.InterestInCognitiveEconomics),
		SelectedChapters:             chapters,
		SelectedBooks:                books,
		ParticipationPreferences:     preferences,
		Proposal: domain.Proposal{
			Title:   optionalText(fields.ProposalTitle),
			Summary: optionalText(fields.ProposalSummary),
		},
	}, nil
}

// decodeList turns a JSON-encoded array field into a string slice. Absent
// input normalizes to an empty slice, never nil, so stored list fields are
// always well-formed sequences.
func decodeList(field, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, &IntakeError{
			Kind: KindListFieldDecode,
			Err:  fmt.Errorf("field %s is not a valid encoded list: %w", field, err),
		}
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// optionalText returns nil for blank input so downstream rendering can tell
// "not provided" apart from an explicit empty string.
func optionalText(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
