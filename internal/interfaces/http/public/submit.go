package public

import (
	"errors"
	"net/http"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/application"
	"github.com/cognitive-economics/questionnaire-services/api/internal/interfaces/http/common"
)

const (
	// maxSubmitBody caps the whole multipart request, attachment included.
	maxSubmitBody = 32 << 20
	// maxSubmitMemory is the in-memory threshold before multipart parts
	// spill to temp files.
	maxSubmitMemory = 8 << 20

	proposalFileField = "proposalFile"
)

func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)
		if err := r.ParseMultipartForm(maxSubmitMemory); err != nil {
			h.logger.Printf("submission rejected: parse multipart form: %v", err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": "Invalid form submission.",
			})
			return
		}

		fields := application.FormFields{
			Name:                         r.FormValue("name"),
			Email:                        r.FormValue("email"),
			Location:                     r.FormValue("location"),
			Age:                          r.FormValue("age"),
			Education:                    r.FormValue("education"),
			WorkStatus:                   r.FormValue("workStatus"),
			InterestInCognitiveEconomics: r.FormValue("interestInCognitiveEconomics"),
			SelectedChapters:             r.FormValue("selectedChapters"),
			SelectedBooks:                r.FormValue("selectedBooks"),
			ParticipationPreferences:     r.FormValue("participationPreferences"),
			ProposalTitle:                r.FormValue("proposalTitle"),
			ProposalSummary:              r.FormValue("proposalSummary"),
		}

		var upload *application.Upload
		file, header, err := r.FormFile(proposalFileField)
		switch {
		case err == nil:
			defer file.Close()
			upload = &application.Upload{
				Reader:       file,
				OriginalName: header.Filename,
				ContentType:  header.Header.Get("Content-Type"),
				Size:         header.Size,
			}
		case errors.Is(err, http.ErrMissingFile):
			// Attachment is optional.
		default:
			h.logger.Printf("submission rejected: read proposal file: %v", err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": "Invalid form submission.",
			})
			return
		}

		if _, err := h.intake.Submit(r.Context(), fields, upload); err != nil {
			h.writeIntakeError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]string{
			"message": "Questionnaire submitted successfully and email sent!",
		})
	}
}

// writeIntakeError maps pipeline failures to client responses. Clients get
// a generic message per category; the full detail only goes to the log.
func (h *Handler) writeIntakeError(w http.ResponseWriter, err error) {
	var intakeErr *application.IntakeError
	if !errors.As(err, &intakeErr) {
		h.logger.Printf("submission failed: %v", err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
			"error": "Internal Server Error",
		})
		return
	}

	switch intakeErr.Kind {
	case application.KindValidation:
		h.logger.Printf("submission rejected: %v", intakeErr)
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
			"error": "All required fields must be filled.",
		})
	case application.KindListFieldDecode:
		h.logger.Printf("submission rejected: %v", intakeErr)
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
			"error": "Selected lists could not be decoded.",
		})
	case application.KindNotification:
		// The record is already persisted at this point; only the mail
		// failed. Report it distinctly but do not pretend the submission
		// vanished.
		h.logger.Printf("notification failed after persistence: %v", intakeErr)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to send email",
		})
	default:
		h.logger.Printf("submission failed: %v", intakeErr)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
			"error": "Internal Server Error",
		})
	}
}
