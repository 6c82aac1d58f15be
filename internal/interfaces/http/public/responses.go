package public

import (
	"context"
	"net/http"
	"time"

	"github.com/cognitive-economics/questionnaire-services/api/internal/interfaces/http/common"
)

func (h *Handler) responsesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		subs, err := h.intake.Responses(ctx)
		if err != nil {
			h.logger.Printf("list responses: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
				"error": "Internal Server Error",
			})
			return
		}

		items := make([]submissionResponse, 0, len(subs))
		for _, sub := range subs {
			items = append(items, buildSubmissionResponse(sub))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}
