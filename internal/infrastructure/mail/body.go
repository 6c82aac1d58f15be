package mail

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// BuildSummaryBody renders the HTML summary of a submission for the admin
// mail. Empty list fields render as the literal "None" and absent proposal
// fields as explicit placeholders, so the mail always names every section.
func BuildSummaryBody(sub *domain.Submission) string {
	var b strings.Builder

	b.WriteString(`<html><body style="font-family: Arial, sans-serif; line-height: 1.6;">`)
	b.WriteString(`<h2 style="color: #333;">New Questionnaire Submission</h2><hr>`)

	b.WriteString(`<h3 style="color: #444;">Personal Information</h3>`)
	writeField(&b, "Name", sub.Name)
	writeField(&b, "Email", sub.Email)
	writeField(&b, "Location", sub.Location)
	writeField(&b, "Age", strconv.Itoa(sub.Age))
	writeField(&b, "Education", sub.Education)
	writeField(&b, "Work Status", sub.WorkStatus)
	writeField(&b, "Interest in Cognitive Economics", sub.InterestInCognitiveEconomics)

	writeList(&b, "Selected Chapters", sub.SelectedChapters)
	writeList(&b, "Selected Books", sub.SelectedBooks)
	writeList(&b, "Participation Preferences", sub.ParticipationPreferences)

	b.WriteString(`<h3 style="color: #444;">Proposal Details</h3>`)
	writeField(&b, "Title", textOrPlaceholder(sub.Proposal.Title, "No title provided"))
	writeField(&b, "Summary", textOrPlaceholder(sub.Proposal.Summary, "No summary provided"))

	b.WriteString(`<h3 style="color: #444;">Attachment</h3>`)
	if doc := sub.Proposal.Document; doc != nil {
		writeField(&b, "Attached", doc.OriginalName)
	} else {
		b.WriteString("<p>No attachment</p>")
	}

	b.WriteString(`<hr><p style="font-size: 12px; color: #777;">This email was generated automatically.</p>`)
	b.WriteString("</body></html>")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
}

func writeList(b *strings.Builder, title string, values []string) {
	fmt.Fprintf(b, `<h3 style="color: #444;">%s</h3>`, title)
	if len(values) == 0 {
		b.WriteString("<p>None</p>")
		return
	}
	b.WriteString("<ul>")
	for _, value := range values {
		fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(value))
	}
	b.WriteString("</ul>")
}

func textOrPlaceholder(value *string, placeholder string) string {
	if value == nil {
		return placeholder
	}
	return *value
}
