package mail

import (
	"context"
	"fmt"
	"path/filepath"

	gomail "gopkg.in/gomail.v2"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// Notifier sends one admin summary mail per accepted submission over SMTP.
type Notifier struct {
	dialer    *gomail.Dialer
	from      string
	recipient string
	stageDir  string
}

// Config defines the SMTP transport and the fixed administrative recipient.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Recipient string
	StageDir  string
}

// New builds a Notifier from SMTP configuration. The recipient is fixed at
// construction time; callers cannot vary it per message.
func New(cfg Config) *Notifier {
	return &Notifier{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.Username,
		recipient: cfg.Recipient,
		stageDir:  cfg.StageDir,
	}
}

// Notify composes the HTML summary and sends it, attaching the staged
// proposal document under its original filename when present. There is no
// retry; a transport failure is returned to the caller and the persisted
// record stays put.
func (n *Notifier) Notify(ctx context.Context, sub *domain.Submission) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.recipient)
	m.SetHeader("Subject", "New Questionnaire Submission")
	m.SetBody("text/html", BuildSummaryBody(sub))

	if doc := sub.Proposal.Document; doc != nil {
		m.Attach(filepath.Join(n.stageDir, doc.StoredName), gomail.Rename(doc.OriginalName))
	}

	// gomail has no context support; bound the dial+send with the caller's
	// deadline instead.
	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send notification mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send notification mail: %w", ctx.Err())
	}
}
