package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/planner"
)

type DigestService interface {
	SendDailySummary(to string, today models.Date, tasks []models.Task) error
}

type digestService struct {
	dialer *gomail.Dialer
	from   string
}

func NewDigestService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) DigestService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &digestService{
		dialer: dialer,
		from:   fromEmail,
	}
}

// SendDailySummary mails the day's gauge, agenda and 5-day completion counts.
// The numbers are recomputed from the passed collection, never cached.
func (s *digestService) SendDailySummary(to string, today models.Date, tasks []models.Task) error {
	pct := planner.CompletionPercentage(tasks, today)
	agenda := planner.Agenda(tasks, today)
	hist := planner.RollingHistogram(tasks, today)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Planify daily summary — %s", today))

	var items strings.Builder
	if len(agenda) == 0 {
		items.WriteString("<li>Nothing planned for today.</li>")
	}
	for _, t := range agenda {
		mark := ""
		if t.Completed() {
			mark = " ✔"
		}
		items.WriteString(fmt.Sprintf("<li>[%s] %s — %s%s</li>", t.Level, t.Title, t.Desc, mark))
	}

	var bars strings.Builder
	for _, b := range hist {
		bars.WriteString(fmt.Sprintf("<li>%s: %d completed</li>", b.Label, b.Count))
	}

	body := fmt.Sprintf(`
		<h2>%d%% of today's goal completed</h2>
		<p>Plans for %s:</p>
		<ul>%s</ul>
		<p>Last five days:</p>
		<ul>%s</ul>
		<p>Best regards,<br>Planify</p>
	`, pct, today, items.String(), bars.String())

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send daily summary: %w", err)
	}
	return nil
}
