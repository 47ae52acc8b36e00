package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/timezone"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers one notification. Implementations must be safe for use
// from the dispatch worker goroutine.
type Sender interface {
	Send(ctx context.Context, n shared.Notification) error
}

type SendGridMailer struct {
	client *sendgrid.Client
	cfg    config.MailConfig
}

func NewSendGridMailer(cfg config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		cfg:    cfg,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, n shared.Notification) error {
	if n.RecipientEmail == "" {
		return nil
	}

	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	to := mail.NewEmail(n.RecipientName, n.RecipientEmail)

	var message *mail.SGMailV3
	switch n.Kind {
	case shared.NotifyBookingConfirmed:
		message = mail.NewSingleEmail(from, "Booking Confirmed - "+n.BusinessName, to,
			confirmationText(n, m.cfg.CancelBaseURL), confirmationHTML(n, m.cfg.CancelBaseURL))
		attachICS(message, n)
	case shared.NotifyBookingCancelled:
		message = mail.NewSingleEmail(from, "Booking Cancelled - "+n.BusinessName, to,
			cancellationText(n), cancellationHTML(n))
	default:
		return errs.New("unknown notification kind: " + string(n.Kind))
	}

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return errs.Wrap(err, "failed to send mail")
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("mail provider returned status %d", response.StatusCode))
	}
	return nil
}

func attachICS(message *mail.SGMailV3, n shared.Notification) {
	attachment := mail.NewAttachment()
	attachment.SetFilename("booking.ics")
	attachment.SetType("text/calendar")
	attachment.SetContent(base64.StdEncoding.EncodeToString([]byte(GenerateICS(n))))
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)
}

// localWindow renders the appointment interval in the zone the booking was
// made in.
func localWindow(n shared.Notification) (string, string) {
	loc, err := timezone.Location(n.Timezone)
	if err != nil {
		loc = time.UTC
	}
	const layout = "Mon, 02 Jan 2006 15:04"
	return n.StartAt.In(loc).Format(layout), n.EndAt.In(loc).Format(layout)
}

func confirmationText(n shared.Notification, cancelBaseURL string) string {
	start, end := localWindow(n)
	return fmt.Sprintf(
		"Hi %s,\n\nYour appointment is confirmed.\n\nBusiness: %s\nService: %s\nStart: %s\nEnd: %s\nReference: %s\n\nCancel: %s/%s\n",
		n.RecipientName, n.BusinessName, n.CategoryName, start, end, n.ReferenceNumber,
		cancelBaseURL, n.CancelToken,
	)
}

func confirmationHTML(n shared.Notification, cancelBaseURL string) string {
	start, end := localWindow(n)
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>Booking Confirmed</h2>
<p>Hi <strong>%s</strong>,</p>
<p>Your appointment has been successfully booked.</p>
<table cellpadding="6">
<tr><td><strong>Business</strong></td><td>%s</td></tr>
<tr><td><strong>Service</strong></td><td>%s</td></tr>
<tr><td><strong>Start</strong></td><td>%s</td></tr>
<tr><td><strong>End</strong></td><td>%s</td></tr>
<tr><td><strong>Reference</strong></td><td>%s</td></tr>
</table>
<p>If you need to cancel your appointment, click the link below:</p>
<p><a href="%s/%s">Cancel Appointment</a></p>
<p>Thank you for booking with us.</p>
</div>`,
		n.RecipientName, n.BusinessName, n.CategoryName, start, end, n.ReferenceNumber,
		cancelBaseURL, n.CancelToken,
	)
}

func cancellationText(n shared.Notification) string {
	start, _ := localWindow(n)
	return fmt.Sprintf(
		"Hi %s,\n\nYour appointment at %s (%s, %s) has been cancelled.\nReference: %s\n",
		n.RecipientName, n.BusinessName, n.CategoryName, start, n.ReferenceNumber,
	)
}

func cancellationHTML(n shared.Notification) string {
	start, _ := localWindow(n)
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>Booking Cancelled</h2>
<p>Hi <strong>%s</strong>,</p>
<p>Your appointment at <strong>%s</strong> (%s, %s) has been cancelled.</p>
<p>Reference: %s</p>
</div>`,
		n.RecipientName, n.BusinessName, n.CategoryName, start, n.ReferenceNumber,
	)
}
