package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"
)

const icsTimeLayout = "20060102T150405Z"

// GenerateICS renders a single-event calendar attachment for a confirmed
// booking. Times are emitted in UTC.
func GenerateICS(n shared.Notification) string {
	start := n.StartAt.UTC().Format(icsTimeLayout)
	end := n.EndAt.UTC().Format(icsTimeLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//BookTimez//EN",
		"BEGIN:VEVENT",
		"UID:" + n.AppointmentID,
		"DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout),
		"DTSTART:" + start,
		"DTEND:" + end,
		fmt.Sprintf("SUMMARY:%s @ %s (Ref: %s)", escapeICS(n.CategoryName), escapeICS(n.BusinessName), n.ReferenceNumber),
		"DESCRIPTION:Booking Reference: " + n.ReferenceNumber,
		"LOCATION:" + escapeICS(n.BusinessName),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}

func escapeICS(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return replacer.Replace(s)
}
