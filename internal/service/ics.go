package service

import (
	"strings"
	"time"

	"loves-api/internal/domain"
)

// ICSFilename is the suggested download filename for calendar exports.
const ICSFilename = "loves-calendar.ics"

// ICSContentType is the MIME type of a calendar export.
const ICSContentType = "text/calendar"

const icsTimeLayout = "20060102T150405Z"

// BuildICS renders events as an iCalendar document. The output is
// deterministic for a given event set and generation instant: every VEVENT
// shares the same DTSTAMP derived from now.
func BuildICS(events []*domain.CalendarEvent, now time.Time) string {
	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//Loves Platform//EN")

	stamp := now.UTC().Format(icsTimeLayout)
	for _, event := range events {
		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+event.ID+"@loves-platform")
		writeICSLine(&b, "DTSTAMP:"+stamp)
		writeICSLine(&b, "DTSTART:"+event.Date.UTC().Format(icsTimeLayout))
		writeICSLine(&b, "SUMMARY:"+escapeICSText(event.Title))
		if event.Description != "" {
			writeICSLine(&b, "DESCRIPTION:"+escapeICSText(event.Description))
		}
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")
	return b.String()
}

// writeICSLine terminates each content line with CRLF per RFC 5545.
func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeICSText escapes backslashes, separators and newlines for iCalendar
// TEXT values. Newlines become the literal sequence \n.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}
