package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the configuration and console date format.
const DateLayout = "2006-01-02"

// Request identifies a single sounding: one station, one day, one synoptic hour.
type Request struct {
	Date    time.Time
	Hour    string // "00" or "12"
	Station string
	Region  string
}

// BuildURL returns the TEXT:LIST query URL for req. FROM and TO are equal so the
// service returns exactly the requested day and hour.
func BuildURL(baseURL string, req Request) string {
	ddhh := req.Date.Format("02") + req.Hour

	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?region=")
	b.WriteString(req.Region)
	b.WriteString("&TYPE=TEXT%3ALIST")
	fmt.Fprintf(&b, "&YEAR=%s&MONTH=%s", req.Date.Format("2006"), req.Date.Format("01"))
	fmt.Fprintf(&b, "&FROM=%s&TO=%s", ddhh, ddhh)
	b.WriteString("&STNM=")
	b.WriteString(req.Station)
	return b.String()
}

// Days returns every calendar day from start to end inclusive, normalized to
// midnight UTC. It returns nil when end precedes start.
func Days(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Filename returns the output filename for a report on date, e.g.
// "wyoming-22-01-2026.txt". Distinct calendar days always map to distinct names.
func Filename(prefix string, date time.Time) string {
	return fmt.Sprintf("%s-%s.txt", prefix, date.Format("02-01-2006"))
}
