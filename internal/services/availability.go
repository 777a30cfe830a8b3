package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/simsportal/sims-portal-backend/internal/domain"
)

// Weekdays are the canonical day names, Monday first.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	dateLabelLayout = "Monday, January 2"
	minTimelineDate = "2000-01-01"
)

var quotedItem = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

// ParseDateList splits a stored availability list such as
// "['Monday, January 5', 'Tuesday, January 6']" into its labels. Unquoted
// input falls back to splitting on ", ".
func ParseDateList(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	if matches := quotedItem.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			item := m[1]
			if item == "" {
				item = m[2]
			}
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractWeekday returns the day name of a "Monday, January 2" label, or
// the label unchanged when it does not match that layout.
func ExtractWeekday(label string) string {
	label = strings.TrimSpace(label)
	if _, err := time.Parse(dateLabelLayout, label); err != nil {
		return label
	}
	day, _, _ := strings.Cut(label, ",")
	return day
}

// NormalizeDays reduces a stored list to canonical weekday names in input
// order. Unrecognized fragments are dropped. Applying it to its own joined
// output yields the same list.
func NormalizeDays(raw string) []string {
	out := []string{}
	for _, item := range ParseDateList(raw) {
		cleaned := strings.ReplaceAll(ExtractWeekday(item), ",", " ")
		for _, tok := range strings.Fields(cleaned) {
			if isWeekday(tok) {
				out = append(out, tok)
			}
		}
	}
	return out
}

func isWeekday(s string) bool {
	for _, d := range Weekdays {
		if s == d {
			return true
		}
	}
	return false
}

func weekdayIndex(name string) int {
	for i, d := range Weekdays {
		if name == d {
			return i
		}
	}
	return -1
}

// Timeframe renders the ISO year and week of t as "YYYY-WW".
func Timeframe(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", y, w)
}

// NextTimeframe is the ISO week containing t+7 days, so week 52/53 rolls
// into week 01 of the following ISO year.
func NextTimeframe(t time.Time) string {
	return Timeframe(t.AddDate(0, 0, 7))
}

// WeekdayIndex numbers days Monday=0 through Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekDates labels Monday through Sunday of t's ISO week.
func WeekDates(t time.Time) [7]string {
	monday := t.AddDate(0, 0, -WeekdayIndex(t))
	var out [7]string
	for i := range out {
		out[i] = monday.AddDate(0, 0, i).Format(dateLabelLayout)
	}
	return out
}

type AvailabilityChart struct {
	WeekDates      [7]string `json:"week_dates"`
	FrequencyCount [7]int    `json:"frequency_count"`
	Empty          bool      `json:"empty"`
}

// ChartFromRecords counts, per weekday of t's week, how many users marked
// themselves available. Records must already be resolved to one per user
// with Days normalized.
func ChartFromRecords(records []domain.SupporterAvailability, t time.Time) AvailabilityChart {
	chart := AvailabilityChart{WeekDates: WeekDates(t)}
	for _, rec := range records {
		var seen [7]bool
		for _, day := range rec.Days {
			if i := weekdayIndex(day); i >= 0 && !seen[i] {
				seen[i] = true
				chart.FrequencyCount[i]++
			}
		}
	}
	chart.Empty = chart.FrequencyCount == [7]int{}
	return chart
}

func normalizeRoster(records []domain.SupporterAvailability) []domain.SupporterAvailability {
	for i := range records {
		records[i].Days = NormalizeDays(records[i].RawDates)
	}
	return records
}
