// Package pattern implements the deterministic, fully local extraction path.
// It scans text with an ordered table of matcher families; within a family
// the first rule that matches wins, so priority is declaration order.
package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// DateKind tags the format family a date rule belongs to.
type DateKind string

// Date format families, probed in the order declared in dateRules.
const (
	KindJapanese  DateKind = "japanese"   // 2024年5月11日
	KindSlash     DateKind = "slash"      // 05/11/2024 [2:00 PM]
	KindISO       DateKind = "iso"        // 2024-05-11T14:00
	KindMonthName DateKind = "month-name" // May 11, 2024
	KindRelative  DateKind = "relative"   // 今日 / 明日 / 明後日 / 本日
)

// dateRule matches one date format. Group 1 captures the date text,
// group 2 an optional time-of-day written next to the date.
type dateRule struct {
	kind DateKind
	re   *regexp.Regexp
}

// adjacentTime accepts 14:30, 14時30分 and hour-only 14時 forms.
const adjacentTime = `((?:\d{1,2}[:時]\d{2}分?)|(?:\d{1,2}時))?`

var dateRules = []dateRule{
	{KindJapanese, regexp.MustCompile(`(\d{4}年\d{1,2}月\d{1,2}日)\s*` + adjacentTime)},
	{KindSlash, regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})(?:\s+(\d{1,2}:\d{2}\s*[AP]M))?`)},
	{KindISO, regexp.MustCompile(`(\d{4}-\d{2}-\d{2})[T\s](\d{2}:\d{2})`)},
	{KindMonthName, regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4})(?:\s*(\d{1,2}:\d{2}\s*[AP]M))?`)},
	{KindRelative, regexp.MustCompile(`(今日|明日|明後日|本日)\s*` + adjacentTime)},
}

// timeRangeRules match start–end pairs; group 1 is the start, group 2 the end.
var timeRangeRules = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}[:時]\d{2}分?)\s*(?:-|~|～|から|to)\s*(\d{1,2}[:時]\d{2}分?)`),
	regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M)\s*(?:-|~|to)\s*(\d{1,2}:\d{2}\s*[AP]M)`),
	regexp.MustCompile(`(\d{1,2})時\s*(?:-|~|～|から)\s*(\d{1,2})時`),
}

// locationRules match labeled locations; group 1 is the location text.
var locationRules = []*regexp.Regexp{
	regexp.MustCompile(`場所[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Location[:：]\s*([^\n]+)`),
	regexp.MustCompile(`会場[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Venue[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Where[:：]\s*([^\n]+)`),
	regexp.MustCompile(`住所[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Address[:：]\s*([^\n]+)`),
}

// meetingURLRules recognize known conferencing providers only.
var meetingURLRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https://\S*meet\S+`),
	regexp.MustCompile(`(?i)https://zoom\.us/\S+`),
	regexp.MustCompile(`(?i)https://teams\.microsoft\.com/\S+`),
	regexp.MustCompile(`(?i)https://\S*webex\S+`),
}

// titleRules match quoted brackets and labeled titles; group 1 is the title.
var titleRules = []*regexp.Regexp{
	regexp.MustCompile(`「([^」]+)」`),
	regexp.MustCompile(`【([^】]+)】`),
	regexp.MustCompile(`会議[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Meeting[:：]\s*([^\n]+)`),
	regexp.MustCompile(`予定[:：]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Event[:：]\s*([^\n]+)`),
}

// firstGroup probes rules in order and returns the first capture group of
// the first rule matching s.
func firstGroup(rules []*regexp.Regexp, s string) (string, bool) {
	for _, re := range rules {
		if m := re.FindStringSubmatch(s); m != nil && m[1] != "" {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// firstMatch probes rules in order and returns the whole first match.
func firstMatch(rules []*regexp.Regexp, s string) (string, bool) {
	for _, re := range rules {
		if m := re.FindString(s); m != "" {
			return m, true
		}
	}
	return "", false
}

var (
	ampmTimeRe  = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*([AP])M`)
	jpTimeRe    = regexp.MustCompile(`(\d{1,2})時(\d{2})?分?`)
	plainTimeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// normalizeTime converts a matched time string to 24-hour HH:MM.
// Returns "" when s carries no recognizable time.
func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if m := ampmTimeRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		period := strings.ToUpper(m[3])
		if period == "P" && hour != 12 {
			hour += 12
		}
		if period == "A" && hour == 12 {
			hour = 0
		}
		return pad(hour) + ":" + m[2]
	}

	if strings.Contains(s, "時") {
		if m := jpTimeRe.FindStringSubmatch(s); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute := m[2]
			if minute == "" {
				minute = "00"
			}
			return pad(hour) + ":" + minute
		}
	}

	if m := plainTimeRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return pad(hour) + ":" + m[2]
	}

	return ""
}

// normalizeHour renders a bare hour (from N時～M時 ranges) as HH:00.
func normalizeHour(s string) string {
	hour, err := strconv.Atoi(s)
	if err != nil {
		return ""
	}
	return pad(hour) + ":00"
}

func pad(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h)
	}
	return strconv.Itoa(h)
}
