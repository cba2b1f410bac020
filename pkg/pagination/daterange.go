package pagination

import "time"

// ParseDateRange parses the inclusive date window of a list query. Both
// bounds are required together; with either missing or unparseable, no
// window is applied. Accepts RFC3339 or plain dates; a date-only end bound
// is widened to the end of that day so the range stays inclusive.
func ParseDateRange(startStr, endStr string) (*time.Time, *time.Time) {
	if startStr == "" || endStr == "" {
		return nil, nil
	}
	start, sOK := parseDate(startStr, false)
	end, eOK := parseDate(endStr, true)
	if !sOK || !eOK {
		return nil, nil
	}
	return &start, &end
}

func parseDate(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, true
	}
	return time.Time{}, false
}
