// Package timezone maps arbitrary zone labels to canonical IANA identifiers.
// Businesses created through older Windows clients stored display names like
// "India Standard Time"; all time arithmetic must run on the canonical zone.
package timezone

import "time"

var windowsToIANA = map[string]string{
	"India Standard Time":            "Asia/Kolkata",
	"Pacific Standard Time":          "America/Los_Angeles",
	"Eastern Standard Time":          "America/New_York",
	"Central European Standard Time": "Europe/Berlin",
	"Greenwich Standard Time":        "Europe/London",
	"UTC":                            "UTC",
}

// Normalize returns the canonical IANA identifier for label. Unknown labels
// pass through unchanged so the caller can fail on an invalid zone where it
// matters. An empty label falls back to UTC.
func Normalize(label string) string {
	if label == "" {
		return "UTC"
	}
	if iana, ok := windowsToIANA[label]; ok {
		return iana
	}
	return label
}

// Location normalizes label and resolves it against the zone database.
func Location(label string) (*time.Location, error) {
	return time.LoadLocation(Normalize(label))
}
