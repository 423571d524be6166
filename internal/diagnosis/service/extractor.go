package service

import (
	"regexp"
	"strings"

	"kisan_backend/platform/phone"
)

// NotFound is returned for each recommendation field the text does not contain.
const NotFound = "Not found"

// Recommendation is the doctor the model suggested.
type Recommendation struct {
	Name       string
	Mobile     string
	MobileE164 string
}

// Extractor pulls a doctor recommendation out of generated text.
type Extractor interface {
	Extract(text string) Recommendation
}

var doctorPattern = regexp.MustCompile(`\*\*Dr\. ([^*]+)\*\*.*?Mobile: (\d{10})`)

// PatternExtractor matches a bold "**Dr. Name**" followed on the same line by
// a ten digit "Mobile:" number.
type PatternExtractor struct{}

// Extract implements Extractor.
func (PatternExtractor) Extract(text string) Recommendation {
	m := doctorPattern.FindStringSubmatch(text)
	if m == nil {
		return Recommendation{Name: NotFound, Mobile: NotFound}
	}
	return Recommendation{
		Name:       strings.TrimSpace(m[1]),
		Mobile:     m[2],
		MobileE164: phone.NormalizeE164(m[2]),
	}
}
