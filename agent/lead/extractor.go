// Package lead harvests contact details from raw conversation text. All
// passes are independent, best-effort, and first-match-wins; the extractor
// never guarantees completeness.
package lead

import (
	"regexp"
	"strings"
)

// Lead is the subset of contact fields found in one message.
type Lead struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Empty reports whether no field was found.
func (l *Lead) Empty() bool {
	return l == nil || (l.Email == "" && l.Phone == "" && l.Company == "" && l.Name == "")
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Loose digit runs; anything 10+ digits long is taken as a phone number.
	// Order numbers and other long numerics are miscaptured on purpose, per
	// the original heuristic.
	phonePattern = regexp.MustCompile(`\+?[1-9][0-9]{0,15}`)
)

var companyKeywords = []string{"company", "corp", "inc", "ltd", "llc", "enterprises"}

// namePhrases are ordered longest-first so "my name is" wins over "name".
var namePhrases = []string{"my name is", "call me", "name is", "i am"}

const minPhoneDigits = 10

// Extract scans one message for contact fields. Returns nil when nothing was
// found.
func Extract(message string) *Lead {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	out := &Lead{
		Email:   extractEmail(message),
		Phone:   extractPhone(message),
		Company: extractCompany(message),
		Name:    extractName(message),
	}
	if out.Empty() {
		return nil
	}
	return out
}

func extractEmail(message string) string {
	return emailPattern.FindString(message)
}

func extractPhone(message string) string {
	for _, candidate := range phonePattern.FindAllString(message, -1) {
		digits := strings.TrimPrefix(candidate, "+")
		if len(digits) >= minPhoneDigits {
			return candidate
		}
	}
	return ""
}

// extractCompany takes the word immediately preceding a corporate-suffix
// keyword, e.g. "Acme Inc" from "I work at Acme Inc".
func extractCompany(message string) string {
	words := strings.Fields(message)
	for i, word := range words {
		lower := strings.ToLower(word)
		for _, keyword := range companyKeywords {
			if strings.Contains(lower, keyword) {
				if i > 0 {
					return words[i-1] + " " + word
				}
				return ""
			}
		}
	}
	return ""
}

// extractName takes the first one or two words after a name-indicating
// phrase, with trailing punctuation stripped.
func extractName(message string) string {
	lower := strings.ToLower(message)
	for _, phrase := range namePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		rest := strings.Fields(message[idx+len(phrase):])
		if len(rest) == 0 {
			return ""
		}
		if len(rest) > 2 {
			rest = rest[:2]
		}
		for i, w := range rest {
			rest[i] = strings.Trim(w, ".,!?;:")
		}
		return strings.TrimSpace(strings.Join(rest, " "))
	}
	return ""
}
