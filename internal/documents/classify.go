package documents

import "strings"

// typeRule maps a predicate over the upper-cased filename to a tax document
// type.
type typeRule struct {
	docType string
	match   func(name string) bool
}

// classificationRules is evaluated top to bottom; first match wins. T4A and
// T4E sit above the bare T4 test, and T5008 above the bare T5 test, so the
// more specific form is always preferred.
var classificationRules = []typeRule{
	{docType: "T4A", match: contains("T4A")},
	{docType: "T4E", match: contains("T4E")},
	{docType: "T4", match: contains("T4")},
	{docType: "T5008", match: containsAll("T5", "008")},
	{docType: "T5", match: contains("T5")},
	{docType: "T3", match: contains("T3")},
	{docType: "T2202", match: contains("T2202")},
	{docType: "RRSP", match: contains("RRSP")},
	{docType: "Donation Receipt", match: containsAny("DONATION", "CHARITABLE")},
}

// Classify returns the Canadian tax document type for a filename, or the
// empty string when no rule matches (type stays unknown until a later
// extraction stage resolves it). Matching is case-insensitive.
func Classify(fileName string) string {
	upper := strings.ToUpper(fileName)
	for _, rule := range classificationRules {
		if rule.match(upper) {
			return rule.docType
		}
	}
	return ""
}

func contains(sub string) func(string) bool {
	return func(name string) bool {
		return strings.Contains(name, sub)
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, sub := range subs {
			if !strings.Contains(name, sub) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, sub := range subs {
			if strings.Contains(name, sub) {
				return true
			}
		}
		return false
	}
}
