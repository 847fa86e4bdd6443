// Package taxonomy holds the versioned medical-term data set shared by the
// suggestion, triage, analysis and learning services. Each consumer gets a
// scoped view that owns its matching policy; the backing tables are defined
// once in this package so a term added here is visible to every view in the
// same release.
package taxonomy

import "strings"

// Version identifies the data set revision. Bump it when any table in this
// package changes so persisted learning state can be correlated with the
// vocabulary it was trained against.
const Version = 3

// NormalizeText lowercases, trims and collapses internal whitespace. All
// views match against text normalized this way, and learning-state keys are
// normalized with it before any read or write.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TokenCount reports the number of whitespace-separated tokens, used to
// route short inputs to keyword matching instead of the classifier.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}
