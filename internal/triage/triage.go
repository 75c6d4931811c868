// Package triage maps acoustic emotion states onto clinical triage entries.
package triage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is the clinical rendering of a classified emotion state.
type Entry struct {
	Label    string
	Color    string
	Priority string
}

var entries = map[string]Entry{
	"ang": {Label: "High Distress (Agitation)", Color: "red", Priority: "Urgent"},
	"sad": {Label: "Depressive Symptoms / Low Mood", Color: "orange", Priority: "Review Needed"},
	"hap": {Label: "Stable / Positive Affect", Color: "green", Priority: "Routine"},
	"neu": {Label: "Neutral / Baseline", Color: "blue", Priority: "Routine"},
}

// Lookup returns the triage entry for an emotion token. Unknown tokens get
// a conservative catch-all entry so a model vocabulary change surfaces as
// "assess manually" rather than a failed run.
func Lookup(token string) Entry {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if entry, ok := entries[normalized]; ok {
		return entry
	}
	label := "Unknown"
	if normalized != "" {
		label = "Unknown (" + cases.Title(language.Und).String(normalized) + ")"
	}
	return Entry{Label: label, Color: "gray", Priority: "Assess"}
}

// Tokens returns the emotion tokens with dedicated triage entries.
func Tokens() []string {
	return []string{"ang", "hap", "neu", "sad"}
}
