// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citation-view.
// Record is the unit delivered by the citation-search service; the config
// structs mirror the viper configuration file.
package types

import "strconv"

// Record is one bibliographic entry returned by the citation-search service.
// Every field is optional: a nil pointer means the service did not provide a
// value, which is distinct from an empty string or zero.
type Record struct {
	// FirstAuthor is the display name of the first listed author.
	FirstAuthor *string `json:"first_author" yaml:"first_author"`

	// YearPublished is the publication year.
	YearPublished *int `json:"year_published" yaml:"year_published"`

	// Journal is the journal or venue name.
	Journal *string `json:"journal" yaml:"journal"`

	// Title is the article title.
	Title *string `json:"title" yaml:"title"`

	// Summary is the abstract.
	Summary *string `json:"summary" yaml:"summary"`

	// DOI is the identifier used for selection and deduplication.
	DOI *string `json:"doi" yaml:"doi"`

	// Citations is the citation count reported by the search service.
	Citations *int `json:"citations" yaml:"citations"`

	// Score is the relevance score; records arrive ranked by it, descending.
	Score *int `json:"score" yaml:"score"`
}

// ID returns the record's DOI and whether it can be selected. Records without
// a DOI, or with an empty one, have no identity.
func (r Record) ID() (string, bool) {
	if r.DOI == nil || *r.DOI == "" {
		return "", false
	}
	return *r.DOI, true
}

// DOILink returns the resolver URL for the record, or "" when it has no DOI.
func (r Record) DOILink() string {
	id, ok := r.ID()
	if !ok {
		return ""
	}
	return "https://doi.org/" + id
}

// Str returns a pointer to s. It keeps record literals in callers and tests short.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// StrOr returns *s, or "" when s is nil.
func StrOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntOr returns *n, or 0 when n is nil.
func IntOr(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// IntText returns the decimal form of *n and false when n is nil.
func IntText(n *int) (string, bool) {
	if n == nil {
		return "", false
	}
	return strconv.Itoa(*n), true
}
