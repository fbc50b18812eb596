// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdiddy/citation-view/pkg/types"
)

// RIS writes one JOUR reference per record. Absent fields are omitted; the
// citation count and score go into a note.
//
//	TY  - JOUR
//	AU  - first author
//	PY  - year
//	TI  - title
//	JO  - journal
//	AB  - summary
//	DO  - doi
//	UR  - https://doi.org/<doi>
//	N1  - Citations: n; Score: s
//	ER  -
type RIS struct{}

func (RIS) Format() Format    { return FormatRIS }
func (RIS) Extension() string { return "ris" }

func (RIS) Serialize(recs []types.Record) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range recs {
		if i > 0 {
			buf.WriteString("\r\n")
		}
		risLine(&buf, "TY", "JOUR")
		risText(&buf, "AU", r.FirstAuthor)
		risInt(&buf, "PY", r.YearPublished)
		risText(&buf, "TI", r.Title)
		risText(&buf, "JO", r.Journal)
		risText(&buf, "AB", r.Summary)
		risText(&buf, "DO", r.DOI)
		if link := r.DOILink(); link != "" {
			risLine(&buf, "UR", link)
		}
		if note := metricsNote(r); note != "" {
			risLine(&buf, "N1", note)
		}
		buf.WriteString("ER  - \r\n")
	}
	return buf.Bytes(), nil
}

func risLine(buf *bytes.Buffer, tag, value string) {
	fmt.Fprintf(buf, "%s  - %s\r\n", tag, flatten(value))
}

func risText(buf *bytes.Buffer, tag string, v *string) {
	if v != nil && *v != "" {
		risLine(buf, tag, *v)
	}
}

func risInt(buf *bytes.Buffer, tag string, v *int) {
	if s, ok := types.IntText(v); ok {
		risLine(buf, tag, s)
	}
}

// metricsNote renders the search metrics that have no bibliographic tag.
func metricsNote(r types.Record) string {
	var parts []string
	if s, ok := types.IntText(r.Citations); ok {
		parts = append(parts, "Citations: "+s)
	}
	if s, ok := types.IntText(r.Score); ok {
		parts = append(parts, "Score: "+s)
	}
	return strings.Join(parts, "; ")
}

// flatten collapses line breaks and runs of whitespace; both formats are
// line-oriented.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
