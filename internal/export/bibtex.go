// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/citation-view/pkg/types"
)

// BibTeX writes one @article entry per record. Keys are the first author's
// leading name token plus the year ("Smith2019"), falling back to "ref";
// repeated keys get a letter suffix. Citation count and score go into note.
type BibTeX struct{}

func (BibTeX) Format() Format    { return FormatBibTeX }
func (BibTeX) Extension() string { return "bib" }

func (BibTeX) Serialize(recs []types.Record) ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]int)

	for i, r := range recs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		key := citationKey(r)
		if n := seen[key]; n > 0 {
			seen[key]++
			key += suffix(n)
		} else {
			seen[key] = 1
		}

		fmt.Fprintf(&buf, "@article{%s,\n", key)
		bibText(&buf, "author", r.FirstAuthor)
		bibText(&buf, "title", r.Title)
		bibText(&buf, "journal", r.Journal)
		if s, ok := types.IntText(r.YearPublished); ok {
			bibField(&buf, "year", s)
		}
		bibText(&buf, "doi", r.DOI)
		if link := r.DOILink(); link != "" {
			bibField(&buf, "url", link)
		}
		bibText(&buf, "abstract", r.Summary)
		if note := metricsNote(r); note != "" {
			bibField(&buf, "note", note)
		}
		buf.WriteString("}\n")
	}
	return buf.Bytes(), nil
}

func bibText(buf *bytes.Buffer, name string, v *string) {
	if v != nil && *v != "" {
		bibField(buf, name, *v)
	}
}

func bibField(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "  %s = {%s},\n", name, escapeBibTeX(flatten(value)))
}

var bibReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
)

// escapeBibTeX escapes characters that are special inside a braced value.
// The DOI and URL go through it too, which reference managers accept.
func escapeBibTeX(s string) string {
	return bibReplacer.Replace(s)
}

func citationKey(r types.Record) string {
	var b strings.Builder
	if r.FirstAuthor != nil {
		for _, ch := range firstToken(*r.FirstAuthor) {
			if ch < unicode.MaxASCII && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
				b.WriteRune(ch)
			}
		}
	}
	if b.Len() == 0 {
		b.WriteString("ref")
	}
	if s, ok := types.IntText(r.YearPublished); ok {
		b.WriteString(s)
	}
	return b.String()
}

func firstToken(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// suffix maps 1, 2, ... to "b", "c", ... and wraps to "z1", "z2" past z.
func suffix(n int) string {
	if n < 25 {
		return string(rune('a' + n))
	}
	return fmt.Sprintf("z%d", n-24)
}
