package export

import (
	"bytes"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-view/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// CSL writes the records as a CSL-YAML list.
type CSL struct{}

func (CSL) Format() Format    { return FormatCSL }
func (CSL) Extension() string { return "yaml" }

func (CSL) Serialize(recs []types.Record) ([]byte, error) {
	items := make([]CSLItem, len(recs))
	for i, r := range recs {
		items[i] = toCSLItem(r, i)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toCSLItem converts a Record to a CSLItem. Records without a DOI get an
// id from their citation key and position.
func toCSLItem(r types.Record, pos int) CSLItem {
	item := CSLItem{
		Type:           "article-journal",
		Title:          types.StrOr(r.Title),
		ContainerTitle: types.StrOr(r.Journal),
		Abstract:       types.StrOr(r.Summary),
		DOI:            types.StrOr(r.DOI),
		URL:            r.DOILink(),
		Note:           metricsNote(r),
	}

	item.ID = item.DOI
	if item.ID == "" {
		item.ID = citationKey(r) + "-" + strconv.Itoa(pos+1)
	}

	if r.FirstAuthor != nil && strings.TrimSpace(*r.FirstAuthor) != "" {
		item.Author = []CSLName{parseAuthorName(*r.FirstAuthor)}
	}

	if r.YearPublished != nil {
		item.Issued = &CSLDate{DateParts: [][]int{{*r.YearPublished}}}
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// "Family, Given" is split on the comma; otherwise it splits on the last
// space: everything before is given, the last token is family. Single-token
// names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
