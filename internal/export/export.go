// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes record sets to workbook, RIS, BibTeX and CSL-YAML
// files and hands the bytes to a Sink.
package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/citation-view/pkg/types"
)

// ErrUnknownFormat is returned for a format name with no serializer.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export file format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatRIS    Format = "ris"
	FormatBibTeX Format = "bib"
	FormatCSL    Format = "csl"
)

// Serializer turns an ordered record set into file bytes.
type Serializer interface {
	Format() Format
	Extension() string
	Serialize(recs []types.Record) ([]byte, error)
}

var serializers = map[Format]Serializer{
	FormatXLSX:   Workbook{},
	FormatRIS:    RIS{},
	FormatBibTeX: BibTeX{},
	FormatCSL:    CSL{},
}

// Lookup returns the serializer for f. "bibtex" and "yaml" are accepted as
// aliases of bib and csl.
func Lookup(f Format) (Serializer, error) {
	switch Format(strings.ToLower(string(f))) {
	case "bibtex":
		f = FormatBibTeX
	case "yaml":
		f = FormatCSL
	default:
		f = Format(strings.ToLower(string(f)))
	}
	s, ok := serializers[f]
	if !ok {
		return nil, fmt.Errorf("%w %q: use %s", ErrUnknownFormat, f, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the supported format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(serializers))
	for f := range serializers {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Error reports a failed export. Op is the stage that failed: "lookup",
// "serialize" or "deliver".
type Error struct {
	Format Format
	Op     string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Format, e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Qualifier names the scope of an export in its filename.
type Qualifier string

const (
	QualifierAll      Qualifier = "all"
	QualifierSelected Qualifier = "selected"
)

// QualifierFor returns "selected" when the exported set is a strict subset of
// the loaded records and "all" otherwise.
func QualifierFor(exported, loaded int) Qualifier {
	if exported < loaded {
		return QualifierSelected
	}
	return QualifierAll
}

// Filename builds "<product>-<qualifier>-<RFC 3339 timestamp>.<ext>".
func Filename(product string, q Qualifier, now time.Time, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", product, q, now.Format(time.RFC3339), ext)
}

// Result describes a completed export.
type Result struct {
	Format    Format
	Filename  string
	Qualifier Qualifier
	Count     int
	Data      []byte

	// Location is where the sink put the file, e.g. its path on disk.
	Location string
}

// Exporter serializes record sets and delivers them through a Sink.
type Exporter struct {
	Product string
	Sink    Sink

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Export serializes recs in format f. loaded is the size of the full record
// store and decides the filename qualifier. A nil Sink skips delivery.
func (e *Exporter) Export(f Format, recs []types.Record, loaded int) (Result, error) {
	s, err := Lookup(f)
	if err != nil {
		return Result{}, &Error{Format: f, Op: "lookup", Err: err}
	}

	data, err := s.Serialize(recs)
	if err != nil {
		return Result{}, &Error{Format: s.Format(), Op: "serialize", Err: err}
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	q := QualifierFor(len(recs), loaded)
	res := Result{
		Format:    s.Format(),
		Filename:  Filename(e.Product, q, now(), s.Extension()),
		Qualifier: q,
		Count:     len(recs),
		Data:      data,
	}

	if e.Sink == nil {
		return res, nil
	}
	loc, err := e.Sink.Deliver(res.Filename, data)
	if err != nil {
		return res, &Error{Format: s.Format(), Op: "deliver", Err: err}
	}
	res.Location = loc
	return res, nil
}
