// Package codec reads and writes matrices as JSON or TOML documents.
//
// A document carries an optional name and the rows of the matrix:
//
//	{"name": "rotation", "rows": [[0, -1], [1, 0]]}
//
//	name = "rotation"
//	rows = [[0, -1], [1, 0]]
//
// JSON input may also be a bare array of rows. Shape validation is delegated
// to package matrix, so ragged rows surface as [matrix.ErrRaggedRows].
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"

	"github.com/viktori/matteray/pkg/matrix"
)

var (
	// ErrUnknownFormat is returned for a file extension or format name that
	// has no codec.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrMalformed is returned when a document cannot be decoded.
	ErrMalformed = errors.New("malformed document")
)

// json keeps full float precision; ConfigFastest truncates to six digits.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
)

// ParseFormat accepts "json" or "toml" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, TOML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Document is a decoded matrix with its name.
type Document[E any] struct {
	Name   string
	Matrix *matrix.Matrix[E]
}

type wireDoc[E any] struct {
	Name string `json:"name,omitempty" toml:"name,omitempty"`
	Rows [][]E  `json:"rows" toml:"rows"`
}

func (d wireDoc[E]) document() (Document[E], error) {
	m, err := matrix.New(d.Rows...)
	if err != nil {
		return Document[E]{}, err
	}
	return Document[E]{Name: d.Name, Matrix: m}, nil
}

func toWire[E any](doc Document[E]) wireDoc[E] {
	rows := doc.Matrix.Slice2D()
	if rows == nil {
		rows = [][]E{}
	}
	return wireDoc[E]{Name: doc.Name, Rows: rows}
}

// ReadJSON decodes a JSON document from r.
func ReadJSON[E any](r io.Reader) (Document[E], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document[E]{}, err
	}
	trimmed := bytes.TrimSpace(data)

	var wire wireDoc[E]
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &wire.Rows)
	} else {
		err = json.Unmarshal(trimmed, &wire)
	}
	if err != nil {
		return Document[E]{}, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	return wire.document()
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON[E any](w io.Writer, doc Document[E]) error {
	data, err := json.MarshalIndent(toWire(doc), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadTOML decodes a TOML document from r.
func ReadTOML[E any](r io.Reader) (Document[E], error) {
	var wire wireDoc[E]
	if _, err := toml.NewDecoder(r).Decode(&wire); err != nil {
		return Document[E]{}, fmt.Errorf("%w: toml: %v", ErrMalformed, err)
	}
	return wire.document()
}

// WriteTOML encodes doc as TOML.
func WriteTOML[E any](w io.Writer, doc Document[E]) error {
	return toml.NewEncoder(w).Encode(toWire(doc))
}

// Read decodes r in the given format.
func Read[E any](r io.Reader, f Format) (Document[E], error) {
	switch f {
	case JSON:
		return ReadJSON[E](r)
	case TOML:
		return ReadTOML[E](r)
	}
	return Document[E]{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Write encodes doc in the given format.
func Write[E any](w io.Writer, f Format, doc Document[E]) error {
	switch f {
	case JSON:
		return WriteJSON(w, doc)
	case TOML:
		return WriteTOML(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ImportFile reads a document, choosing the format from the extension.
// Documents without a name are named after the file.
func ImportFile[E any](path string) (Document[E], error) {
	f, err := FormatOf(path)
	if err != nil {
		return Document[E]{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Document[E]{}, err
	}
	defer file.Close()

	doc, err := Read[E](file, f)
	if err != nil {
		return Document[E]{}, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// ExportFile writes doc to path, choosing the format from the extension.
func ExportFile[E any](path string, doc Document[E]) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
