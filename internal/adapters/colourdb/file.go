package colourdb

import (
	"context"
	"os"

	"palette/internal/core/colour"
	perr "palette/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

var readFile = os.ReadFile // seam

// fileRecord is one row of the YAML document
type fileRecord struct {
	Name     string `yaml:"name" validate:"required,uppercase"`
	R        int    `yaml:"r" validate:"gte=0,lte=255"`
	G        int    `yaml:"g" validate:"gte=0,lte=255"`
	B        int    `yaml:"b" validate:"gte=0,lte=255"`
	Sequence int    `yaml:"sequence" validate:"gte=0"`
}

// File reads colour records from a YAML document on disk
type File struct {
	path string
}

// NewFile returns a source backed by the YAML document at path
func NewFile(path string) *File { return &File{path: path} }

// FetchRecords implements colour.Source. Records come back in document
// order; the registry decides ordering and collisions
func (f *File) FetchRecords(ctx context.Context) ([]colour.Record, error) {
	data, err := readFile(f.path)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read colour records")
	}

	var rows []fileRecord
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "parse colour records")
	}

	out := make([]colour.Record, 0, len(rows))
	for i, row := range rows {
		if field, msg, ok := checkRecord(row); !ok {
			return nil, perr.WithField(perr.Validationf("record %d: %s", i, msg), field)
		}
		out = append(out, colour.Record{
			Name:     row.Name,
			Payload:  colour.RGB{R: uint8(row.R), G: uint8(row.G), B: uint8(row.B)},
			Sequence: row.Sequence,
		})
	}
	return out, nil
}
