package files

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	packageFields        = 8
	packageFieldsNoNotes = 7
)

// PackageFile reads package records from a semicolon-delimited file:
// id;street;city;state;zipcode;deadline;mass;note
type PackageFile struct {
	Path string
}

func NewPackageFile(path string) *PackageFile {
	return &PackageFile{Path: path}
}

func (f *PackageFile) ListPackages(ctx context.Context) ([]domain.PackageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("list packages: open %q: %w", f.Path, err)
	}
	defer file.Close()

	records, err := ReadPackages(file)
	if err != nil {
		return nil, fmt.Errorf("list packages: %q: %w", f.Path, err)
	}
	return records, nil
}

// ReadPackages parses package rows. The note column may be omitted.
func ReadPackages(r io.Reader) ([]domain.PackageRecord, error) {
	cr := newReader(r)

	var out []domain.PackageRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read packages: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(row) != packageFields && len(row) != packageFieldsNoNotes {
			return nil, fmt.Errorf("read packages: line %d: got %d fields, want %d", line, len(row), packageFields)
		}

		rec := domain.PackageRecord{
			ID:       strings.TrimSpace(row[0]),
			Street:   row[1],
			City:     row[2],
			State:    row[3],
			Zipcode:  row[4],
			Deadline: row[5],
			Mass:     row[6],
		}
		if len(row) == packageFields {
			rec.Note = row[7]
		}
		out = append(out, rec)
	}

	return out, nil
}
