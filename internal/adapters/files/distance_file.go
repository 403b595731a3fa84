package files

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"os"
)

// DistanceFile reads the distance table from a semicolon-delimited file:
// name;address;d0;d1;...;di where row i holds the distances to rows 0..i.
// Fields may be quoted and addresses may span lines inside quotes.
type DistanceFile struct {
	Path string
}

func NewDistanceFile(path string) *DistanceFile {
	return &DistanceFile{Path: path}
}

func (f *DistanceFile) ListLocations(ctx context.Context) ([]domain.LocationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("list locations: open %q: %w", f.Path, err)
	}
	defer file.Close()

	records, err := ReadLocations(file)
	if err != nil {
		return nil, fmt.Errorf("list locations: %q: %w", f.Path, err)
	}
	return records, nil
}

func ReadLocations(r io.Reader) ([]domain.LocationRecord, error) {
	cr := newReader(r)

	var out []domain.LocationRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read locations: %w", err)
		}

		if len(row) < 2 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read locations: line %d: want name and address, got %d fields", line, len(row))
		}

		out = append(out, domain.LocationRecord{
			Name:      row[0],
			Address:   row[1],
			Distances: row[2:],
		})
	}

	return out, nil
}
