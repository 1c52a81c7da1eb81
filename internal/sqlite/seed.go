package sqlite

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// defaultSeed is the category list used when no seed file is configured.
//
//go:embed categories.csv
var defaultSeed []byte

// seedNameColumn is the header of the required column in a seed stream.
const seedNameColumn = "name"

// DefaultSeed returns a reader over the built-in category list.
func DefaultSeed() io.Reader {
	return bytes.NewReader(defaultSeed)
}

// parseSeed reads a delimited record stream with a header row and returns the
// value of its name column for every record, in order. The whole stream is
// read before anything is returned so a malformed source never reaches the
// database. Every failure wraps ErrSeedSource.
func parseSeed(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no seed stream", types.ErrSeedSource)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty seed stream", types.ErrSeedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", types.ErrSeedSource, err)
	}

	col := -1
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), seedNameColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: header has no %q column", types.ErrSeedSource, seedNameColumn)
	}

	var names []string
	seen := make(map[string]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrSeedSource, err)
		}
		line, _ := reader.FieldPos(0)
		if col >= len(record) {
			return nil, fmt.Errorf("%w: line %d: missing %s field", types.ErrSeedSource, line, seedNameColumn)
		}
		name := strings.TrimSpace(record[col])
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty %s", types.ErrSeedSource, line, seedNameColumn)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: line %d: duplicate category %q", types.ErrSeedSource, line, name)
		}
		seen[name] = true
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no category records", types.ErrSeedSource)
	}
	return names, nil
}
