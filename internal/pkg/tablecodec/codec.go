// Package tablecodec reads and writes indicator tables as commented CSV.
//
// Layout:
//
//	# <description>
//	# Unit: <unit>
//	entity,entity_code,year,value
//	China,CN,2020,1411100000
//
// Numbers are always written with a '.' decimal separator and the shortest
// representation that parses back to the same float64.
package tablecodec

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ougirez/demostats/internal/domain"
)

const (
	commentPrefix = "#"
	unitPrefix    = "Unit:"
)

var Header = []string{"entity", "entity_code", "year", "value"}

// Encode writes t to w. Observations keep their order.
func Encode(w io.Writer, t *domain.Table) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s %s\n", commentPrefix, oneLine(t.Description)); err != nil {
		return fmt.Errorf("failed to write description: %w", err)
	}
	if _, err := fmt.Fprintf(bw, "%s %s %s\n", commentPrefix, unitPrefix, oneLine(t.Unit)); err != nil {
		return fmt.Errorf("failed to write unit: %w", err)
	}

	cw := csv.NewWriter(bw)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(Header))
	for _, obs := range t.Observations {
		row[0] = obs.EntityName
		row[1] = obs.EntityCode
		row[2] = strconv.Itoa(obs.Year)
		row[3] = FormatValue(obs.Value)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}

	return bw.Flush()
}

// Decode reads a table written by Encode. Rows whose year or value cannot be
// parsed are dropped; a missing header is an error.
func Decode(r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	table := &domain.Table{}

	if err := readMeta(br, table); err != nil {
		return nil, err
	}

	// Comments are only read ahead of the header: an entity name may start
	// with '#' and csv.Writer does not quote it.
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// malformed row
				continue
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		obs, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		table.Observations = append(table.Observations, obs)
	}

	return table, nil
}

// FormatValue renders v independently of the host locale.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func readMeta(br *bufio.Reader, table *domain.Table) error {
	seenDescription := false
	for {
		next, err := br.Peek(1)
		if err != nil || string(next) != commentPrefix {
			return nil
		}

		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read comment: %w", err)
		}

		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimRight(line, "\r\n"), commentPrefix))
		switch {
		case strings.HasPrefix(text, unitPrefix):
			table.Unit = strings.TrimSpace(strings.TrimPrefix(text, unitPrefix))
		case !seenDescription:
			table.Description = text
			seenDescription = true
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

type columns struct {
	entity, code, year, value int
}

func columnIndexes(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	var (
		cols    columns
		missing []string
	)
	lookup := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}
	cols.entity = lookup(Header[0])
	cols.code = lookup(Header[1])
	cols.year = lookup(Header[2])
	cols.value = lookup(Header[3])

	if len(missing) > 0 {
		return columns{}, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols columns) (domain.Observation, bool) {
	field := func(i int) (string, bool) {
		if i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}

	entity, ok1 := field(cols.entity)
	code, ok2 := field(cols.code)
	yearStr, ok3 := field(cols.year)
	valueStr, ok4 := field(cols.value)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.Observation{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return domain.Observation{}, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.Observation{}, false
	}

	return domain.Observation{
		EntityName: entity,
		EntityCode: code,
		Year:       year,
		Value:      value,
	}, true
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
