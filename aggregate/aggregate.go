// Package aggregate sums the sample columns of an abundance table into one
// accumulator per group, resolving each row's identifier through a group
// index.
package aggregate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/carbocation/cladesum/groupindex"
	"github.com/carbocation/pfx"
)

// DefaultDelimiter separates cells in an abundance table.
const DefaultDelimiter = '\t'

var (
	ErrUnknownIdentifier = errors.New("identifier not found in grouping file")
	ErrRowTooWide        = errors.New("row has more values than the header has columns")
	ErrNoHeader          = errors.New("abundance table is empty")
)

// UnknownIdentifierError is returned when a row's identifier has no group.
// Blank lines carry an empty ID.
type UnknownIdentifierError struct {
	ID   string
	Line int
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("line %d: identifier %q not found in grouping file", e.Line, e.ID)
}

func (e *UnknownIdentifierError) Unwrap() error {
	return ErrUnknownIdentifier
}

// Lookuper resolves an identifier to its group index.
type Lookuper interface {
	Lookup(id string) (int, bool)
}

// Table holds the column header and the per-group column sums. Sums is sparse:
// only groups with at least one row have an entry.
type Table struct {
	Header []string
	Sums   map[int][]float64

	// Rows is the number of body rows that were accumulated
	Rows int
}

// MaxIndex returns the largest group index present, or -1 if there is none.
func (t *Table) MaxIndex() int {
	max := -1
	for g := range t.Sums {
		if g > max {
			max = g
		}
	}

	return max
}

// Indices returns the group indices present, ascending.
func (t *Table) Indices() []int {
	out := make([]int, 0, len(t.Sums))
	for g := range t.Sums {
		out = append(out, g)
	}
	sort.Ints(out)

	return out
}

// Aggregator accumulates one abundance table. It is not safe for concurrent
// use.
type Aggregator struct {
	groups    Lookuper
	delimiter string
	table     *Table
	line      int
}

// New returns an Aggregator that resolves row identifiers through groups and
// splits cells on tabs.
func New(groups Lookuper) *Aggregator {
	return &Aggregator{
		groups:    groups,
		delimiter: string(DefaultDelimiter),
		table: &Table{
			Sums: make(map[int][]float64),
		},
	}
}

// SetDelimiter overrides the tab delimiter. Call before Consume.
func (a *Aggregator) SetDelimiter(delim rune) {
	a.delimiter = string(delim)
}

// Consume streams an abundance table. The first line is the header; every
// later line is added into the accumulator of its identifier's group. Consume
// stops at the first error.
func (a *Aggregator) Consume(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return pfx.Err(err)
		}

		if line == "" && err == io.EOF {
			break
		}

		a.line++
		if a.line == 1 {
			a.setHeader(line)
		} else if rowErr := a.addRow(line); rowErr != nil {
			return rowErr
		}

		if err == io.EOF {
			break
		}
	}

	if a.line == 0 {
		return ErrNoHeader
	}

	return nil
}

func (a *Aggregator) setHeader(line string) {
	cells := groupindex.SplitFields(groupindex.Chomp(line), a.delimiter)
	if len(cells) > 0 {
		// The first cell labels the identifier column
		cells = cells[1:]
	}
	a.table.Header = cells
}

func (a *Aggregator) addRow(line string) error {
	cells := groupindex.SplitFields(groupindex.Chomp(line), a.delimiter)
	if len(cells) == 0 {
		return &UnknownIdentifierError{Line: a.line}
	}

	id, values := cells[0], cells[1:]
	g, ok := a.groups.Lookup(id)
	if !ok {
		return &UnknownIdentifierError{ID: id, Line: a.line}
	}

	n := len(a.table.Header)
	if len(values) > n {
		return fmt.Errorf("line %d: %d values for %d columns: %w", a.line, len(values), n, ErrRowTooWide)
	}

	sums, exists := a.table.Sums[g]
	if !exists {
		sums = make([]float64, n)
		a.table.Sums[g] = sums
	}

	for k, v := range values {
		sums[k] += ParseValue(v)
	}
	a.table.Rows++

	return nil
}

// Result returns the accumulated table. It is shared with the Aggregator, so
// it should be treated as read-only.
func (a *Aggregator) Result() *Table {
	return a.table
}
