package aggregate

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/cladesum/groupindex"
)

func loadIndex(t *testing.T, groups string) *groupindex.Index {
	t.Helper()

	idx, err := groupindex.Load(strings.NewReader(groups))
	if err != nil {
		t.Fatal(err)
	}

	return idx
}

func TestConsume(t *testing.T) {
	agg := New(loadIndex(t, "a,b\nc\n"))
	if err := agg.Consume(strings.NewReader("ID\tS1\tS2\na\t1.0\t2.0\nb\t3.0\t4.0\nc\t5.0\t6.0\n")); err != nil {
		t.Fatal(err)
	}

	table := agg.Result()
	if !reflect.DeepEqual(table.Header, []string{"S1", "S2"}) {
		t.Fatalf("Header: %#v", table.Header)
	}

	expected := map[int][]float64{
		0: {4, 6},
		1: {5, 6},
	}
	if !reflect.DeepEqual(table.Sums, expected) {
		t.Fatalf("Sums: got %+v, expected %+v", table.Sums, expected)
	}

	if table.Rows != 3 {
		t.Errorf("Rows: got %d, expected 3", table.Rows)
	}
}

func TestConsumeSumsOnlyMembers(t *testing.T) {
	// Groups 0 and 2 receive rows; group 1 and 3 do not.
	agg := New(loadIndex(t, "a\nb\nc,d\ne\n"))
	input := strings.Join([]string{
		"MAG\tS1\tS2\tS3",
		"c\t1.5\t0\t2",
		"a\t10\t20\t30",
		"d\t0.25\tNA\t-1",
		"c\t1\t1\t1",
	}, "\n")
	if err := agg.Consume(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	table := agg.Result()
	if got := table.Indices(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("Indices: got %v", got)
	}
	if table.MaxIndex() != 2 {
		t.Errorf("MaxIndex: got %d", table.MaxIndex())
	}

	for g, expected := range map[int][]float64{
		0: {10, 20, 30},
		2: {2.75, 1, 2},
	} {
		for k := range expected {
			if math.Abs(table.Sums[g][k]-expected[k]) > 1e-12 {
				t.Errorf("group %d column %d: got %v, expected %v", g, k, table.Sums[g][k], expected[k])
			}
		}
	}
}

func TestConsumeCoercion(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	if err := agg.Consume(strings.NewReader("ID\tS1\tS2\na\tNA\t2\na\t1\t\n")); err != nil {
		t.Fatal(err)
	}

	if got := agg.Result().Sums[0]; !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("got %v, expected [1 2]", got)
	}
}

func TestConsumeShortRow(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	if err := agg.Consume(strings.NewReader("ID\tS1\tS2\tS3\na\t1\na\t1\t1\t\t\n")); err != nil {
		t.Fatal(err)
	}

	if got := agg.Result().Sums[0]; !reflect.DeepEqual(got, []float64{2, 1, 0}) {
		t.Errorf("got %v, expected [2 1 0]", got)
	}
}

func TestConsumeUnknownIdentifier(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	err := agg.Consume(strings.NewReader("ID\tS1\na\t1\nz\t2\n"))
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}

	var uie *UnknownIdentifierError
	if !errors.As(err, &uie) {
		t.Fatalf("expected *UnknownIdentifierError, got %T", err)
	}
	if uie.ID != "z" || uie.Line != 3 {
		t.Errorf("got %+v, expected ID z on line 3", uie)
	}
}

func TestConsumeBlankLineFails(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	err := agg.Consume(strings.NewReader("ID\tS1\na\t1\n\na\t2\n"))
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestConsumeRowTooWide(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	err := agg.Consume(strings.NewReader("ID\tS1\na\t1\t2\n"))
	if !errors.Is(err, ErrRowTooWide) {
		t.Fatalf("expected ErrRowTooWide, got %v", err)
	}
}

func TestConsumeEmpty(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	if err := agg.Consume(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}

func TestConsumeHeaderOnly(t *testing.T) {
	agg := New(loadIndex(t, "a\n"))
	if err := agg.Consume(strings.NewReader("ID\tS1\tS2\r\n")); err != nil {
		t.Fatal(err)
	}

	table := agg.Result()
	if !reflect.DeepEqual(table.Header, []string{"S1", "S2"}) {
		t.Errorf("Header: %#v", table.Header)
	}
	if len(table.Sums) != 0 || table.MaxIndex() != -1 {
		t.Errorf("expected no groups, got %+v", table.Sums)
	}
}

func TestConsumeDelimiter(t *testing.T) {
	agg := New(loadIndex(t, "a,b\n"))
	agg.SetDelimiter(',')
	if err := agg.Consume(strings.NewReader("ID,S1\na,1\nb,2\n")); err != nil {
		t.Fatal(err)
	}

	if got := agg.Result().Sums[0]; !reflect.DeepEqual(got, []float64{3}) {
		t.Errorf("got %v, expected [3]", got)
	}
}

func TestSummarize(t *testing.T) {
	table := &Table{
		Header: []string{"S1", "S2"},
		Sums: map[int][]float64{
			0: {1, 10},
			4: {2, 0},
			2: {6, 5},
		},
	}

	summaries, err := table.Summarize()
	if err != nil {
		t.Fatal(err)
	}

	expected := []ColumnSummary{
		{Sample: "S1", Clades: 3, Total: 9, Mean: 3, Median: 2, Max: 6},
		{Sample: "S2", Clades: 3, Total: 15, Mean: 5, Median: 5, Max: 10},
	}
	if !reflect.DeepEqual(summaries, expected) {
		t.Fatalf("\ngot      %+v\nexpected %+v", summaries, expected)
	}

	empty := &Table{Header: []string{"S1"}, Sums: map[int][]float64{}}
	if s, err := empty.Summarize(); err != nil || s != nil {
		t.Errorf("empty table: got %v, %v", s, err)
	}
}
