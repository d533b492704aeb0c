// Package groupindex maps member identifiers to the zero-based index of the
// group (clade) that contains them. A grouping file has one group per line,
// members separated by commas; the line number is the group index.
package groupindex

import (
	"bufio"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Delimiter separates member identifiers within a grouping line.
const Delimiter = ","

// Index maps identifiers to group indices. It is read-only once Load returns.
type Index struct {
	members map[string]int
	groups  int
}

// Load reads a grouping file. If an identifier is listed on more than one
// line, the last line wins. Empty lines still consume a group index.
func Load(r io.Reader) (*Index, error) {
	idx := &Index{
		members: make(map[string]int),
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, pfx.Err(err)
		}

		if line == "" && err == io.EOF {
			break
		}

		for _, id := range SplitFields(Chomp(line), Delimiter) {
			idx.members[id] = idx.groups
		}
		idx.groups++

		if err == io.EOF {
			break
		}
	}

	return idx, nil
}

// Lookup returns the group index for id.
func (idx *Index) Lookup(id string) (int, bool) {
	g, ok := idx.members[id]
	return g, ok
}

// Len is the number of groups, i.e. lines, in the grouping file.
func (idx *Index) Len() int {
	return idx.groups
}

// Size is the number of distinct identifiers.
func (idx *Index) Size() int {
	return len(idx.members)
}

// Chomp strips one trailing line terminator: \r\n, \n or \r.
func Chomp(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2]
	}
	if strings.HasSuffix(line, "\n") || strings.HasSuffix(line, "\r") {
		return line[:len(line)-1]
	}

	return line
}

// SplitFields splits s on sep and drops trailing empty fields, so "a,b,," is
// {"a", "b"} and "" is empty. Interior empty fields are kept.
func SplitFields(s, sep string) []string {
	fields := strings.Split(s, sep)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}

	return fields
}
