package template

import "github.com/leapstack-labs/leapfrag/pkg/token"

// clauseState tracks progress through a row-limiting clause:
//
//	FETCH {FIRST|NEXT} <count> {ROW|ROWS} ONLY
//	OFFSET <count> {ROW|ROWS}
//
// The words FIRST, NEXT, ROW, ROWS and ONLY are not keywords. They are left
// unqualified only while the machine expects them.
type clauseState int

const (
	clauseNone        clauseState = iota
	clauseFetch                   // FETCH
	clauseFirstOrNext             // FETCH FIRST
	clauseCount                   // FETCH FIRST 10
	clauseRow                     // FETCH FIRST 10 ROWS
	clauseOffset                  // OFFSET
	clauseOffsetCount             // OFFSET 10
)

var clauseStateNames = [...]string{
	clauseNone:        "none",
	clauseFetch:       "fetch",
	clauseFirstOrNext: "first-or-next",
	clauseCount:       "count",
	clauseRow:         "row",
	clauseOffset:      "offset",
	clauseOffsetCount: "offset-count",
}

func (s clauseState) String() string {
	if int(s) < len(clauseStateNames) {
		return clauseStateNames[s]
	}
	return "unknown"
}

// word feeds a lowercased word to the machine. It reports whether the word
// belongs to the clause; otherwise the clause is abandoned and the caller
// processes the word under the general rules.
func (s *clauseState) word(lc string) bool {
	switch *s {
	case clauseFetch:
		if token.IsFetchFirstOrNext(lc) {
			*s = clauseFirstOrNext
			return true
		}
	case clauseCount:
		if token.IsFetchRow(lc) {
			*s = clauseRow
			return true
		}
	case clauseRow:
		if token.IsFetchOnly(lc) {
			*s = clauseNone
			return true
		}
	case clauseOffsetCount:
		if token.IsFetchRow(lc) {
			*s = clauseNone
			return true
		}
	}
	*s = clauseNone
	return false
}

// count feeds a number or parameter to the machine.
func (s *clauseState) count() {
	switch *s {
	case clauseFirstOrNext:
		*s = clauseCount
	case clauseOffset:
		*s = clauseOffsetCount
	default:
		*s = clauseNone
	}
}

// abort abandons any clause in progress.
func (s *clauseState) abort() {
	*s = clauseNone
}
