// Package template qualifies the column references of SQL fragments.
//
// Render scans a fragment written against a single table (a where clause, a
// formula, an order-by list) and prefixes every unqualified column identifier
// with the alias placeholder {@}. Literals, keywords, type names, function
// names, qualified identifiers and row-limiting clauses are left alone. A later
// step substitutes {@} with the real table alias (see Expand).
//
// The scan is a single forward pass with bounded look-ahead. It never fails:
// malformed input is copied through from the point where it stops lexing.
package template

import (
	"strings"

	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/token"
)

const (
	// Placeholder stands in for the table alias.
	Placeholder = "{@}"
	// Qualifier is written in front of every qualified column.
	Qualifier = Placeholder + "."
)

type frameKind int

const (
	frameGroup   frameKind = iota // grouping parentheses or a subquery
	frameCall                     // function arguments
	frameExtract                  // extract(field from expr)
	frameTrim                     // trim([spec] [chars] from expr)
	frameCast                     // cast(expr as type)
)

// frame is one level of open parentheses.
type frame struct {
	kind     frameKind
	query    bool // SELECT seen directly inside
	sawFrom  bool // extract/trim past FROM
	sawAs    bool // cast past AS
	tableRef bool // enclosing table-reference mode, restored on close
}

// Render qualifies the unqualified column references in input.
//
// A nil dialect renders with dialect.Generic. types may be nil, in which case
// only the built-in type names are recognised.
func Render(input string, d core.Dialect, types core.TypeRegistry) string {
	if input == "" {
		return ""
	}
	if d == nil {
		d = dialect.Generic
	}
	r := &renderer{
		in:         input,
		d:          d,
		openQuote:  d.OpenQuote(),
		closeQuote: d.CloseQuote(),
	}
	if types != nil {
		r.types = types
	}
	if kd, ok := d.(core.KeywordDialect); ok {
		r.reserved = kd
	}
	r.out.Grow(len(input) + len(input)/2)
	return r.run()
}

type renderer struct {
	in  string
	pos int
	out strings.Builder

	d          core.Dialect
	types      token.TypeRegistry
	reserved   core.KeywordDialect
	openQuote  rune
	closeQuote rune

	lastKind token.Kind
	lastWord string // lowercased text of the last word token
	lastEnd  int    // input offset just past the last significant token

	afterDot    bool
	castNext    bool // previous token was ::
	expectAlias bool
	tableRef    bool // inside a FROM/JOIN table list
	query       bool // SELECT seen outside any parentheses
	clause      clauseState
	frames      []frame
}

func (r *renderer) run() string {
	for r.pos < len(r.in) {
		c, size := runeAt(r.in, r.pos)
		next, _ := runeAt(r.in, r.pos+size)

		switch {
		case token.IsWhitespace(c):
			r.copyTo(skipSpace(r.in, r.pos))
		case c == '-' && next == '-', c == '/' && next == '*':
			r.copyTo(scanComment(r.in, r.pos))
		case c == '\'':
			r.literal(token.STRING, scanString(r.in, r.pos))
		case token.IsDigit(c), c == '.' && token.IsDigit(next) && r.startsFraction():
			r.literal(token.NUMBER, scanNumber(r.in, r.pos))
		case r.isQuoteOpener(c):
			r.quotedIdentifier(c)
		case token.IsIdentifierStart(c):
			r.word()
		case c == '?':
			end := r.pos + 1
			for end < len(r.in) && token.IsDigit(rune(r.in[end])) {
				end++
			}
			r.literal(token.PARAM, end)
		case c == ':' && next == ':':
			r.clause.abort()
			r.copyTo(r.pos + 2)
			r.settle(token.PUNCT)
			r.castNext = true
		case c == ':' && token.IsIdentifierStart(next):
			r.literal(token.NAMED_PARAM, scanWord(r.in, r.pos+1))
		default:
			r.punct(c, size)
		}
	}
	return r.out.String()
}

func (r *renderer) copyTo(end int) {
	r.out.WriteString(r.in[r.pos:end])
	r.pos = end
}

// settle records a significant token that has just been written.
func (r *renderer) settle(kind token.Kind) {
	r.lastKind = kind
	r.lastWord = ""
	r.lastEnd = r.pos
	r.afterDot = false
	r.castNext = false
	r.expectAlias = false
}

func (r *renderer) top() *frame {
	if len(r.frames) == 0 {
		return nil
	}
	return &r.frames[len(r.frames)-1]
}

// startsFraction reports whether a '.' at pos begins a number such as .5
// rather than separating a qualifier from a name.
func (r *renderer) startsFraction() bool {
	if r.pos == 0 {
		return true
	}
	prev := r.in[:r.pos]
	last, _ := runeAt(prev, len(prev)-1)
	if last >= 0x80 {
		return false
	}
	return !token.IsIdentifierPart(last) && !strings.ContainsRune(")]}\"`", last)
}

func (r *renderer) isQuoteOpener(c rune) bool {
	return c == '`' || c == '"' || c == r.openQuote
}

func (r *renderer) literal(kind token.Kind, end int) {
	if kind == token.STRING {
		r.clause.abort()
	} else {
		r.clause.count()
	}
	r.copyTo(end)
	r.settle(kind)
}

func (r *renderer) punct(c rune, size int) {
	r.clause.abort()
	start := r.pos
	r.copyTo(r.pos + size)

	switch c {
	case '(':
		r.openFrame(start)
		r.settle(token.PUNCT)
	case ')':
		r.closeFrame()
		r.settle(token.PUNCT)
	case '.':
		r.settle(token.PUNCT)
		r.afterDot = true
	default:
		r.settle(token.PUNCT)
	}
}

func (r *renderer) openFrame(at int) {
	kind := frameGroup
	if r.lastEnd == at && r.lastKind.IsWord() {
		switch r.lastWord {
		case "extract":
			kind = frameExtract
		case "trim":
			kind = frameTrim
		case "cast", "try_cast":
			kind = frameCast
		default:
			if r.lastKind == token.IDENT {
				kind = frameCall
			}
		}
	}
	r.frames = append(r.frames, frame{kind: kind, tableRef: r.tableRef})
	r.tableRef = false
}

func (r *renderer) closeFrame() {
	if f := r.top(); f != nil {
		r.tableRef = f.tableRef
		r.frames = r.frames[:len(r.frames)-1]
	}
}

// quotedIdentifier handles `name` and the dialect's own quoted form.
// Backtick names are re-quoted with Dialect.Quote.
func (r *renderer) quotedIdentifier(c rune) {
	r.clause.abort()

	closeQuote := r.closeQuote
	if c != r.openQuote {
		closeQuote = c
	}
	end, ok := scanQuoted(r.in, r.pos, closeQuote)
	if !ok {
		r.copyTo(end)
		r.settle(token.QUOTED_IDENT)
		return
	}

	form := r.in[r.pos:end]
	if c == '`' {
		form = r.d.Quote(form)
	}
	if r.qualifies(end) {
		r.out.WriteString(Qualifier)
	}
	r.out.WriteString(form)
	r.pos = end
	r.settle(token.QUOTED_IDENT)
}

// qualifies reports whether a name ending at end is an unqualified column as
// far as position alone can tell.
func (r *renderer) qualifies(end int) bool {
	if r.afterDot || r.castNext || r.expectAlias || r.tableRef {
		return false
	}
	if end < len(r.in) && r.in[end] == '.' {
		return false
	}
	if f := r.top(); f != nil && f.kind == frameCast && f.sawAs {
		return false
	}
	return true
}

func (r *renderer) word() {
	start := r.pos

	if n, ok := token.StringLiteralStart(r.in, start); ok && n > 0 {
		r.literal(token.STRING, scanString(r.in, start+n))
		return
	}

	end := scanWord(r.in, start)
	lc := strings.ToLower(r.in[start:end])

	// t.col, or the t of t.col
	if r.afterDot || (end < len(r.in) && r.in[end] == '.') {
		r.clause.abort()
		r.emit(end, token.IDENT, lc)
		return
	}

	if r.clause != clauseNone && r.clause.word(lc) {
		r.emit(end, token.KEYWORD, lc)
		return
	}

	typedPrefix := token.IsTypedLiteralPrefix(lc)
	if typedPrefix && r.typedLiteral(end, lc) {
		return
	}

	if token.IsBooleanLiteral(lc) {
		r.pos = end
		r.out.WriteString(r.d.ToBooleanValueString(lc == "true"))
		r.settle(token.KEYWORD)
		r.lastWord = lc
		return
	}

	if token.IsKeyword(lc) {
		r.keyword(end, lc)
		return
	}

	if f := r.top(); f != nil {
		switch {
		case f.kind == frameExtract && !f.sawFrom,
			f.kind == frameTrim && !f.sawFrom && token.IsTrimSpec(lc),
			f.kind == frameCast && f.sawAs:
			r.emit(end, token.KEYWORD, lc)
			return
		}
	}

	switch {
	case r.castNext:
		r.emit(end, token.KEYWORD, lc)
	case !typedPrefix && token.IsTypeName(lc, r.types):
		r.emit(end, token.KEYWORD, lc)
	case end < len(r.in) && r.in[end] == '(':
		r.emit(end, token.IDENT, lc)
	case r.expectAlias, r.tableRef:
		r.emit(end, token.IDENT, lc)
	case r.reserved != nil && r.reserved.IsReservedWord(lc):
		r.emit(end, token.KEYWORD, lc)
	default:
		r.out.WriteString(Qualifier)
		r.emit(end, token.IDENT, lc)
	}
}

// emit copies the word ending at end verbatim.
func (r *renderer) emit(end int, kind token.Kind, lc string) {
	r.copyTo(end)
	r.settle(kind)
	r.lastWord = lc
}

// typedLiteral commits a typed-literal prefix ending at end when a string
// literal follows, possibly after a zone continuation. The literal itself is
// left for the main loop, except after interval, where it is copied together
// with its unit qualifier.
func (r *renderer) typedLiteral(end int, lc string) bool {
	prefixEnd := end
	if token.AllowsZoneContinuation(lc) {
		prefixEnd = scanZoneContinuation(r.in, end)
	}
	if !token.IsStringLiteralStart(r.in, skipSpace(r.in, prefixEnd)) {
		return false
	}
	r.clause.abort()
	r.copyTo(prefixEnd)
	r.settle(token.TYPED)

	if lc == "interval" {
		start := skipSpace(r.in, r.pos)
		n, _ := token.StringLiteralStart(r.in, start)
		r.copyTo(scanIntervalQualifier(r.in, scanString(r.in, start+n)))
		r.settle(token.STRING)
	}
	return true
}

func (r *renderer) keyword(end int, lc string) {
	r.emit(end, token.KEYWORD, lc)

	f := r.top()
	switch lc {
	case "from":
		switch {
		case f != nil && (f.kind == frameExtract || f.kind == frameTrim):
			f.sawFrom = true
		case f == nil && r.query, f != nil && f.query:
			r.tableRef = true
		}
		// otherwise "is distinct from" or substring(x from n)
	case "join":
		r.tableRef = true
	case "as":
		if f != nil && f.kind == frameCast {
			f.sawAs = true
		} else {
			r.expectAlias = true
		}
	case "select":
		r.tableRef = false
		if f != nil {
			f.query = true
		} else {
			r.query = true
		}
	case "fetch":
		r.tableRef = false
		r.clause = clauseFetch
	case "offset":
		r.tableRef = false
		r.clause = clauseOffset
	case "where", "on", "using", "group", "order", "having",
		"union", "intersect", "except", "limit", "window":
		r.tableRef = false
	}
}
