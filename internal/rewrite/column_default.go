package rewrite

import (
	"regexp"
	"strings"
	"unicode"
)

// reColumnDefault finds text-typed column definitions whose default is the
// current_timestamp() function call. MySQL only accepts that default on
// temporal types.
//
// Groups: 1 = quoted column name plus trailing whitespace, 2 = nullability.
var reColumnDefault = regexp.MustCompile(`(?is)` +
	"(`[\\pL\\pN_]+`\\s+)" +
	`(?:varchar\(\d+\)|longtext|mediumtext|text)\s*` +
	`(?:(?:COLLATE|CHARACTER\s+SET)\s+[\pL\pN_]+\s*){0,2}` +
	`(NOT\s+NULL|NULL)?` +
	`\s+DEFAULT\s+current_timestamp\(\)`)

// reKeyClause marks where trailing column attributes stop when a key
// definition follows on the same line.
var reKeyClause = regexp.MustCompile(`(?i)\b(?:PRIMARY\s+KEY|UNIQUE\s+KEY|KEY)\b`)

const (
	timestampDefault        = "timestamp DEFAULT CURRENT_TIMESTAMP"
	timestampNotNullDefault = "timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP"
)

// ColumnDefault rewrites `DEFAULT current_timestamp()` on varchar/text
// columns into a timestamp column defaulting to CURRENT_TIMESTAMP.
type ColumnDefault struct{}

func (ColumnDefault) Name() string { return "column-default" }

func (r ColumnDefault) Apply(doc string) (string, []Finding) {
	locs := reColumnDefault.FindAllStringSubmatchIndex(doc, -1)
	if len(locs) == 0 {
		return doc, nil
	}

	var b strings.Builder
	b.Grow(len(doc))
	findings := make([]Finding, 0, len(locs))
	last := 0
	lines := newLineCounter(doc)

	for i, loc := range locs {
		start, end := loc[0], loc[1]

		// The trailing span never runs into the next match.
		limit := len(doc)
		if i+1 < len(locs) {
			limit = locs[i+1][0]
		}
		attrs, consumed := trailingAttrs(doc[end:limit])

		var nullable string
		if loc[4] >= 0 {
			nullable = doc[loc[4]:loc[5]]
		}

		repl := doc[loc[2]:loc[3]] + timestampDecl(nullable) + joinAttrs(attrs)
		b.WriteString(doc[last:start])
		b.WriteString(repl)
		last = end + consumed

		findings = append(findings, Finding{
			Rule:   r.Name(),
			Line:   lines.at(start),
			Before: doc[start:last],
			After:  repl,
		})
	}
	b.WriteString(doc[last:])

	return b.String(), findings
}

// trailingAttrs returns the attributes following the default expression and
// how many bytes of s they span. The span ends at the first line break, key
// clause or end of s; whitespace before that boundary is left in place.
func trailingAttrs(s string) (string, int) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if loc := reKeyClause.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	return strings.TrimLeftFunc(s, unicode.IsSpace), len(s)
}

func timestampDecl(nullable string) string {
	if strings.HasPrefix(strings.ToUpper(nullable), "NOT") {
		return timestampNotNullDefault
	}
	return timestampDefault
}

// joinAttrs puts a separator in front of attributes that would otherwise be
// glued onto CURRENT_TIMESTAMP.
func joinAttrs(attrs string) string {
	if attrs == "" {
		return ""
	}
	switch attrs[0] {
	case ',', ')', ';':
		return attrs
	}
	return " " + attrs
}
