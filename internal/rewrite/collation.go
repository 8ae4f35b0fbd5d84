package rewrite

import (
	"regexp"
	"strings"
)

// reDatabaseCollation finds the charset/collation clause of a CREATE DATABASE
// statement. Group 1 is everything from CREATE DATABASE up to the clause.
var reDatabaseCollation = regexp.MustCompile(`(?is)(CREATE\s+DATABASE\b[^;]*?)` +
	`\s+DEFAULT\s+CHARACTER\s+SET\s+[\pL\pN_]+\s+COLLATE\s+[\pL\pN_]+`)

// DatabaseCollation drops `DEFAULT CHARACTER SET x COLLATE y` from CREATE
// DATABASE statements so the target server's defaults apply. Not part of the
// default pipeline.
type DatabaseCollation struct{}

func (DatabaseCollation) Name() string { return "database-collation" }

func (r DatabaseCollation) Apply(doc string) (string, []Finding) {
	locs := reDatabaseCollation.FindAllStringSubmatchIndex(doc, -1)
	if len(locs) == 0 {
		return doc, nil
	}

	var b strings.Builder
	b.Grow(len(doc))
	findings := make([]Finding, 0, len(locs))
	last := 0
	lines := newLineCounter(doc)

	for _, loc := range locs {
		// Only the clause itself is dropped; the statement head is kept.
		b.WriteString(doc[last:loc[3]])
		last = loc[1]
		findings = append(findings, Finding{
			Rule:   r.Name(),
			Line:   lines.at(loc[3]),
			Before: doc[loc[3]:loc[1]],
		})
	}
	b.WriteString(doc[last:])

	return b.String(), findings
}
