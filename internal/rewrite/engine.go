package rewrite

import (
	"regexp"
	"strings"
)

// TargetEngine is the storage engine every rewritten table ends up on.
const TargetEngine = "InnoDB"

// sourceEngines is the closed set of engine names replaced by TargetEngine.
// TokunDB is a misspelling some dump tools emit for TokuDB.
var sourceEngines = []string{
	"XtraDB",
	"Aria",
	"MyISAM",
	"Blackhole",
	"Memory",
	"FEDERATED",
	"CSV",
	"ARCHIVE",
	"MRG_MyISAM",
	"S3",
	"Spider",
	"ColumnStore",
	"TokuDB",
	"TokunDB",
}

var reEngine = regexp.MustCompile(`(?i)ENGINE=(?:` + strings.Join(sourceEngines, "|") + `)\b`)

// EngineName normalises ENGINE= clauses naming a MariaDB-specific or
// alternative engine to ENGINE=InnoDB.
type EngineName struct{}

func (EngineName) Name() string { return "engine-name" }

func (r EngineName) Apply(doc string) (string, []Finding) {
	locs := reEngine.FindAllStringIndex(doc, -1)
	if len(locs) == 0 {
		return doc, nil
	}

	const repl = "ENGINE=" + TargetEngine
	var b strings.Builder
	b.Grow(len(doc))
	findings := make([]Finding, 0, len(locs))
	last := 0
	lines := newLineCounter(doc)

	for _, loc := range locs {
		b.WriteString(doc[last:loc[0]])
		b.WriteString(repl)
		last = loc[1]
		findings = append(findings, Finding{
			Rule:   r.Name(),
			Line:   lines.at(loc[0]),
			Before: doc[loc[0]:loc[1]],
			After:  repl,
		})
	}
	b.WriteString(doc[last:])

	return b.String(), findings
}
