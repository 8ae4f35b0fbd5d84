// Package rewrite holds the text rules that turn a MariaDB dump into one
// MySQL accepts. Every rule is a pure string-to-string pass driven by a
// regular expression; nothing here parses SQL.
package rewrite

import "strings"

// Rule is a single rewrite pass over a whole dump document.
type Rule interface {
	// Name is the stable identifier used in logs and check reports.
	Name() string
	// Apply returns the rewritten document and one Finding per replaced span.
	// A rule with no matches returns doc unchanged and a nil slice.
	Apply(doc string) (string, []Finding)
}

// Finding records one replacement made by a rule.
type Finding struct {
	Rule   string `yaml:"rule"`
	Line   int    `yaml:"line"`
	Before string `yaml:"before"`
	After  string `yaml:"after"`
}

// Options toggles the rules that are not part of the default pipeline.
type Options struct {
	StripDatabaseCollation bool
}

// Pipeline is an ordered list of rules. Rule n sees the output of rule n-1.
type Pipeline []Rule

// Result is the outcome of running a pipeline over a document.
type Result struct {
	Output   string
	Changed  bool
	Findings []Finding
}

// Default returns the two rules every conversion runs, in the order they
// must run: column defaults first, then engine names.
func Default() Pipeline {
	return Pipeline{ColumnDefault{}, EngineName{}}
}

// New returns the default pipeline followed by any opt-in rules.
func New(opts Options) Pipeline {
	p := Default()
	if opts.StripDatabaseCollation {
		p = append(p, DatabaseCollation{})
	}
	return p
}

// Names lists the rule names in application order.
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p))
	for _, r := range p {
		names = append(names, r.Name())
	}
	return names
}

// Run applies every rule in order. Rules are never skipped; one that finds
// nothing passes its input through.
func (p Pipeline) Run(doc string) Result {
	out := doc
	var findings []Finding
	for _, r := range p {
		var f []Finding
		out, f = r.Apply(out)
		findings = append(findings, f...)
	}
	return Result{
		Output:   out,
		Changed:  out != doc,
		Findings: findings,
	}
}

// lineCounter maps byte offsets in doc to 1-based line numbers. Offsets
// must be passed in ascending order; each call only scans the bytes since
// the previous one.
type lineCounter struct {
	doc  string
	off  int
	line int
}

func newLineCounter(doc string) *lineCounter {
	return &lineCounter{doc: doc, line: 1}
}

func (c *lineCounter) at(off int) int {
	c.line += strings.Count(c.doc[c.off:off], "\n")
	c.off = off
	return c.line
}
