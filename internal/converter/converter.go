// Package converter reads a dump file, runs it through a rewrite pipeline and
// writes the result next to it.
package converter

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/bfv/dumpfixer/internal/rewrite"
)

var (
	// ErrInputNotFound is returned when the source dump does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrSameFile is returned when the destination would overwrite the source.
	ErrSameFile = errors.New("output path is the same as the input path")
	// ErrInvalidEncoding is returned when the source is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input file is not valid UTF-8")
)

// Report describes one conversion or check run.
type Report struct {
	Source      string            `yaml:"source"`
	Destination string            `yaml:"destination,omitempty"`
	Changed     bool              `yaml:"changed"`
	Findings    []rewrite.Finding `yaml:"findings"`
	BytesIn     int               `yaml:"bytes_in"`
	BytesOut    int               `yaml:"bytes_out"`
}

// Converter applies a rewrite pipeline to dump files on a filesystem.
type Converter struct {
	fs       afero.Fs
	pipeline rewrite.Pipeline
}

// New returns a Converter working on fs.
func New(fs afero.Fs, p rewrite.Pipeline) *Converter {
	return &Converter{fs: fs, pipeline: p}
}

// Convert rewrites src into dst. Nothing is written when src cannot be read,
// and dst is replaced atomically so a failed run never leaves it half written.
func (c *Converter) Convert(src, dst string) (*Report, error) {
	same, err := c.samePath(src, dst)
	if err != nil {
		return nil, err
	}
	if same {
		return nil, errors.Wrapf(ErrSameFile, "%s", dst)
	}

	report, res, err := c.run(src)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(c.fs, dst, []byte(res.Output), c.outputMode(src, dst)); err != nil {
		return nil, err
	}
	report.Destination = dst
	log.Debug().Str("path", dst).Int("bytes", report.BytesOut).Msg("output written")

	return report, nil
}

// Check runs the pipeline over src without writing anything.
func (c *Converter) Check(src string) (*Report, error) {
	report, _, err := c.run(src)
	return report, err
}

func (c *Converter) run(src string) (*Report, rewrite.Result, error) {
	doc, err := c.read(src)
	if err != nil {
		return nil, rewrite.Result{}, err
	}
	log.Debug().Str("path", src).Int("bytes", len(doc)).Strs("rules", c.pipeline.Names()).Msg("dump read")

	res := c.pipeline.Run(doc)
	for _, f := range res.Findings {
		log.Debug().Str("rule", f.Rule).Int("line", f.Line).Str("before", f.Before).Msg("rewrote")
	}

	return &Report{
		Source:   src,
		Changed:  res.Changed,
		Findings: res.Findings,
		BytesIn:  len(doc),
		BytesOut: len(res.Output),
	}, res, nil
}

func (c *Converter) read(path string) (string, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(ErrInputNotFound, "%s", path)
		}
		return "", errors.Wrapf(err, "reading %s", path)
	}
	if !utf8.Valid(data) {
		return "", errors.Wrapf(ErrInvalidEncoding, "%s", path)
	}
	return string(data), nil
}

// DefaultOutputPath names the output after the input:
// dump.sql becomes dump_mysql_compatible.sql in the same directory.
func DefaultOutputPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_mysql_compatible" + ext
}

// samePath reports whether a and b name the same file, either as equal
// paths or, when both exist, as the same file reached through a link.
func (c *Converter) samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, errors.Wrapf(err, "resolving %s", a)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, errors.Wrapf(err, "resolving %s", b)
	}
	if absA == absB {
		return true, nil
	}

	infoA, err := c.fs.Stat(a)
	if err != nil {
		return false, nil
	}
	infoB, err := c.fs.Stat(b)
	if err != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}

// outputMode returns the permissions for dst: those of an existing dst,
// else those of src, else 0644.
func (c *Converter) outputMode(src, dst string) os.FileMode {
	if info, err := c.fs.Stat(dst); err == nil {
		return info.Mode().Perm()
	}
	if info, err := c.fs.Stat(src); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
