package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bfv/dumpfixer/internal/converter"
	"github.com/bfv/dumpfixer/internal/rewrite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewCheckCmd builds and returns the 'check' cobra command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <dump.sql>",
		Short: "List the rewrites convert would make, without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			if err := viper.BindPFlag("rules.database_collation", cmd.Flags().Lookup("strip-db-collation")); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), args[0], cfg)
		},
	}

	cmd.Flags().StringP("format", "f", "text", "Report format: text or yaml")
	cmd.Flags().Bool("strip-db-collation", false, "Include the CREATE DATABASE collation rule")
	return cmd
}

// runCheck is the entry point for the check command.
func runCheck(w io.Writer, inputPath string, cfg *Config) error {
	log.Debug().Str("input", inputPath).Str("format", cfg.Format).Msg("check started")

	c := converter.New(dumpFS, rewrite.New(cfg.Rules.Options()))
	report, err := c.Check(inputPath)
	if err != nil {
		return fmt.Errorf("checking %q: %w", inputPath, err)
	}

	switch cfg.Format {
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshalling yaml: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	case "text", "":
		if len(report.Findings) == 0 {
			fmt.Fprintln(w, "No known incompatibilities found.")
			break
		}
		printFindingTable(w, report.Findings)
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	log.Debug().Int("findings", len(report.Findings)).Msg("check complete")
	return nil
}

// printFindingTable renders findings as a fixed-column table.
func printFindingTable(w io.Writer, findings []rewrite.Finding) {
	const (
		hRule   = "RULE"
		hLine   = "LINE"
		hBefore = "BEFORE"
		hAfter  = "AFTER"
	)

	rows := make([][4]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, [4]string{f.Rule, strconv.Itoa(f.Line), oneLine(f.Before), oneLine(f.After)})
	}

	// Determine column widths dynamically.
	wRule := len(hRule)
	wLine := len(hLine)
	wBefore := len(hBefore)
	for _, r := range rows {
		wRule = max(wRule, len(r[0]))
		wLine = max(wLine, len(r[1]))
		wBefore = max(wBefore, len(r[2]))
	}

	// Add padding between columns.
	wRule += 2
	wLine += 2
	wBefore += 2

	fmtRow := func(rule, line, before, after string) {
		fmt.Fprintf(w, "%-*s%-*s%-*s%s\n", wRule, rule, wLine, line, wBefore, before, after)
	}

	fmtRow(hRule, hLine, hBefore, hAfter)
	fmtRow(strings.Repeat("-", wRule-2), strings.Repeat("-", wLine-2), strings.Repeat("-", wBefore-2), strings.Repeat("-", len(hAfter)))

	for _, r := range rows {
		fmtRow(r[0], r[1], r[2], r[3])
	}
}

// oneLine collapses whitespace runs so a span fits in a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
