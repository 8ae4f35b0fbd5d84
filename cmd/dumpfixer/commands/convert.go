package commands

import (
	"fmt"

	"github.com/bfv/dumpfixer/internal/converter"
	"github.com/bfv/dumpfixer/internal/rewrite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dumpFS is the filesystem every command reads dumps from and writes them to.
var dumpFS = afero.NewOsFs()

// NewConvertCmd builds and returns the 'convert' cobra command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <dump.sql>",
		Short: "Write a MySQL-compatible copy of a MariaDB dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bind the cobra flags into viper so config file and env can supply them too.
			if err := viper.BindPFlag("output", cmd.Flags().Lookup("output")); err != nil {
				return err
			}
			if err := viper.BindPFlag("rules.database_collation", cmd.Flags().Lookup("strip-db-collation")); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runConvert(args[0], cfg)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default <dump>_mysql_compatible.sql)")
	cmd.Flags().Bool("strip-db-collation", false, "Drop charset/collation clauses from CREATE DATABASE")
	return cmd
}

// runConvert is the entry point for the convert command.
func runConvert(inputPath string, cfg *Config) error {
	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = converter.DefaultOutputPath(inputPath)
	}
	log.Debug().Str("input", inputPath).Str("output", outputPath).Msg("convert started")

	c := converter.New(dumpFS, rewrite.New(cfg.Rules.Options()))
	report, err := c.Convert(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("converting %q: %w", inputPath, err)
	}

	if report.Changed {
		log.Info().Str("input", inputPath).Int("rewrites", len(report.Findings)).Msg("changes applied")
	} else {
		log.Warn().Str("input", inputPath).
			Msg("no known MariaDB/MySQL incompatibilities found; output is identical to input")
	}
	log.Info().Str("input", inputPath).Str("output", outputPath).Msg("converted, ready to import into MySQL")
	return nil
}
