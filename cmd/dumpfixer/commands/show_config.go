package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewShowConfigCmd builds and returns the 'config' cobra command.
func NewShowConfigCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration merged from defaults, the --config file and
DUMPFIXER_* environment variables. The output can be saved and passed
back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runShowConfig(cmd.OutOrStdout(), cfg, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write output to file instead of stdout")
	return cmd
}

// runShowConfig is the entry point for the config command.
func runShowConfig(stdout io.Writer, cfg *Config, outputPath string) (err error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling yaml: %w", err)
	}

	// Resolve output writer.
	w := stdout
	if outputPath != "" {
		f, cerr := dumpFS.Create(outputPath)
		if cerr != nil {
			return fmt.Errorf("creating output file %q: %w", outputPath, cerr)
		}
		bw := bufio.NewWriter(f)
		w = bw
		log.Debug().Str("path", outputPath).Msg("writing to file")
		defer func() {
			if ferr := bw.Flush(); ferr != nil && err == nil {
				err = fmt.Errorf("flushing %q: %w", outputPath, ferr)
			}
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %q: %w", outputPath, cerr)
			}
		}()
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
