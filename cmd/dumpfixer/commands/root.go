package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the dumpfixer command tree.
func NewRootCmd(version string) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "dumpfixer",
		Short:         "Rewrite MariaDB SQL dumps so they import into MySQL",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
				return err
			}
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			InitLogging(viper.GetBool("verbose"))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.AddCommand(NewConvertCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewShowConfigCmd())

	return rootCmd
}
