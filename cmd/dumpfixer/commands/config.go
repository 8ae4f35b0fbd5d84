package commands

import (
	"fmt"
	"strings"

	"github.com/bfv/dumpfixer/internal/rewrite"
	"github.com/spf13/viper"
)

// envPrefix scopes environment overrides, e.g. DUMPFIXER_RULES_DATABASE_COLLATION.
const envPrefix = "DUMPFIXER"

// Config is the effective configuration, merged from flags, environment and
// an optional YAML config file.
type Config struct {
	Verbose bool        `yaml:"verbose" mapstructure:"verbose"`
	Output  string      `yaml:"output,omitempty" mapstructure:"output"`
	Format  string      `yaml:"format" mapstructure:"format"`
	Rules   RulesConfig `yaml:"rules" mapstructure:"rules"`
}

// RulesConfig switches the optional rewrite rules on. The default rules
// always run.
type RulesConfig struct {
	DatabaseCollation bool `yaml:"database_collation" mapstructure:"database_collation"`
}

// Options maps the rule switches onto the rewrite package.
func (r RulesConfig) Options() rewrite.Options {
	return rewrite.Options{StripDatabaseCollation: r.DatabaseCollation}
}

// initConfig prepares viper. An explicit config file must exist and parse.
func initConfig(cfgFile string) error {
	viper.SetDefault("format", "text")
	viper.SetDefault("rules.database_collation", false)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %q: %w", cfgFile, err)
	}
	return nil
}

// loadConfig returns the merged configuration.
func loadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
