package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kkennyy/call-what-ah/internal/model"
)

const version = "cwah v0.3.0"

var (
	cfgFile string
	verbose bool

	// set by PersistentPreRunE
	logger *zap.Logger
	config *model.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cwah",
	Short: "call-what-ah - what do I call this relative?",
	Long: `call-what-ah resolves a chain of family relations ("father's older
brother's son") to the kinship term you would use for that person, in
Standard Mandarin or a regional dialect.

When the chain is ambiguous (is the brother older or younger? is the cousin
older than you?) it asks a question instead of guessing. Dialect terms carry
their sources and a confidence level; uncited dialect terms never replace
the standard term silently.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of call-what-ah.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.cwah/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".cwah"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CWAH_LLM_API_KEY -> llm.api_key
	viper.SetEnvPrefix("CWAH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range []string{
		"defaults.dialect", "defaults.sex",
		"llm.provider", "llm.model", "llm.api_key", "llm.base_url",
		"cache.dir", "prefs.path", "output.format",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setup builds the logger and loads the configuration for every command
func setup(cmd *cobra.Command, args []string) error {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config = cfg

	logger.Debug("configuration loaded",
		zap.String("config_file", viper.ConfigFileUsed()),
		zap.String("dialect", cfg.Defaults.Dialect),
		zap.String("llm_provider", cfg.LLM.Provider))
	return nil
}

// loadConfig overlays viper's sources on the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
