// Package main provides the ortho-gaf command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/ortho-gaf/internal/fetch"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ortho-gaf",
		Short: "Cross-species GO annotation transfer",
		Long: `ortho-gaf translates gene-function annotations (GAF) from a source
species into equivalent annotations for a target species, using
Alliance ortholog pairs or GPI cross-references as the gene
correspondence.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	root.PersistentFlags().String("data-dir", "", "Staging directory (default: ~/.ortho-gaf)")
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("data_dir", root.PersistentFlags().Lookup("data-dir"))

	root.AddCommand(newConvertCmd())
	root.AddCommand(newP2GCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() {
	viper.SetConfigName(".ortho-gaf")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("ORTHO_GAF")
	viper.AutomaticEnv()

	viper.SetDefault("urls.alliance_orthology",
		"https://fms.alliancegenome.org/download/ORTHOLOGY-ALLIANCE_COMBINED.json.gz")
	viper.SetDefault("urls.gaf.rgd",
		"https://current.geneontology.org/annotations/rgd.gaf.gz")
	viper.SetDefault("urls.gpi.mgi",
		"https://current.geneontology.org/annotations/mgi.gpi.gz")
	viper.SetDefault("urls.goa.10090",
		"https://ftp.ebi.ac.uk/pub/databases/GO/goa/MOUSE/goa_mouse.gaf.gz")
	viper.SetDefault("urls.goa_isoform.10090",
		"https://ftp.ebi.ac.uk/pub/databases/GO/goa/MOUSE/goa_mouse_isoform.gaf.gz")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	level := zapcore.InfoLevel
	if viper.GetBool("verbose") {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.StacktraceKey = ""
	return cfg.Build()
}

// stage downloads one input into the staging area (skipping files
// already present) and records it in the run manifest.
func stage(stager *fetch.Stager, manifest *fetch.Manifest, key, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no url configured for %s", key)
	}
	path, err := stager.EnsureGunzip(key, url)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", key, err)
	}
	if manifest != nil {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		if err := manifest.Record(key, url, path, size); err != nil {
			return "", err
		}
	}
	return path, nil
}
