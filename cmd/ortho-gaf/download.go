package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/ortho-gaf/internal/assoc"
	"github.com/inodb/ortho-gaf/internal/fetch"
	"github.com/inodb/ortho-gaf/internal/transfer"
)

func newDownloadCmd() *cobra.Command {
	var (
		sourceTaxon string
		targetTaxon string
		p2g         bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Prefetch and stage the input files for a taxon pair",
		Long: `Download the orthology table, the source species GAF and the target
species GPI into the staging directory. convert and p2g stage their
inputs on demand; download exists to front-load the network work, e.g.
before running on a machine without internet access.`,
		Example: `  # Stage the default rat-to-mouse inputs
  ortho-gaf download

  # Also stage the GOA protein annotation files
  ortho-gaf download --p2g`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(sourceTaxon, targetTaxon, p2g)
		},
	}

	cmd.Flags().StringVar(&sourceTaxon, "source-taxon", "NCBITaxon:10116", "Source species taxon curie")
	cmd.Flags().StringVar(&targetTaxon, "target-taxon", "NCBITaxon:10090", "Target species taxon curie")
	cmd.Flags().BoolVar(&p2g, "p2g", false, "Also stage the GOA protein annotation files")

	return cmd
}

func runDownload(sourceTaxon, targetTaxon string, p2g bool) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	target, err := assoc.ParseCurie(targetTaxon)
	if err != nil {
		return fmt.Errorf("parse target taxon: %w", err)
	}
	source, err := assoc.ParseCurie(sourceTaxon)
	if err != nil {
		return fmt.Errorf("parse source taxon: %w", err)
	}

	providers := transfer.DefaultProviders()
	targetProvider := providers.For(target)
	sourceProvider := providers.For(source)
	if targetProvider == "" || sourceProvider == "" {
		return fmt.Errorf("no provider known for taxon pair %s / %s", target, source)
	}

	stager, err := fetch.NewStager(viper.GetString("data_dir"))
	if err != nil {
		return err
	}
	stager.SetLogger(logger)

	manifest, err := fetch.OpenManifest(filepath.Join(stager.Root(), "manifest.db"))
	if err != nil {
		return err
	}
	defer manifest.Close()

	inputs := [][2]string{
		{"ORTHO", viper.GetString("urls.alliance_orthology")},
		{"GAF_" + sourceProvider, viper.GetString("urls.gaf." + strings.ToLower(sourceProvider))},
		{"GPI_" + targetProvider, viper.GetString("urls.gpi." + strings.ToLower(targetProvider))},
	}
	if p2g {
		inputs = append(inputs,
			[2]string{"GOA_taxon_" + target.Identity, viper.GetString("urls.goa." + target.Identity)},
			[2]string{"GOA_taxon_" + target.Identity + "_ISOFORM", viper.GetString("urls.goa_isoform." + target.Identity)},
		)
	}

	for _, input := range inputs {
		path, err := stage(stager, manifest, input[0], input[1])
		if err != nil {
			return err
		}
		logger.Info("staged", zap.String("key", input[0]), zap.String("path", path))
	}

	logger.Info("all inputs staged", zap.String("run_id", manifest.RunID()))
	return nil
}
