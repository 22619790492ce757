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
	"github.com/inodb/ortho-gaf/internal/gaf"
	"github.com/inodb/ortho-gaf/internal/gpi"
	"github.com/inodb/ortho-gaf/internal/ortho"
	"github.com/inodb/ortho-gaf/internal/output"
	"github.com/inodb/ortho-gaf/internal/transfer"
)

type convertOptions struct {
	sourceTaxon string
	targetTaxon string
	namespaces  []string
	reference   string
	outputDir   string
	workers     int
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Translate source-species annotations via ortholog pairs",
		Long: `Translate annotations from the source species to the target species
over the Alliance ortholog correspondence. Inputs (orthology table,
source GAF, target GPI) are staged automatically; the output is a
gzipped bulk GAF plus an uncompressed sample under the same ordering.`,
		Example: `  # Rat (RGD) annotations to mouse (MGI), the default pairing
  ortho-gaf convert

  # Explicit taxa and a custom output directory
  ortho-gaf convert --source-taxon NCBITaxon:10116 --target-taxon NCBITaxon:10090 --output ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVar(&opts.sourceTaxon, "source-taxon", "NCBITaxon:10116", "Source species taxon curie")
	cmd.Flags().StringVar(&opts.targetTaxon, "target-taxon", "NCBITaxon:10090", "Target species taxon curie")
	cmd.Flags().StringSliceVar(&opts.namespaces, "namespaces", []string{"RGD", "UniProtKB"}, "Subject namespaces eligible for transfer")
	cmd.Flags().StringVar(&opts.reference, "ortho-reference", "GO_REF:0000096", "Reference curie recorded on transferred annotations")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Output directory (default: <data-dir>/GAF_OUTPUT)")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Translation workers (1 = sequential)")

	return cmd
}

func runConvert(opts convertOptions) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	target, err := assoc.ParseCurie(opts.targetTaxon)
	if err != nil {
		return fmt.Errorf("parse target taxon: %w", err)
	}
	source, err := assoc.ParseCurie(opts.sourceTaxon)
	if err != nil {
		return fmt.Errorf("parse source taxon: %w", err)
	}
	reference, err := assoc.ParseCurie(opts.reference)
	if err != nil {
		return fmt.Errorf("parse ortho reference: %w", err)
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
	logger.Debug("run started", zap.String("run_id", manifest.RunID()))

	orthoPath, err := stage(stager, manifest, "ORTHO", viper.GetString("urls.alliance_orthology"))
	if err != nil {
		return err
	}
	gafPath, err := stage(stager, manifest, "GAF_"+sourceProvider, viper.GetString("urls.gaf."+strings.ToLower(sourceProvider)))
	if err != nil {
		return err
	}
	gpiPath, err := stage(stager, manifest, "GPI_"+targetProvider, viper.GetString("urls.gpi."+strings.ToLower(targetProvider)))
	if err != nil {
		return err
	}

	genes, err := gpi.Load(gpiPath)
	if err != nil {
		return fmt.Errorf("load gene metadata: %w", err)
	}
	logger.Info("gene metadata loaded", zap.Int("genes", genes.Len()))

	mapping, err := ortho.Load(orthoPath, target, source)
	if err != nil {
		return fmt.Errorf("load orthology: %w", err)
	}
	mapping = mapping.FilterByGenes(genes, targetProvider)
	logger.Info("correspondence map built", zap.Int("pairs", len(mapping)))

	parser, err := gaf.NewParser(gafPath)
	if err != nil {
		return err
	}
	defer parser.Close()
	parser.SetFilter(gaf.FilterOptions{
		Namespaces:                opts.namespaces,
		ExcludeProvidedBy:         targetProvider,
		ExcludeExperimental:       true,
		RequireReferenceNamespace: "PMID",
	})

	ctx := transfer.ContextForTaxa(target, source, providers, reference, assoc.ECOSequenceOrthology)
	tr := transfer.New(ctx)
	tr.SetLogger(logger)

	// Skip unmapped subjects before the engine sees them; the engine
	// applies the same rule, this just avoids cloning doomed records.
	stream := transfer.MappedOnly(parser, mapping)

	var anns []*assoc.Association
	if opts.workers > 1 {
		anns, err = tr.TranslateParallel(stream, mapping, genes, opts.workers)
	} else {
		anns, err = tr.Translate(stream, mapping, genes)
	}
	if err != nil {
		return fmt.Errorf("translate annotations: %w", err)
	}

	outDir := opts.outputDir
	if outDir == "" {
		outDir = filepath.Join(stager.Root(), "GAF_OUTPUT")
	}
	bulk, sample, err := output.WriteArtifacts(outDir, targetProvider, sourceProvider, anns, nil)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	logger.Info("conversion complete",
		zap.Int("records", len(anns)),
		zap.String("bulk", bulk),
		zap.String("sample", sample))
	return nil
}
