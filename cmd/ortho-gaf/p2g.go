package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/ortho-gaf/internal/assoc"
	"github.com/inodb/ortho-gaf/internal/fetch"
	"github.com/inodb/ortho-gaf/internal/gaf"
	"github.com/inodb/ortho-gaf/internal/gpi"
	"github.com/inodb/ortho-gaf/internal/output"
	"github.com/inodb/ortho-gaf/internal/transfer"
)

type p2gOptions struct {
	taxon             string
	isoform           bool
	xrefNamespace     string
	reference         string
	evidenceCode      string
	sourceAttribution string
	targetAttribution string
	outputDir         string
}

func newP2GCmd() *cobra.Command {
	var opts p2gOptions

	cmd := &cobra.Command{
		Use:   "p2g",
		Short: "Translate protein annotations to gene annotations via GPI cross-references",
		Long: `Translate GOA protein annotations onto the genes that encode them,
using the cross-references embedded in the target species' GPI file as
the correspondence. Unlike convert, eligibility is discovered inside
the engine: proteins without a gene cross-reference simply produce no
output.`,
		Example: `  # GOA mouse protein annotations onto MGI genes
  ortho-gaf p2g

  # Include the isoform annotation file as a second pass
  ortho-gaf p2g --isoform`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runP2G(opts)
		},
	}

	cmd.Flags().StringVar(&opts.taxon, "taxon", "NCBITaxon:10090", "Target species taxon curie")
	cmd.Flags().BoolVar(&opts.isoform, "isoform", false, "Also translate the isoform annotation file")
	cmd.Flags().StringVar(&opts.xrefNamespace, "xref-namespace", "UniProtKB", "GPI cross-reference namespace to map from")
	cmd.Flags().StringVar(&opts.reference, "reference", "GO_REF:0000119", "Reference curie recorded on transferred annotations")
	cmd.Flags().StringVar(&opts.evidenceCode, "evidence-code", assoc.ECOSequenceOrthologyAuto.String(), "ECO term stamped on transferred annotations")
	cmd.Flags().StringVar(&opts.sourceAttribution, "source-attribution", "UniProt", "Attribution label rewritten on transfer")
	cmd.Flags().StringVar(&opts.targetAttribution, "target-attribution", "GO_Central", "Attribution label written in its place")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Output directory (default: <data-dir>/GAF_OUTPUT)")

	return cmd
}

func runP2G(opts p2gOptions) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	taxon, err := assoc.ParseCurie(opts.taxon)
	if err != nil {
		return fmt.Errorf("parse taxon: %w", err)
	}
	reference, err := assoc.ParseCurie(opts.reference)
	if err != nil {
		return fmt.Errorf("parse reference: %w", err)
	}
	evidenceCode, err := assoc.ParseCurie(opts.evidenceCode)
	if err != nil {
		return fmt.Errorf("parse evidence code: %w", err)
	}

	providers := transfer.DefaultProviders()
	targetProvider := providers.For(taxon)
	if targetProvider == "" {
		return fmt.Errorf("no provider known for taxon %s", taxon)
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

	gpiPath, err := stage(stager, manifest, "GPI_"+targetProvider, viper.GetString("urls.gpi."+strings.ToLower(targetProvider)))
	if err != nil {
		return err
	}
	goaPath, err := stage(stager, manifest, "GOA_taxon_"+taxon.Identity, viper.GetString("urls.goa."+taxon.Identity))
	if err != nil {
		return err
	}

	genes, err := gpi.Load(gpiPath)
	if err != nil {
		return fmt.Errorf("load gene metadata: %w", err)
	}
	xrefs, err := gpi.LoadXrefs(gpiPath, opts.xrefNamespace)
	if err != nil {
		return fmt.Errorf("load gpi xrefs: %w", err)
	}
	logger.Info("gene metadata loaded",
		zap.Int("genes", genes.Len()),
		zap.Int("xrefs", len(xrefs)))

	// The engine maps to local identities; strip the gene namespace
	// from the xref targets.
	mapping := make(map[string]string, len(xrefs))
	for xref, gene := range xrefs {
		mapping[xref] = strings.TrimPrefix(gene, targetProvider+":")
	}

	tr := transfer.New(transfer.Context{
		TargetTaxon:       taxon,
		SourceTaxon:       taxon,
		Reference:         reference,
		EvidenceCode:      evidenceCode,
		TargetNamespace:   targetProvider,
		SourceAttribution: opts.sourceAttribution,
		TargetAttribution: opts.targetAttribution,
	})
	tr.SetLogger(logger)

	outDir := opts.outputDir
	if outDir == "" {
		outDir = filepath.Join(stager.Root(), "GAF_OUTPUT")
	}

	if err := runP2GPass(tr, goaPath, opts.xrefNamespace, mapping, genes, outDir, targetProvider, "", logger); err != nil {
		return err
	}

	if opts.isoform {
		isoPath, err := stage(stager, manifest, "GOA_taxon_"+taxon.Identity+"_ISOFORM", viper.GetString("urls.goa_isoform."+taxon.Identity))
		if err != nil {
			return err
		}
		if err := runP2GPass(tr, isoPath, opts.xrefNamespace, mapping, genes, outDir, targetProvider, "-isoform", logger); err != nil {
			return err
		}
	}

	return nil
}

func runP2GPass(tr *transfer.Translator, gafPath, xrefNamespace string, mapping map[string]string, genes gpi.GeneIndex, outDir, targetProvider, suffix string, logger *zap.Logger) error {
	parser, err := gaf.NewParser(gafPath)
	if err != nil {
		return err
	}
	defer parser.Close()
	parser.SetFilter(gaf.FilterOptions{Namespaces: []string{xrefNamespace}})

	anns, err := tr.Translate(parser, mapping, genes)
	if err != nil {
		return fmt.Errorf("translate annotations: %w", err)
	}

	name := strings.ToLower(targetProvider) + "-p2g-converted" + suffix + ".gaf"
	path := filepath.Join(outDir, name)
	header := []string{
		"Generated by: " + targetProvider + " preprocess pipeline: protein to GO transfer",
		"Date Generated: " + time.Now().Format("2006-01-02"),
	}
	if err := output.WriteGAF(path, anns, header); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("pass complete", zap.Int("records", len(anns)), zap.String("output", path))
	return nil
}
