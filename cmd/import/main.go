// Command scite-vivo-import runs the import pipeline once, from the
// command line: fetch paper records for a set of DOIs, build the triple
// graph, and either load it into VIVO or write it to a Turtle file.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/vivo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type importOptions struct {
	dois     []string
	csvFile  string
	column   string
	output   string
	limit    int
	email    string
	password string
}

func rootCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "scite-vivo-import",
		Short: "Import Scite publication data into a VIVO instance",
		Long: `scite-vivo-import fetches publication records and citation tallies from
the Scite API, expresses them as VIVO/BIBO/FOAF triples and loads the
resulting graph into a VIVO instance in a single SPARQL update.

DOIs come from --dois or from a CSV column. With --output the graph is
written to a Turtle file instead of being imported. When the store rejects
an import, the graph is saved to the fallback directory so nothing is lost.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.dois, "dois", nil, "DOIs to import (repeatable or comma-separated)")
	cmd.Flags().StringVar(&opts.csvFile, "csv", "", "CSV file to read DOIs from")
	cmd.Flags().StringVar(&opts.column, "column", "doi", "CSV column containing the DOIs")
	cmd.Flags().StringVar(&opts.output, "output", "", "write the graph to this Turtle file instead of importing")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "process at most this many DOIs (0 = all)")
	cmd.Flags().StringVar(&opts.email, "email", "", "VIVO admin email (overrides VIVO_EMAIL)")
	cmd.Flags().StringVar(&opts.password, "password", "", "VIVO admin password (overrides VIVO_PASSWORD)")

	return cmd
}

func runImport(opts importOptions) error {
	logging, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.email != "" {
		cfg.VIVOEmail = opts.email
	}
	if opts.password != "" {
		cfg.VIVOPassword = opts.password
	}

	dois := opts.dois
	if len(dois) == 0 && opts.csvFile != "" {
		dois, err = readDOIsFromCSV(opts.csvFile, opts.column)
		if err != nil {
			return err
		}
	}
	if len(dois) == 0 {
		return errors.New("no DOIs to process: provide --dois or --csv")
	}
	if opts.limit > 0 && opts.limit < len(dois) {
		dois = dois[:opts.limit]
	}
	if opts.output == "" && cfg.VIVOPassword == "" {
		return errors.New("VIVO password required for import: set --password or VIVO_PASSWORD")
	}

	ctx := context.Background()
	client := scite.NewClient(cfg, logging)

	papers, err := client.FetchPapers(ctx, dois)
	if err != nil {
		return fmt.Errorf("query scite: %w", err)
	}
	if len(papers) == 0 {
		return errors.New("no papers retrieved")
	}

	assembler := vivo.NewAssembler(cfg, client, logging)
	graph, report := assembler.Assemble(ctx, papers)
	for _, sk := range report.Skipped {
		logging.Warn("Paper skipped", zap.String("doi", sk.DOI), zap.String("reason", sk.Reason))
	}
	if graph.Len() == 0 {
		return vivo.ErrEmptyGraph
	}

	if opts.output != "" {
		if err := vivo.ExportFile(graph, opts.output); err != nil {
			return err
		}
		logging.Info("Graph written",
			zap.String("file", opts.output), zap.Int("triples", graph.Len()))
		return nil
	}

	importer := vivo.NewImporter(cfg, logging)
	if err := importer.Commit(ctx, graph); err != nil {
		return err
	}
	logging.Info("Import complete",
		zap.Int("processed", report.Processed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("triples", graph.Len()))
	return nil
}

// readDOIsFromCSV pulls the identifier column out of a CSV with a header
// row. Blank cells are skipped; rows shorter than the column index too.
func readDOIsFromCSV(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var dois []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if col >= len(record) {
			continue
		}
		if doi := strings.TrimSpace(record[col]); doi != "" {
			dois = append(dois, doi)
		}
	}
	return dois, nil
}
