package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kturhan/ontofill/internal/discover"
	"github.com/kturhan/ontofill/internal/graph"
	"github.com/kturhan/ontofill/internal/model"
	"github.com/kturhan/ontofill/internal/normalize"
	"github.com/kturhan/ontofill/internal/populate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	transformPath string
	correction    bool
	workers       int
	outOntology   string
	outSkipped    string
	outReport     string
)

// populateCmd represents the populate command
var populateCmd = &cobra.Command{
	Use:   "populate [dir]",
	Short: "Populate an ontology with named individuals from a CSV pair",
	Long: `Populate scans a directory for one .owl document and two .csv files
(the smaller CSV holds the category names, the larger the records), loads
the ontology into memory, and creates one named individual per record
field. The augmented ontology and a report of rejected records are written
to the working directory.

Example:
  ontofill populate ./data
  ontofill populate ./data --owl2-correction --transform rules.yml
  ontofill populate ./data --workers 8 --report report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPopulate,
}

func init() {
	rootCmd.AddCommand(populateCmd)

	defaults := model.DefaultConfig()

	populateCmd.Flags().StringVar(&transformPath, "transform", "", "transformation rules YAML (default: built-in sanitizer chain)")
	populateCmd.Flags().BoolVar(&correction, "owl2-correction", false, "re-type pre-existing individuals as explicit owl:NamedIndividuals before populating")
	populateCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "number of concurrent record workers")
	populateCmd.Flags().StringVar(&outOntology, "out", defaults.Output.Ontology, "output path for the regenerated ontology")
	populateCmd.Flags().StringVar(&outSkipped, "skipped", defaults.Output.Skipped, "output path for the skipped-records report")
	populateCmd.Flags().StringVar(&outReport, "report", "", "output path for a JSON run report (optional)")

	_ = viper.BindPFlag("workers", populateCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("correction", populateCmd.Flags().Lookup("owl2-correction"))
	_ = viper.BindPFlag("transform", populateCmd.Flags().Lookup("transform"))
	_ = viper.BindPFlag("output.ontology", populateCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("output.skipped", populateCmd.Flags().Lookup("skipped"))
	_ = viper.BindPFlag("output.report", populateCmd.Flags().Lookup("report"))
}

func runPopulate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	ctx := context.Background()

	// Build configuration: defaults, then config file / env, then flags
	// (viper resolves the precedence for the bound keys).
	cfg := model.DefaultConfig()
	cfg.Workers = viper.GetInt("workers")
	cfg.Correction = viper.GetBool("correction")
	cfg.TransformPath = viper.GetString("transform")
	cfg.Output.Ontology = viper.GetString("output.ontology")
	cfg.Output.Skipped = viper.GetString("output.skipped")
	cfg.Output.Report = viper.GetString("output.report")
	cfg.Output.Verbose = verbose

	inputs, err := discover.Discover(dir)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Ontology:   %s\n", inputs.Ontology)
		fmt.Fprintf(os.Stderr, "Categories: %s\n", inputs.Categories)
		fmt.Fprintf(os.Stderr, "Instances:  %s\n", inputs.Instances)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Workers)
		fmt.Fprintln(os.Stderr)
	}

	var transformCfg *normalize.Config
	if cfg.TransformPath != "" {
		transformCfg, err = normalize.LoadConfig(cfg.TransformPath)
		if err != nil {
			return err
		}
	}

	g, err := graph.LoadFile(inputs.Ontology)
	if err != nil {
		return err
	}
	ns := g.NamespacePrefix()
	if ns == "" {
		return fmt.Errorf("ontology %s declares no default namespace", inputs.Ontology)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded ontology (%d statements, namespace %s)\n", g.Len(), ns)
	}

	report := model.NewReport(dir)
	report.Ontology = inputs.Ontology

	if cfg.Correction {
		report.Corrected = populate.CorrectNamedIndividuals(g)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Corrected %d pre-existing individuals\n", report.Corrected)
		}
	}

	engine := populate.NewEngine(populate.Config{
		CategoriesPath: inputs.Categories,
		InstancesPath:  inputs.Instances,
		SkippedPath:    cfg.Output.Skipped,
		Workers:        cfg.Workers,
	}, g, normalize.New(ns, transformCfg))

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}

	if err := g.WriteFile(cfg.Output.Ontology); err != nil {
		return err
	}

	report.Categories = result.Categories
	report.Records = result.Records
	report.Inserted = result.Inserted
	report.Skipped = result.Skipped
	report.PerClass = result.PerClass
	report.Duration = time.Since(report.StartedAt)

	if cfg.Output.Report != "" {
		if err := writeReport(report, cfg.Output.Report); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote report: %s\n", cfg.Output.Report)
		}
	}

	printSummary(report, cfg)
	return nil
}

func writeReport(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func printSummary(report *model.Report, cfg *model.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Population Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Categories:  %d\n", report.Categories)
	fmt.Fprintf(os.Stderr, "  Records:     %d\n", report.Records)
	fmt.Fprintf(os.Stderr, "  Inserted:    %d new individuals\n", report.Inserted)
	fmt.Fprintf(os.Stderr, "  Skipped:     %d records (%s)\n", report.Skipped, cfg.Output.Skipped)
	if report.Corrected > 0 {
		fmt.Fprintf(os.Stderr, "  Corrected:   %d individuals\n", report.Corrected)
	}
	fmt.Fprintf(os.Stderr, "  Ontology:    %s\n", cfg.Output.Ontology)
	fmt.Fprintf(os.Stderr, "  Duration:    %v\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")
}
