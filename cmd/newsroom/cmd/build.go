package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/newsroom/internal/collect"
	"github.com/agentstation/newsroom/internal/config"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/pipeline"
)

var (
	buildSource string
	buildOutput string
	buildRunID  string
)

// buildCmd runs the full pipeline and writes the newsletter document.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Collect, canonicalize, and emit the newsletter document",
	Long: `Build runs the full pipeline: collect raw records, resolve entities,
merge duplicates, rank each section, assign citations, validate, and
write newsletter.json to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildSource, "source", "", "collection source: mock or live (overrides config)")
	buildCmd.Flags().StringVar(&buildOutput, "out", "", "output directory (overrides config)")
	buildCmd.Flags().StringVar(&buildRunID, "run-id", "", "fixed run id, for reproducible builds")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Default()
	ctx = logging.WithLogger(ctx, log)

	// Resolve through viper so NEWSROOM_SOURCE, NEWSROOM_OUT, and
	// NEWSROOM_RUN_ID override the config file; flags override both.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if source := viper.GetString("source"); source != "" {
		cfg.Collect.Source = collect.Source(source)
	}
	if out := viper.GetString("out"); out != "" {
		cfg.Output = out
	}

	collector, err := collect.New(cfg.Collect)
	if err != nil {
		return err
	}
	log.Info().
		Str("collector", collector.Name()).
		Msg("Collecting raw records")
	raw, err := collector.Collect(ctx, cfg.Window)
	if err != nil {
		return fmt.Errorf("collecting from %s: %w", collector.Name(), err)
	}

	var opts []pipeline.Option
	if runID := viper.GetString("run-id"); runID != "" {
		opts = append(opts, pipeline.WithRunID(runID))
	}
	p, err := pipeline.New(cfg.Pipeline(), opts...)
	if err != nil {
		return err
	}

	doc, report, err := p.Run(ctx, raw)
	printReport(cmd, report)
	if err != nil {
		return err
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(cfg.Output, "newsletter.json")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	cmd.Printf("Wrote %s (%d bytes)\n", outPath, len(data))
	return nil
}

// printReport summarizes the run's decisions on stdout.
func printReport(cmd *cobra.Command, report *pipeline.Report) {
	if report == nil {
		return
	}
	cmd.Printf("Collected %d, resolved %d, merged to %d, published %d\n",
		report.RawCount, report.ResolvedCount, report.MergedCount, report.RankedCount)
	if report.Clean() && len(report.DroppedByCap) == 0 {
		return
	}

	for _, skipped := range report.Skipped {
		cmd.Printf("  skipped [%s] %q: %s\n", skipped.Category, skipped.Title, skipped.Reason)
	}
	for _, inferred := range report.Inferred {
		cmd.Printf("  inferred %s.%s = %q (%s)\n", inferred.ItemID, inferred.Field, inferred.Value, inferred.Note)
	}
	for _, conflict := range report.Conflicts {
		cmd.Printf("  conflict %s.%s: kept %q, ignored %q\n",
			conflict.EntityID, conflict.Field, conflict.Kept, conflict.Ignored)
	}
	categories := make([]string, 0, len(report.DroppedByCap))
	for category := range report.DroppedByCap {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for _, category := range categories {
		cmd.Printf("  cap cut %d %s item(s)\n", report.DroppedByCap[newsletter.Category(category)], category)
	}
}
