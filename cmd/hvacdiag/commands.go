package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mrhapile/hvac-diagnoser/pkg/config"
	"github.com/mrhapile/hvac-diagnoser/pkg/cycle"
	"github.com/mrhapile/hvac-diagnoser/pkg/engine"
	"github.com/mrhapile/hvac-diagnoser/pkg/logging"
	"github.com/mrhapile/hvac-diagnoser/pkg/report"
	"github.com/mrhapile/hvac-diagnoser/pkg/server"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/spf13/cobra"
)

// cli carries flag values and the state prepared by PersistentPreRunE.
type cli struct {
	configPath       string
	logLevel         string
	format           string
	at               string
	refrigerantsPath string
	signaturesPath   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "hvacdiag",
		Short: "Refrigeration cycle analysis and fault diagnosis",
		Long: `hvacdiag converts HVAC/R service readings (pressures, line temperatures,
refrigerant) into cycle state points and ranks likely equipment faults.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose [reading file]...",
		Short: "Diagnose one or more readings (JSON or YAML, \"-\" for stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runDiagnose,
	}
	cycleCmd := &cobra.Command{
		Use:   "cycle [reading file]",
		Short: "Compute the cycle state of a single reading",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runCycle,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the loaded catalogs",
	}
	refrigerantsCmd := &cobra.Command{
		Use:   "refrigerants",
		Short: "List refrigerants and their table ranges",
		Args:  cobra.NoArgs,
		RunE:  c.runRefrigerants,
	}
	signaturesCmd := &cobra.Command{
		Use:   "signatures",
		Short: "List fault signatures",
		Args:  cobra.NoArgs,
		RunE:  c.runSignatures,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP diagnostic service",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Config file (default $"+config.EnvConfigPath+")")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&c.format, "format", "f", "", "Output format: json, yaml, text (default text on a terminal, json otherwise)")
	flags.StringVar(&c.refrigerantsPath, "refrigerants", "", "Refrigerant catalog file (overrides config)")
	flags.StringVar(&c.signaturesPath, "signatures", "", "Fault signature catalog file (overrides config)")
	diagnoseCmd.Flags().StringVar(&c.at, "at", "", "Report timestamp, RFC3339 (default now)")

	rootCmd.AddCommand(diagnoseCmd, cycleCmd, catalogCmd, serveCmd)
	catalogCmd.AddCommand(refrigerantsCmd, signaturesCmd)

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.refrigerantsPath != "" {
		cfg.Catalogs.Refrigerants = c.refrigerantsPath
	}
	if c.signaturesPath != "" {
		cfg.Catalogs.Signatures = c.signaturesPath
	}

	lc, err := cfg.Logger()
	if err != nil {
		return err
	}
	lc.Output = cmd.ErrOrStderr()
	c.logger = logging.Init(lc)
	c.cfg = cfg
	return nil
}

// outputFormat resolves --format. Unset, it is text on a terminal and json
// otherwise.
func (c *cli) outputFormat(cmd *cobra.Command) (report.Format, error) {
	if c.format == "" {
		if f, ok := cmd.OutOrStdout().(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return report.FormatText, nil
		}
		return report.FormatJSON, nil
	}
	return report.ParseFormat(c.format)
}

func (c *cli) timestamp() (time.Time, error) {
	if c.at == "" {
		return time.Now().UTC(), nil
	}
	at, err := time.Parse(time.RFC3339, c.at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC3339: %w", err)
	}
	return at, nil
}

func (c *cli) runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := c.outputFormat(cmd)
	if err != nil {
		return err
	}
	at, err := c.timestamp()
	if err != nil {
		return err
	}
	snap, err := c.cfg.Snapshot()
	if err != nil {
		return err
	}

	var readings []types.FieldReading
	for _, path := range args {
		rs, err := readReadings(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		readings = append(readings, rs...)
	}

	if len(readings) == 1 {
		rep, err := engine.Analyze(snap, readings[0], at)
		if err != nil {
			return err
		}
		c.logger.Debug("Diagnosis complete", "report_id", rep.ID, "top", rep.Summary.TopDiagnosis)
		return report.Encode(cmd.OutOrStdout(), rep, format)
	}

	results, err := engine.AnalyzeBatch(cmd.Context(), snap, readings, at, c.cfg.Engine.BatchConcurrency)
	if err != nil {
		return err
	}

	reports := make([]types.DiagnosticReport, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			c.logger.Warn("Reading rejected", "index", res.Index, "error", res.Err)
			continue
		}
		reports = append(reports, *res.Report)
	}

	if err := report.Encode(cmd.OutOrStdout(), reports, format); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d readings failed", failed, len(readings))
	}
	return nil
}

func (c *cli) runCycle(cmd *cobra.Command, args []string) error {
	format, err := c.outputFormat(cmd)
	if err != nil {
		return err
	}
	snap, err := c.cfg.Snapshot()
	if err != nil {
		return err
	}
	readings, err := readReadings(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(readings) != 1 {
		return fmt.Errorf("cycle takes exactly one reading, got %d", len(readings))
	}

	state, err := cycle.NewEngine(snap.Refrigerants, snap.Cycle).Compute(readings[0])
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), state, format)
}

func (c *cli) runRefrigerants(cmd *cobra.Command, _ []string) error {
	format, err := c.outputFormat(cmd)
	if err != nil {
		return err
	}
	snap, err := c.cfg.Snapshot()
	if err != nil {
		return err
	}

	rows := server.DescribeRefrigerants(snap.Refrigerants)
	if format != report.FormatText {
		return report.Encode(cmd.OutOrStdout(), rows, format)
	}
	out := cmd.OutOrStdout()
	for _, r := range rows {
		fmt.Fprintf(out, "%-8s %-40s %6.1f-%6.1f psia  %6.1f-%6.1f F\n",
			r.ID, r.Description, r.PressureRange[0], r.PressureRange[1], r.TemperatureRange[0], r.TemperatureRange[1])
	}
	return nil
}

func (c *cli) runSignatures(cmd *cobra.Command, _ []string) error {
	format, err := c.outputFormat(cmd)
	if err != nil {
		return err
	}
	snap, err := c.cfg.Snapshot()
	if err != nil {
		return err
	}

	sigs := snap.Signatures.All()
	if format != report.FormatText {
		return report.Encode(cmd.OutOrStdout(), sigs, format)
	}
	out := cmd.OutOrStdout()
	for _, s := range sigs {
		fmt.Fprintf(out, "%s (%s)\n", s.Name, s.Category)
		for _, ind := range s.Indicators {
			fmt.Fprintf(out, "  %-24s %-6s weight %.2f  normal %.1f to %.1f\n",
				ind.Metric, ind.Expected, ind.Weight, ind.Band.Low, ind.Band.High)
		}
	}
	return nil
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, c.cfg)
}
