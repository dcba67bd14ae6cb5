// Package main provides the CLI entrypoint for interlog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/uxlog/interlog/internal/analyze"
	"github.com/uxlog/interlog/internal/capture"
	"github.com/uxlog/interlog/internal/config"
	"github.com/uxlog/interlog/internal/eventlog"
	"github.com/uxlog/interlog/internal/model"
	"github.com/uxlog/interlog/internal/report"
	"github.com/uxlog/interlog/internal/store"
	"github.com/uxlog/interlog/internal/tui"
)

const (
	defaultOutputDir   = "."
	defaultHistoryLast = 20
)

var (
	recordOutput      string
	recordName        string
	recordPrivacy     bool
	recordFlushEvery  int
	recordReplay      string
	recordReplaySpeed float64

	analyzeOutput       string
	analyzeBucketSize   float64
	analyzeRageWindow   float64
	analyzeRageDistance float64
	analyzeJSON         bool
	analyzeNoHistory    bool

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "interlog",
		Short:         "Interaction logger and analyzer for UX research",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRecordCmd,
	}

	rootCmd.Flags().StringVarP(&recordOutput, "output", "o", defaultOutputDir, "output directory for session files")
	rootCmd.Flags().StringVarP(&recordName, "name", "n", "", "session name (default: timestamp)")
	rootCmd.Flags().BoolVarP(&recordPrivacy, "privacy", "p", false, "redact key identity before it reaches disk")
	rootCmd.Flags().IntVar(&recordFlushEvery, "flush-every", capture.DefaultFlushEvery, "buffered events per flush to disk")
	rootCmd.Flags().StringVar(&recordReplay, "replay", "", "events CSV to replay as the input source")
	rootCmd.Flags().Float64Var(&recordReplaySpeed, "replay-speed", 1.0, "replay speed multiplier")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runRecordCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "output", &recordOutput, fileCfg.Record.Output)
	applyBoolConfig(cmd, "privacy", &recordPrivacy, fileCfg.Record.Privacy)
	applyIntConfig(cmd, "flush-every", &recordFlushEvery, fileCfg.Record.FlushEvery)

	if recordFlushEvery <= 0 {
		return fmt.Errorf("--flush-every must be > 0")
	}
	if recordReplay == "" {
		return fmt.Errorf("no OS input hook is bundled; provide a session to replay with --replay")
	}

	sessionName := recordName
	if sessionName == "" {
		sessionName = time.Now().Format("20060102_150405")
	}
	if err := os.MkdirAll(recordOutput, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	eventsPath := filepath.Join(recordOutput, sessionName+"_events.csv")
	metadataPath := filepath.Join(recordOutput, sessionName+"_metadata.json")

	replayEvents, skipped, err := eventlog.ReadEvents(recordReplay)
	if err != nil {
		return fmt.Errorf("failed to load replay session: %w", err)
	}
	if skipped > 0 {
		logErrf("skipped %d malformed replay rows\n", skipped)
	}
	source := capture.ReplaySource(replayEvents, recordReplaySpeed)

	writer, err := eventlog.NewWriter(eventsPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			logErrf("failed to close events file: %v\n", cerr)
		}
	}()

	outputAbs, err := filepath.Abs(recordOutput)
	if err != nil {
		outputAbs = recordOutput
	}
	startedAt := time.Now()
	meta := eventlog.Metadata{
		SessionName: sessionName,
		StartTime:   startedAt.Format(time.RFC3339),
		PrivacyMode: recordPrivacy,
		OutputDir:   outputAbs,
	}
	if err := eventlog.WriteMetadata(metadataPath, meta); err != nil {
		return err
	}

	var count atomic.Int64
	recorder, err := capture.NewRecorder(capture.Options{
		Source:     source,
		Sink:       writer,
		Privacy:    recordPrivacy,
		FlushEvery: recordFlushEvery,
		OnEvent:    func(total int) { count.Store(int64(total)) },
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan tui.Result, 1)
	go func() {
		total, duration, runErr := recorder.Run(ctx)
		done <- tui.Result{Total: total, Duration: duration, Err: runErr}
	}()

	screen := tui.NewRecordModel(sessionName, eventsPath, recordPrivacy, &count, cancel, done)
	program := tea.NewProgram(screen, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	result := screen.Result()
	if result.Err != nil {
		return result.Err
	}

	meta.EndTime = time.Now().Format(time.RFC3339)
	meta.TotalEvents = result.Total
	meta.DurationSeconds = result.Duration
	if err := eventlog.WriteMetadata(metadataPath, meta); err != nil {
		logErrf("failed to update metadata: %v\n", err)
	}

	fmt.Printf("Session saved.\n")
	fmt.Printf("Events:   %s\n", eventsPath)
	fmt.Printf("Metadata: %s\n", metadataPath)
	fmt.Printf("Captured %d events over %.2f seconds\n", result.Total, result.Duration)
	fmt.Printf("\nAnalyze with: interlog analyze %s\n", eventsPath)
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <events.csv>",
		Short: "Analyze a session events file",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output directory for analysis files (default: next to the events file)")
	cmd.Flags().Float64VarP(&analyzeBucketSize, "bucket-size", "b", analyze.DefaultBucketSeconds, "intensity bucket size in seconds")
	cmd.Flags().Float64Var(&analyzeRageWindow, "rage-window", analyze.DefaultRageWindowSeconds, "rage click time window in seconds")
	cmd.Flags().Float64Var(&analyzeRageDistance, "rage-distance", analyze.DefaultRageDistancePx, "rage click distance threshold in pixels")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "also write the summary as JSON")
	cmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "do not record this run in the history database")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "bucket-size", &analyzeBucketSize, fileCfg.Analyze.BucketSize)
	applyFloatConfig(cmd, "rage-window", &analyzeRageWindow, fileCfg.Analyze.RageWindow)
	applyFloatConfig(cmd, "rage-distance", &analyzeRageDistance, fileCfg.Analyze.RageDistance)
	applyBoolConfig(cmd, "json", &analyzeJSON, fileCfg.Analyze.JSON)

	if analyzeBucketSize <= 0 {
		return fmt.Errorf("--bucket-size must be > 0")
	}
	if analyzeRageWindow <= 0 {
		return fmt.Errorf("--rage-window must be > 0")
	}
	if analyzeRageDistance <= 0 {
		return fmt.Errorf("--rage-distance must be > 0")
	}

	eventsPath := args[0]
	events, skipped, err := eventlog.ReadEvents(eventsPath)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logErrf("skipped %d malformed rows\n", skipped)
	}
	logErrf("loaded %d events from %s\n", len(events), eventsPath)

	opts := analyze.Options{
		RageWindowSeconds: analyzeRageWindow,
		RageDistancePx:    analyzeRageDistance,
	}
	stats, err := analyze.Calculate(events, opts)
	if err != nil {
		if errors.Is(err, analyze.ErrNoEvents) {
			fmt.Println("No events to analyze.")
			return nil
		}
		return err
	}
	buckets, err := analyze.Bucketize(events, analyzeBucketSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.RenderSummary(out, stats); err != nil {
		return err
	}
	if err := report.RenderIntensity(out, buckets, report.TerminalWidth()); err != nil {
		return err
	}

	summaryPath, intensityPath, jsonPath, err := outputPaths(eventsPath, analyzeOutput, analyzeJSON)
	if err != nil {
		return err
	}
	if err := eventlog.WriteSummary(summaryPath, stats); err != nil {
		return err
	}
	if err := eventlog.WriteIntensity(intensityPath, buckets); err != nil {
		return err
	}
	fmt.Fprintf(out, "Summary:   %s\n", summaryPath)
	fmt.Fprintf(out, "Intensity: %s\n", intensityPath)
	if jsonPath != "" {
		if err := eventlog.WriteSummaryJSON(jsonPath, stats); err != nil {
			return err
		}
		fmt.Fprintf(out, "JSON:      %s\n", jsonPath)
	}

	if !analyzeNoHistory {
		if err := recordHistory(eventsPath, stats); err != nil {
			logErrf("failed to record history: %v\n", err)
		}
	}
	return nil
}

// outputPaths derives the analysis file paths from the events file
// stem, optionally redirected into a separate output directory.
func outputPaths(eventsPath, outputDir string, withJSON bool) (string, string, string, error) {
	base := filepath.Base(eventsPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(eventsPath)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", "", "", fmt.Errorf("failed to create output directory: %w", err)
		}
		dir = outputDir
	}
	summaryPath := filepath.Join(dir, stem+"_summary.csv")
	intensityPath := filepath.Join(dir, stem+"_intensity.csv")
	jsonPath := ""
	if withJSON {
		jsonPath = filepath.Join(dir, stem+"_summary.json")
	}
	return summaryPath, intensityPath, jsonPath, nil
}

func recordHistory(eventsPath string, stats model.SummaryStatistics) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	_, err = st.InsertRun(context.Background(), eventsPath, time.Now(), stats)
	return err
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "number of runs to show (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.RenderRuns(cmd.OutOrStdout(), runs)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# interlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[record]
# output = "."           # Output directory for session files
# privacy = false        # Redact key identity before it reaches disk
# flush-every = %d       # Buffered events per flush to disk

[analyze]
# bucket-size = %.1f     # Intensity bucket size in seconds
# rage-window = %.1f     # Rage click time window in seconds
# rage-distance = %.1f   # Rage click distance threshold in pixels
# json = false           # Also write the summary as JSON
`,
		capture.DefaultFlushEvery,
		analyze.DefaultBucketSeconds,
		analyze.DefaultRageWindowSeconds,
		analyze.DefaultRageDistancePx,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
