// Command scoreboard restores the persisted scoring state, optionally records
// a new entry, prints the current rankings and statistics, and optionally
// writes the JSON backup and CSV exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahrav/go-scoreboard/infrastructure/export"
	"github.com/ahrav/go-scoreboard/infrastructure/middleware"
	"github.com/ahrav/go-scoreboard/infrastructure/notify"
	"github.com/ahrav/go-scoreboard/infrastructure/storage"
	"github.com/ahrav/go-scoreboard/internal/application"
	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/logging"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to the settings file (YAML)")
		group      = flag.String("group", "", "Only print the ranking of this group")
		exportDir  = flag.String("export", "", "Directory to write the backup and CSV exports to")
		reset      = flag.Bool("reset", false, "Reset configuration and entries to factory defaults")
		importFile = flag.String("import", "", "Validate a JSON backup and report its contents")
		addEntry   = flag.String("add", "", `Record an entry as "name|grade/section|group|score,score,..."`)
	)
	flag.Parse()

	v, err := application.NewViper(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := application.LoadSettings(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(settings.Log.Level, settings.Log.Format)
	if *importFile != "" {
		if err := checkBackup(os.Stdout, *importFile); err != nil {
			log.WithError(err).Fatal("backup rejected")
		}
		return
	}
	opts := runOptions{group: *group, exportDir: *exportDir, reset: *reset}
	if *addEntry != "" {
		in, err := parseEntry(*addEntry)
		if err != nil {
			log.WithError(err).Fatal("invalid -add value")
		}
		opts.add = &in
	}
	if err := run(context.Background(), settings, log, opts); err != nil {
		log.WithError(err).Fatal("scoreboard failed")
	}
}

// runOptions carries the command-line actions for a single run.
type runOptions struct {
	group     string
	exportDir string
	reset     bool
	add       *entryInput
}

// entryInput is a new entry parsed from the -add flag.
type entryInput struct {
	name         string
	gradeSection string
	group        string
	scores       []float64
}

// parseEntry parses "name|grade/section|group|score,score,...".
func parseEntry(s string) (entryInput, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return entryInput{}, fmt.Errorf("expected 4 fields separated by '|', got %d", len(parts))
	}
	in := entryInput{
		name:         strings.TrimSpace(parts[0]),
		gradeSection: strings.TrimSpace(parts[1]),
		group:        strings.TrimSpace(parts[2]),
	}
	for _, raw := range strings.Split(parts[3], ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return entryInput{}, fmt.Errorf("invalid score %q: %w", raw, err)
		}
		in.scores = append(in.scores, v)
	}
	return in, nil
}

func run(
	ctx context.Context,
	settings application.Settings,
	log *logrus.Logger,
	opts runOptions,
) error {
	store, err := storage.Open(ctx, settings.Storage.Backend, settings.Storage.Path, settings.Storage.Key)
	if err != nil {
		return err
	}
	defer store.Close()

	var metrics ports.MetricsCollector
	if settings.Metrics.Enabled {
		metrics = middleware.NewPrometheusMetrics(nil)
	}

	initial, err := application.InitialConfig(settings.Preset.Path)
	if err != nil {
		return fmt.Errorf("failed to load preset: %w", err)
	}

	containerOpts := []application.ContainerOption{
		application.WithStore(store),
		application.WithObserver(middleware.NewOTelMutationObserver(metrics)),
		application.WithLogger(log),
	}
	if metrics != nil {
		containerOpts = append(containerOpts, application.WithMetrics(metrics))
	}
	container := application.NewContainer(domain.NewState(initial), containerOpts...)
	container.Restore(ctx, initial)

	bus := notify.NewBus(
		notify.WithDefaultTTL(settings.Notify.DefaultTTL),
		notify.WithLogger(log),
	)
	configs := application.NewConfigStore(container, bus)
	entries := application.NewEntryRepository(container, bus)
	board := application.NewScoreboard(container)

	if opts.reset {
		if _, err := configs.Reset(ctx); err != nil {
			return err
		}
	}
	if in := opts.add; in != nil {
		if _, err := entries.Add(ctx, in.name, in.gradeSection, in.group, in.scores); err != nil {
			printMessages(os.Stdout, bus.Messages())
			return err
		}
	}
	printMessages(os.Stdout, bus.Messages())

	cfg := configs.Config()
	if opts.group != "" {
		printRanking(os.Stdout, opts.group, board.RankingForGroup(opts.group), cfg)
	} else {
		printRanking(os.Stdout, "Overall", board.OverallRanking(), cfg)
	}
	printStatistics(os.Stdout, board.Statistics(), board.AdvancedStatistics())

	if opts.exportDir == "" {
		return nil
	}
	st := container.State()
	backup := export.NewBackup(st.Config(), st.Entries(), time.Now())
	tables := map[string]export.Table{
		"ranking":    export.RankingTable(board.OverallRanking(), cfg, time.Local),
		"statistics": export.StatisticsTable(board.Statistics(), cfg),
	}
	paths, err := export.WriteAll(ctx, opts.exportDir, "scoreboard", backup, tables)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.WithField("path", p).Info("export written")
	}
	return nil
}

// checkBackup validates a backup file without applying it.
func checkBackup(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	imported, err := export.ReadBackup(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Backup OK: %d judges, %d entries\n", imported.Config.JudgeCount, len(imported.Entries))
	return nil
}

func printRanking(w io.Writer, title string, ranking []domain.RankingItem, cfg domain.Config) {
	fmt.Fprintf(w, "%s ranking (%d entries)\n", title, len(ranking))
	t := export.RankingTable(ranking, cfg, time.Local)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeRow(tw, t.Header)
	for i, row := range t.Rows {
		row[0] = row[0] + " " + ranking[i].Medal()
		writeRow(tw, row)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printStatistics(w io.Writer, s domain.Statistics, adv domain.AdvancedStatistics) {
	fmt.Fprintf(w, "Participants: %d\n", s.Count)
	fmt.Fprintf(w, "Highest: %g  Lowest: %g  Mean: %.2f\n", s.MaxTotal, s.MinTotal, s.MeanTotal)
	fmt.Fprintf(w, "Median: %g  Mode: %g  Std dev: %.2f  Range: %g\n", adv.Median, adv.Mode, adv.StdDev, adv.Range)
	for i, mean := range s.MeanPerJudge {
		fmt.Fprintf(w, "Judge %d mean: %.2f\n", i+1, mean)
	}
}

func printMessages(w io.Writer, toasts []domain.Toast) {
	for _, t := range toasts {
		fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Text)
	}
}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
