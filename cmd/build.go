package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cricbase/cricstats/internal/pipeline"
	"github.com/cricbase/cricstats/internal/roster"
	"github.com/cricbase/cricstats/internal/scorecard"
	"github.com/cricbase/cricstats/internal/storage"
)

var (
	rosterPath string
	buildQuiet bool
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Build the database from a directory of scorecard JSON files",
	Long: `Reads every *.json scorecard in the directory plus the people.csv roster,
extracts the relations, computes per-player statistics, and replaces the
database contents. Any malformed record fails the whole build.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&rosterPath, "roster", "", "path to people.csv (default <dir>/people.csv)")
	buildCmd.Flags().BoolVar(&buildQuiet, "quiet", false, "only log warnings and errors")
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := args[0]

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if buildQuiet {
		log.SetLevel(logrus.WarnLevel)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no scorecard files in %s", dir)
	}

	if rosterPath == "" {
		rosterPath = filepath.Join(dir, "people.csv")
	}
	players, err := roster.ReadFile(rosterPath)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	log.WithFields(logrus.Fields{"players": len(players), "path": rosterPath}).Info("roster loaded")

	startedAt := time.Now()
	builder := pipeline.New()
	for _, path := range paths {
		rec, err := scorecard.ReadFile(path)
		if err != nil {
			return err
		}
		if err := builder.Add(rec); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.WithField("file", filepath.Base(path)).Debug("record extracted")
	}

	tables, err := builder.Finalize(players)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"matches":    len(tables.Matches),
		"deliveries": len(tables.Deliveries),
		"wickets":    len(tables.Wickets),
		"elapsed":    time.Since(startedAt).Round(time.Millisecond),
	}).Info("relations built")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run := storage.IngestRun{
		ID:         uuid.NewString(),
		StartedAt:  startedAt,
		SourceDir:  dir,
		MatchCount: len(tables.Matches),
	}
	if err := db.ReplaceAll(tables, run); err != nil {
		return fmt.Errorf("store relations: %w", err)
	}

	log.WithFields(logrus.Fields{"run": run.ID, "db": dbPath}).Info("database replaced")
	fmt.Fprintf(os.Stdout, "Built %d matches into %s\n", len(tables.Matches), dbPath)
	return nil
}
