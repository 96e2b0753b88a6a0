/*
main.go - Batch crew assignment CLI

PURPOSE:
  Runs the full pipeline once from cleaned CSV files:

    ingest -> validate -> build model -> solve -> report -> export

COMMAND-LINE FLAGS:
  -crews      Path to crews CSV (adult rosters per center/crew)  [required]
  -buddies    Path to buddies CSV (participant roster)           [required]
  -history    Path to historical crews CSV (past leaders)        [optional]
  -config     Path to YAML config overriding the defaults        [optional]
  -out        Path for the assignments CSV                       [default: assignments.csv]
  -db         SQLite path to persist the run, "" to skip         [optional]
  -time-limit Solver wall-clock budget                           [default: 60s]
  -workers    Solver search workers, 0 = solver decides          [default: 0]
  -verbose    Enable solver search-progress logging

EXIT BEHAVIOR:
  Data problems (missing files, missing parents, unresolved friends,
  integrity failures) exit non-zero before solving. An infeasible solve is
  reported as such and exits non-zero; feasible and optimal print the full
  breakdown and write the CSV.
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/golang/glog"
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/ingest"
	"github.com/warp/crew-engine/report"
	"github.com/warp/crew-engine/roster"
	"github.com/warp/crew-engine/store/sqlite"
)

func main() {
	crewsPath := flag.String("crews", "", "path to crews CSV")
	buddiesPath := flag.String("buddies", "", "path to buddies CSV")
	historyPath := flag.String("history", "", "path to historical crews CSV")
	configPath := flag.String("config", "", "path to YAML config")
	outPath := flag.String("out", "assignments.csv", "path for the assignments CSV")
	dbPath := flag.String("db", "", "SQLite path to persist the run")
	timeLimit := flag.Duration("time-limit", 60*time.Second, "solver wall-clock budget")
	workers := flag.Int("workers", 0, "solver search workers, 0 = solver decides")
	verbose := flag.Bool("verbose", false, "solver search-progress logging")
	flag.Parse()

	if *crewsPath == "" || *buddiesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*crewsPath, *buddiesPath, *historyPath, *configPath, *outPath, *dbPath, *timeLimit, int32(*workers), *verbose); err != nil {
		log.Exitf("assignment failed: %v", err)
	}
}

func run(crewsPath, buddiesPath, historyPath, configPath, outPath, dbPath string, timeLimit time.Duration, workers int32, verbose bool) error {
	// Ingest.
	centers, err := ingest.LoadCenters(crewsPath)
	if err != nil {
		return err
	}
	persons, err := ingest.LoadPersons(buddiesPath)
	if err != nil {
		return err
	}
	if historyPath != "" {
		leaders, err := ingest.LoadPastLeaders(historyPath)
		if err != nil {
			return err
		}
		ingest.ApplyPastLeaders(persons, leaders)
	}

	// Validate before paying for a model build.
	if err := ingest.ValidateParents(persons, centers); err != nil {
		return err
	}
	if err := ingest.ValidateFriends(persons); err != nil {
		return err
	}

	cfg := assign.DefaultConfig()
	if configPath != "" {
		if cfg, err = assign.LoadConfig(configPath); err != nil {
			return err
		}
	}

	ros := roster.NewRoster(persons)
	fmt.Printf("Youth count: %d\n", len(ros.Youth()))
	fmt.Printf("Centers: %d, crews: %d\n", len(centers), roster.TotalCrews(centers))

	// Build and solve.
	model, err := assign.Build(cfg, persons, centers)
	if err != nil {
		return err
	}
	solution, err := model.Solve(assign.Options{
		MaxTime:   timeLimit,
		Workers:   workers,
		LogSearch: verbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Solve finished: %s in %s\n", solution.Status(), solution.WallTime().Round(time.Millisecond))
	if dbPath != "" {
		if err := persist(dbPath, cfg, solution, ros); err != nil {
			return err
		}
	}
	if !solution.Status().HasValues() {
		return fmt.Errorf("no assignment produced: %s", solution.Status())
	}

	// Report.
	placements, err := solution.Placements()
	if err != nil {
		return err
	}
	idx := report.NewPlacementIndex(placements)
	scores, avg := report.FriendScores(idx, ros, centers)
	stats := report.Fulfillment(idx, ros)
	summary := report.BuildSummary(idx, ros, centers)
	report.Render(os.Stdout, summary, scores, avg, stats)

	// Export.
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()
	if err := report.WriteAssignmentsCSV(out, idx, ros, centers); err != nil {
		return err
	}
	fmt.Printf("\nResults written to %s\n", outPath)
	return nil
}

// persist records the run (and assignments when present) in SQLite.
func persist(dbPath string, cfg assign.Config, solution *assign.Solution, ros *roster.Roster) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	cfgJSON, _ := json.Marshal(cfg)
	run := sqlite.RunRecord{
		ID:          sqlite.NewRunID(),
		CreatedAt:   time.Now(),
		Status:      solution.Status().String(),
		YouthCount:  len(ros.Youth()),
		ConfigJSON:  string(cfgJSON),
		SolveMillis: solution.WallTime().Milliseconds(),
	}

	var records []sqlite.AssignmentRecord
	if solution.Status().HasValues() {
		if run.Objective, err = solution.ObjectiveValue(); err != nil {
			return err
		}
		placements, err := solution.Placements()
		if err != nil {
			return err
		}
		for _, pl := range placements {
			record := sqlite.AssignmentRecord{
				RunID:  run.ID,
				Center: pl.Center,
				Crew:   pl.Crew,
				Name:   pl.Person,
			}
			if p, ok := ros.Lookup(pl.Person); ok {
				record.Role = string(p.Role)
				record.Gender = string(p.Gender)
				record.Year = string(p.Year)
				record.History = string(p.History)
			}
			records = append(records, record)
		}
	}
	return store.SaveRun(context.Background(), run, records)
}
