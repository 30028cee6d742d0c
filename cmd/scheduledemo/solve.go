package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rostercore/shiftopt/internal/config"
	"github.com/rostercore/shiftopt/internal/holiday"
	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/optimize"
)

// request is the on-disk shape scheduledemo accepts: the three
// caller-supplied arguments of spec §6's `optimize_schedule`, plus an
// optional timeout override.
type request struct {
	Staff          []requestStaff `json:"staff"`
	Dates          []string       `json:"dates"`
	Constraints    map[string]any `json:"constraints"`
	TimeoutSeconds int            `json:"timeoutSeconds"`
}

type requestStaff struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	StartPeriod *model.Period `json:"start_period"`
	EndPeriod   *model.Period `json:"end_period"`
}

func newSolveCmd(cfg *config.Config) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "solve <request.json>",
		Short: "Run the optimizer against a JSON request file and print the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cfg, args[0], topN)
		},
	}
	cmd.Flags().IntVar(&topN, "top-violations", 20, "number of worst violations to print (spec floor is 20)")
	return cmd
}

func runSolve(cfg *config.Config, path string, topN int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}

	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parsing request file: %w", err)
	}

	staff := make([]model.Staff, 0, len(req.Staff))
	for _, s := range req.Staff {
		staff = append(staff, model.Staff{
			ID:          s.ID,
			Name:        s.Name,
			Status:      s.Status,
			StartPeriod: s.StartPeriod,
			EndPeriod:   s.EndPeriod,
		})
	}

	timeout := req.TimeoutSeconds
	if timeout <= 0 {
		timeout = cfg.TimeoutSeconds
	}

	deps := optimize.Deps{
		Log:    logging.NewZerolog(log.Logger),
		Oracle: buildOracle(cfg),
	}

	result := optimize.Schedule(deps, staff, req.Dates, req.Constraints, timeout)
	result.RequestID = uuid.New().String()
	if !result.Success {
		errorColor.Printf("solve failed (request_id=%s): %s (status=%s)\n", result.RequestID, result.Error, result.Status)
		return nil
	}

	printSchedule(staff, req.Dates, result)
	printStats(result)
	printViolations(result, topN)
	return nil
}

func buildOracle(cfg *config.Config) holiday.Oracle {
	if cfg.HolidayMode == "network" && cfg.HolidayAPIURL != "" {
		return holiday.NewNetworkOracle(cfg.HolidayAPIURL, logging.NewZerolog(log.Logger))
	}
	return holiday.OfflineOracle{}
}

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	offColor     = color.New(color.FgRed)
	earlyColor   = color.New(color.FgYellow)
	lateColor    = color.New(color.FgBlue)
	dimColor     = color.New(color.FgWhite, color.Faint)
)

func glyphCell(glyph string) string {
	switch glyph {
	case model.GlyphOff:
		return offColor.Sprint(glyph)
	case model.GlyphEarly:
		return earlyColor.Sprint(glyph)
	case model.GlyphLate:
		return lateColor.Sprint(glyph)
	case model.GlyphUnavailable:
		return dimColor.Sprint(glyph)
	case "":
		return "·"
	default:
		return glyph
	}
}

func printSchedule(staff []model.Staff, dates []string, result model.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	header := append([]string{"Staff"}, dates...)
	table.SetHeader(header)

	for _, s := range staff {
		row := make([]string, 0, len(dates)+1)
		row = append(row, s.ID)
		byDate := result.Schedule[s.ID]
		for _, d := range dates {
			row = append(row, glyphCell(byDate[d]))
		}
		table.Append(row)
	}
	table.Render()
}

func printStats(result model.Result) {
	successColor.Printf("request_id=%s status=%s optimal=%t solve_time=%s\n", result.RequestID, result.Status, result.IsOptimal, result.SolveTime)
	stats := result.Stats
	fmt.Printf(
		"staff=%d dates=%d off_days=%d violations=%d penalty=%d prefilled=%d post_period_escapes=%d\n",
		stats.StaffCount, stats.DateCount, stats.TotalOffDays, stats.TotalViolations,
		stats.TotalViolationPenalty, stats.PrefilledCells, stats.PostPeriodEscapes,
	)
}

func printViolations(result model.Result, topN int) {
	if len(result.Violations) == 0 {
		return
	}
	if topN <= 0 {
		topN = 20
	}

	// result.Violations already arrives sorted by descending penalty
	// (internal/extract groups and sorts them); just truncate here.
	violations := result.Violations
	if len(violations) > topN {
		violations = violations[:topN]
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Description", "Count", "Penalty"})
	for _, v := range violations {
		table.Append([]string{v.Description, fmt.Sprintf("%d", v.Count), fmt.Sprintf("%d", v.Penalty)})
	}
	table.Render()
}
