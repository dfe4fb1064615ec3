package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseEventID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("event id must be a positive number, got %q", arg)
	}
	return id, nil
}

func calculateCmd(a *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "calculate <event-id>",
		Short: "Recalculate the Weighted Product and Borda results of an event",
		Long: `Recalculate an event from its current evaluations. Existing results are
replaced only if the whole calculation succeeds. Without --user the run is
system initiated and skips the admin/leader check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}

			var triggeredBy *int64
			if cmd.Flags().Changed("user") {
				triggeredBy = &userID
			}

			if err := a.service.Calculate(cmd.Context(), eventID, triggeredBy); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Calculation for event %d completed", eventID)

			results, err := a.service.GetResults(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			return renderResults(cmd.OutOrStdout(), FormatTable, results)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "ID of the user triggering the calculation")
	return cmd
}

func completenessCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "completeness <event-id>",
		Short: "Show which decision makers still have evaluations to submit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}

			report, err := a.service.CheckCompleteness(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			return renderCompleteness(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "Output format: table, yaml or json")
	return cmd
}

func resultsCmd(a *app) *cobra.Command {
	var (
		format  string
		judgeID int64
	)

	cmd := &cobra.Command{
		Use:   "results <event-id>",
		Short: "Show the stored group ranking, or one judge's matrix with --judge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}

			if cmd.Flags().Changed("judge") {
				matrix, err := a.service.GetJudgeMatrix(cmd.Context(), eventID, judgeID)
				if err != nil {
					return err
				}
				return renderJudgeMatrix(cmd.OutOrStdout(), format, matrix)
			}

			results, err := a.service.GetResults(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			return renderResults(cmd.OutOrStdout(), format, results)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "Output format: table, yaml or json")
	cmd.Flags().Int64Var(&judgeID, "judge", 0, "Show the Weighted Product matrix of this decision maker")
	return cmd
}
