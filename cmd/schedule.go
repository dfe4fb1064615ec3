package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// parseScheduleArgs reads rank=points pairs such as "1=100 2=50"
func parseScheduleArgs(pairs []string) (map[int]float64, error) {
	schedule := make(map[int]float64, len(pairs))
	for _, pair := range pairs {
		rankText, pointsText, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected rank=points, got %q", pair)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(rankText))
		if err != nil {
			return nil, fmt.Errorf("invalid rank in %q: %w", pair, err)
		}
		points, err := strconv.ParseFloat(strings.TrimSpace(pointsText), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid points in %q: %w", pair, err)
		}
		if _, dup := schedule[rank]; dup {
			return nil, fmt.Errorf("rank %d given twice", rank)
		}
		schedule[rank] = points
	}
	return schedule, nil
}

func scheduleCmd(a *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage an event's Borda point schedule",
	}
	cmd.PersistentFlags().Int64Var(&userID, "user", 0, "ID of the admin or event leader making the change")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(&cobra.Command{
		Use:   "set <event-id> <rank=points>...",
		Short: "Replace the point schedule; ranks without an entry use N - rank",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			schedule, err := parseScheduleArgs(args[1:])
			if err != nil {
				return err
			}
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}

			if err := a.service.UpdatePointSchedule(cmd.Context(), eventID, userID, schedule); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Point schedule of event %d updated (%d ranks); run calculate to apply it", eventID, len(schedule))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <event-id>",
		Short: "Restore the default N - rank points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}

			if err := a.service.UpdatePointSchedule(cmd.Context(), eventID, userID, nil); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Point schedule of event %d cleared", eventID)
			return nil
		},
	})

	return cmd
}
