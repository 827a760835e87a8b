package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

type storeOpener func(ctx context.Context, userID string) (*services.HistoryStore, func() error, error)

type cli struct {
	open  storeOpener
	user  string
	store *services.HistoryStore
	close func() error
}

func newCLI(open storeOpener) *cli {
	return &cli{open: open}
}

// Close releases the backend opened for the last command, if any.
func (c *cli) Close() error {
	if c.close == nil {
		return nil
	}
	closeFn := c.close
	c.close = nil
	return closeFn()
}

func (c *cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "habitctl",
		Short:         "Inspect and edit a Kanso habit history",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := c.open(cmd.Context(), c.user)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			c.store = store
			c.close = closeFn
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.user, "user", "u", middleware.LocalOwnerID, "Owner of the history")

	logCmd := &cobra.Command{
		Use:   "log <habit> <DD.MM.YYYY> <value>",
		Short: "Record a value (true, false or a number) for a habit on a date",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runLog,
	}
	logCmd.Flags().Float64("goal", 0, "Daily goal of a numeric habit")
	logCmd.Flags().Float64("sum", 0, "Running total for the day (defaults to the value)")

	removeCmd := &cobra.Command{
		Use:   "remove <DD.MM.YYYY> <habit>",
		Short: "Remove a habit entry from a date",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runRemove,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the history in chronological order",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	showCmd.Flags().String("from", "", "First day to show (YYYY-MM-DD)")
	showCmd.Flags().String("to", "", "Last day to show (YYYY-MM-DD)")

	datesCmd := &cobra.Command{
		Use:   "dates",
		Short: "List the recorded dates",
		Args:  cobra.NoArgs,
		RunE:  c.runDates,
	}

	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Print one series per goal-carrying habit as JSON",
		Args:  cobra.NoArgs,
		RunE:  c.runDataset,
	}

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the series aligned on a shared date axis as JSON",
		Args:  cobra.NoArgs,
		RunE:  c.runChart,
	}
	chartCmd.Flags().String("from", "0000-01-01", "First day (YYYY-MM-DD)")
	chartCmd.Flags().String("to", "9999-12-31", "Last day (YYYY-MM-DD)")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every recorded date",
		Args:  cobra.NoArgs,
		RunE:  c.runReset,
	}
	resetCmd.Flags().Bool("force", false, "Required to confirm the deletion of all data.")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the raw history mapping",
		Args:  cobra.NoArgs,
		RunE:  c.runExport,
	}
	exportCmd.Flags().String("format", "json", "Output format (json, yaml)")

	rootCmd.AddCommand(logCmd, removeCmd, showCmd, datesCmd, datasetCmd, chartCmd, resetCmd, exportCmd)
	return rootCmd
}

// parseValue reads "true"/"false" as a boolean value and anything else as
// a number.
func parseValue(s string) (domain.EntryValue, error) {
	switch strings.ToLower(s) {
	case "true":
		return domain.BoolValue(true), nil
	case "false":
		return domain.BoolValue(false), nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.EntryValue{}, fmt.Errorf("value %q is neither true, false nor a number", s)
	}
	return domain.NumberValue(n), nil
}

func (c *cli) runLog(cmd *cobra.Command, args []string) error {
	value, err := parseValue(args[2])
	if err != nil {
		return err
	}

	data := domain.HistoryData{Title: args[0], Date: args[1]}
	if cmd.Flags().Changed("goal") {
		goal, _ := cmd.Flags().GetFloat64("goal")
		data.Goal = &goal
	}

	var sum *float64
	if value.IsNumber() {
		s := value.Number()
		if cmd.Flags().Changed("sum") {
			s, _ = cmd.Flags().GetFloat64("sum")
		}
		sum = &s
	}

	entry, err := c.store.UpdateValue(cmd.Context(), value, data, sum)
	if err != nil {
		return err
	}

	status := "not completed"
	if entry.Completed {
		status = "completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s (%s)\n", entry.Name, data.Date, entry.Value, status)
	return nil
}

func (c *cli) runRemove(cmd *cobra.Command, args []string) error {
	if !c.store.RemoveEntry(cmd.Context(), args[0], args[1]) {
		return fmt.Errorf("no entry %q on %s", args[1], args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], args[0])
	return nil
}

func (c *cli) runShow(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	var days domain.OrderedHistory
	if from == "" && to == "" {
		days = c.store.OrderedHistory()
	} else {
		if from == "" {
			from = "0000-01-01"
		}
		if to == "" {
			to = "9999-12-31"
		}
		if err := checkBounds(from, to); err != nil {
			return err
		}
		days = c.store.FilteredHistoryByDate(from, to)
	}

	return writeTable(cmd.OutOrStdout(), days)
}

// checkBounds rejects ranges whose bounds are not YYYY-MM-DD dates or are
// reversed.
func checkBounds(from, to string) error {
	for _, bound := range []string{from, to} {
		if _, err := time.Parse(domain.ISODateLayout, bound); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", bound)
		}
	}
	if from > to {
		return fmt.Errorf("from %s is after to %s", from, to)
	}
	return nil
}

func writeTable(out io.Writer, days domain.OrderedHistory) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("DATE", "HABIT", "VALUE", "GOAL", "DONE")

	for _, day := range days {
		for _, e := range day.Entries {
			goal := "-"
			if e.HasGoal() {
				goal = strconv.FormatFloat(*e.Goal, 'g', -1, 64)
			}
			done := ""
			if e.Completed {
				done = "x"
			}
			t.Row(day.Date, e.Name, e.Value.String(), goal, done)
		}
	}

	_, err := fmt.Fprintln(out, t.String())
	return err
}

func (c *cli) runDates(cmd *cobra.Command, args []string) error {
	for _, date := range c.store.Dates() {
		fmt.Fprintln(cmd.OutOrStdout(), date)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) runDataset(cmd *cobra.Command, args []string) error {
	return writeJSON(cmd.OutOrStdout(), c.store.Dataset())
}

func (c *cli) runChart(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if err := checkBounds(from, to); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), services.AlignDatasets(c.store.Dataset(), from, to))
}

func (c *cli) runReset(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return errors.New("refusing to delete the whole history without --force")
	}
	c.store.ResetHistory(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}

func (c *cli) runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	history := c.store.History()

	switch format {
	case "json":
		return writeJSON(cmd.OutOrStdout(), history)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(history); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (json, yaml)", format)
	}
}
