/*
main.go - Command-line binding for the shift scheduling engine

PURPOSE:
  The CLI counterpart to cmd/server: the same engine operations (add,
  list, delete, filter, calendar, export) driven from the terminal
  against the same stores.

EXAMPLES:
  shiftctl add --date 2026-01-01 --time "09:00-13:00" --employee Alice
  shiftctl list --employee ali
  shiftctl list --from 2026-05-01 --days 7
  shiftctl delete 6f1c9b4e-...
  shiftctl calendar --month 2026-05
  shiftctl export shifts.csv
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/jsonfile"
	"github.com/warp/shift-engine/store/sqlite"
)

var (
	flagStore    string
	flagDB       string
	flagShifts   string
	flagSettings string
)

func main() {
	root := &cobra.Command{
		Use:           "shiftctl",
		Short:         "Manage shift assignments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagStore, "store", "json", `storage backend: "json" or "sqlite"`)
	root.PersistentFlags().StringVar(&flagDB, "db", "shifts.db", "SQLite database path")
	root.PersistentFlags().StringVar(&flagShifts, "shifts", "shifts.json", "shifts JSON file path")
	root.PersistentFlags().StringVar(&flagSettings, "settings", "settings.json", "settings JSON file path")

	root.AddCommand(addCmd(), listCmd(), deleteCmd(), calendarCmd(), exportCmd(), settingsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withEngine opens the configured store, runs fn, and closes the store.
func withEngine(fn func(*schedule.Engine) error) error {
	switch flagStore {
	case "sqlite":
		s, err := sqlite.New(flagDB)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(schedule.NewEngine(s))
	case "json":
		return fn(schedule.NewEngine(jsonfile.New(flagShifts, flagSettings)))
	default:
		return fmt.Errorf("unknown store backend %q", flagStore)
	}
}

func addCmd() *cobra.Command {
	var date, slot, employee string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book an employee into a slot on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				created, err := e.Create(cmd.Context(), date, slot, employee)
				var capErr *schedule.CapacityError
				if errors.As(err, &capErr) {
					return fmt.Errorf("%q is fully booked on %s (quota %d)",
						capErr.SlotType, capErr.Date, capErr.Quota)
				}
				if err != nil {
					return err
				}
				fmt.Printf("Added %s | %s | %s (id %s)\n",
					created.Date, created.SlotType, created.Employee, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&slot, "time", "", "slot type (e.g. 09:00-13:00)")
	cmd.Flags().StringVar(&employee, "employee", "", "employee name")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	return cmd
}

func listCmd() *cobra.Command {
	var employee, date, month, from string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts sorted by date and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				shifts, err := e.Shifts(cmd.Context())
				if err != nil {
					return err
				}
				if employee != "" {
					shifts = schedule.FilterByEmployee(shifts, employee)
				}
				if date != "" {
					shifts = schedule.FilterByDate(shifts, date)
				}
				if month != "" {
					shifts = schedule.FilterByMonth(shifts, month)
				}
				if from != "" {
					shifts, err = schedule.FilterByRange(shifts, from, days)
					if err != nil {
						return err
					}
				}
				if len(shifts) == 0 {
					fmt.Println("No shifts scheduled.")
					return nil
				}
				for _, s := range schedule.SortByDateTime(shifts) {
					fmt.Printf("%s | %s | %s | %s\n", s.Date, s.SlotType, s.Employee, s.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "filter by employee substring")
	cmd.Flags().StringVar(&date, "date", "", "filter by exact date")
	cmd.Flags().StringVar(&month, "month", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&from, "from", "", "window start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 7, "window length in days (with --from)")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shift by its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				removed, err := e.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Removed %s | %s | %s\n", removed.Date, removed.SlotType, removed.Employee)
				return nil
			})
		},
	}
}

func calendarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the employee/date grid with per-employee totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				shifts, err := e.Shifts(cmd.Context())
				if err != nil {
					return err
				}
				if month != "" {
					shifts = schedule.FilterByMonth(shifts, month)
				}
				if len(shifts) == 0 {
					fmt.Println("No shifts scheduled.")
					return nil
				}

				lookup := schedule.ScheduleLookup(shifts)
				stats := schedule.CountByEmployee(shifts)
				dates := schedule.Dates(shifts)

				for _, emp := range schedule.Employees(shifts) {
					fmt.Printf("%s (%d):\n", emp, stats[emp])
					for _, d := range dates {
						if slot, ok := lookup[schedule.ScheduleKey{Employee: emp, Date: d}]; ok {
							fmt.Printf("  %s  %s\n", d, slot)
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to a month (YYYY-MM)")
	return cmd
}

func exportCmd() *cobra.Command {
	var withBOM bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export shifts as CSV (date,time,employee)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				out := os.Stdout
				if len(args) == 1 {
					f, err := os.Create(args[0])
					if err != nil {
						return err
					}
					defer f.Close()
					out = f
				}
				if err := e.ExportCSV(cmd.Context(), out, withBOM); err != nil {
					return err
				}
				if len(args) == 1 {
					fmt.Printf("Shifts saved to %s\n", args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withBOM, "bom", true, "prepend a UTF-8 byte-order marker")
	return cmd
}

func settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *schedule.Engine) error {
				catalog, err := e.Catalog(cmd.Context())
				if err != nil {
					return err
				}
				printRules := func(header string, rules []schedule.Rule) {
					fmt.Println(header)
					if len(rules) == 0 {
						fmt.Println("  (none)")
						return
					}
					for _, r := range rules {
						if r.Label != "" {
							fmt.Printf("  %-20s %-15s quota %d\n", r.Name, r.Label, r.Quota)
						} else {
							fmt.Printf("  %-20s %-15s quota %d\n", r.Name, "-", r.Quota)
						}
					}
				}
				printRules("Shift types:", catalog.ShiftTypes)
				printRules("Leave types:", catalog.LeaveTypes)
				return nil
			})
		},
	}
}
