package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/loopwork/internal/model"
	tasksync "github.com/nhle/loopwork/internal/sync"
)

func newInitCmd(configPath *string) *cobra.Command {
	var (
		company, employee, dbPath, env string
		force                          bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(*configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", *configPath)
			}

			cfg, err := model.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			if company != "" {
				cfg.Tenant.CompanyCode = company
			}
			if employee != "" {
				cfg.Tenant.EmployeeID = employee
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			if env != "" {
				cfg.Env = env
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := model.SaveConfig(*configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", *configPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code")
	cmd.Flags().StringVar(&employee, "employee", "", "signed-in employee ID")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path")
	cmd.Flags().StringVar(&env, "env", "", "local, dev or prod")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newSweepCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Purge completed tasks past the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				sweeper := tasksync.New(a.svc, a.cfg.Sweeper.Schedule, a.log)
				n, err := sweeper.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Purged %d completed tasks\n", n)
				return nil
			})
		},
	}
}

func newEmployeesCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List the employee directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				employees, err := a.store.GetEmployees(cmd.Context(), a.cfg.Tenant.CompanyCode)
				if err != nil {
					return err
				}
				if len(employees) == 0 {
					fmt.Fprintln(a.out, "No employees")
					return nil
				}

				t := newTable("ID", "NAME", "EMAIL", "DEPARTMENT", "POSITION")
				for _, e := range employees {
					t.Row(e.ID, e.Name, e.Email, e.Department, e.Position)
				}
				fmt.Fprintln(a.out, t.String())
				return nil
			})
		},
	}

	var email, department, position string
	add := &cobra.Command{
		Use:   "add ID NAME",
		Short: "Add or replace a directory entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				err := a.store.UpsertEmployee(cmd.Context(), model.Employee{
					ID:          args[0],
					Name:        args[1],
					Email:       email,
					Department:  department,
					Position:    position,
					CompanyCode: a.cfg.Tenant.CompanyCode,
					UpdatedAt:   a.svc.Now(),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Saved %s\n", args[0])
				return nil
			})
		},
	}
	add.Flags().StringVar(&email, "email", "", "email address")
	add.Flags().StringVar(&department, "department", "", "department")
	add.Flags().StringVar(&position, "position", "", "position")

	cmd.AddCommand(add)
	return cmd
}

func newSettingsCmd(open opener) *cobra.Command {
	var (
		priority, deadline, sortMode string
		purgeDays, maxOverdue        int
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the company's to-do settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				settings := a.svc.Settings()
				flags := cmd.Flags()

				if flags.Changed("priority") {
					p, err := parsePriority(priority)
					if err != nil {
						return err
					}
					settings.DefaultPriority = p
				}
				if flags.Changed("deadline") {
					switch deadline {
					case model.DeadlineNone, model.DeadlineToday, model.DeadlineTomorrow, model.DeadlineNextWeek:
						settings.DefaultDeadline = deadline
					default:
						return fmt.Errorf("unknown deadline preset %q", deadline)
					}
				}
				if flags.Changed("sort") {
					switch sortMode {
					case model.SortManual, model.SortPriority, model.SortDeadline:
						settings.DefaultSort = sortMode
					default:
						return fmt.Errorf("unknown sort mode %q", sortMode)
					}
				}
				if flags.Changed("purge-days") {
					if purgeDays < 0 {
						return errors.New("purge-days must not be negative")
					}
					settings.AutoDeleteCompletedDays = purgeDays
				}
				if flags.Changed("max-overdue") {
					if maxOverdue < 0 {
						return errors.New("max-overdue must not be negative")
					}
					settings.MaxOverdueTasks = maxOverdue
				}

				if settings != a.svc.Settings() {
					if err := a.svc.SaveSettings(cmd.Context(), settings); err != nil {
						return err
					}
				}

				fmt.Fprintf(a.out, "default priority:  %s\n", settings.DefaultPriority)
				fmt.Fprintf(a.out, "default deadline:  %s\n", settings.DefaultDeadline)
				fmt.Fprintf(a.out, "default sort:      %s\n", settings.DefaultSort)
				fmt.Fprintf(a.out, "purge after days:  %d\n", settings.AutoDeleteCompletedDays)
				fmt.Fprintf(a.out, "max overdue shown: %d\n", settings.MaxOverdueTasks)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&priority, "priority", "", "default priority")
	cmd.Flags().StringVar(&deadline, "deadline", "", "default deadline: none, today, tomorrow or nextWeek")
	cmd.Flags().StringVar(&sortMode, "sort", "", "default sort: manual, priority or deadline")
	cmd.Flags().IntVar(&purgeDays, "purge-days", 0, "purge completed tasks after N days (0 disables)")
	cmd.Flags().IntVar(&maxOverdue, "max-overdue", 0, "cap the urgent list (0 is unlimited)")
	return cmd
}
