package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/theme"
	"github.com/nhle/loopwork/internal/todo"
)

type opener func(ctx context.Context) (*app, error)

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, open opener, fn func(a *app) error) error {
	a, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newListCmd(open opener) *cobra.Command {
	var query, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show tasks grouped by deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			return withApp(cmd, open, func(a *app) error {
				board := a.svc.Board(query, filter)
				printBoard(a, board.Groups, board.HiddenUrgent)
				fmt.Fprintln(a.out, theme.HintStyle.Render(fmt.Sprintf("%d active", board.Active)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "match title, notes or category")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "all, active or completed")
	return cmd
}

func printBoard(a *app, g todo.Groups, hiddenUrgent int) {
	now := a.svc.Now()
	sections := []struct {
		name  string
		tasks []model.Task
	}{
		{theme.GroupUrgent, g.Urgent},
		{theme.GroupUpcoming, g.Upcoming},
		{theme.GroupLater, g.Later},
		{theme.GroupCompleted, g.Completed},
	}

	for _, sec := range sections {
		if len(sec.tasks) == 0 {
			continue
		}
		heading := fmt.Sprintf("%s (%d)", sec.name, len(sec.tasks))
		fmt.Fprintln(a.out, theme.GroupStyle(sec.name).Render(heading))
		printTasks(a.out, sec.tasks, now, a.svc.EmployeeName)
		if sec.name == theme.GroupUrgent && hiddenUrgent > 0 {
			fmt.Fprintln(a.out, theme.HintStyle.Render(fmt.Sprintf("... and %d more overdue", hiddenUrgent)))
		}
	}
}

func printTasks(w io.Writer, tasks []model.Task, now time.Time, name func(string) string) {
	t := newTable("ID", "TITLE", "DUE", "PRIORITY", "ASSIGNEE", "TAGS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderStyle
			}
			if col == 3 && row >= 0 && row < len(tasks) {
				return theme.PriorityStyle(tasks[row].Priority).Padding(0, 1)
			}
			return theme.CellStyle
		})
	for _, task := range tasks {
		t.Row(
			shortID(task.ID),
			task.Title,
			todo.DeadlineLabel(task.Deadline, now),
			string(task.Priority),
			name(task.AssignedTo),
			strings.Join(task.Tags, ","),
		)
	}
	fmt.Fprintln(w, t.String())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorder).
		Headers(headers...)
}

// shortID trims UUIDs for display; commands accept any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a unique ID prefix to the full task ID.
func resolveID(a *app, prefix string) (string, error) {
	var match string
	for _, t := range a.svc.Tasks() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("task ID prefix %q is ambiguous", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", &todo.NotFoundError{ID: prefix}
	}
	return match, nil
}

// parseDeadline accepts a preset (today, tomorrow, nextWeek) or a
// YYYY-MM-DD date in now's location.
func parseDeadline(s string, now time.Time) (time.Time, error) {
	switch s {
	case model.DeadlineToday, model.DeadlineTomorrow, model.DeadlineNextWeek:
		return todo.DeadlineFromPreset(s, now), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline %q: want YYYY-MM-DD, today, tomorrow or nextWeek", s)
	}
	return d, nil
}

func parsePriority(s string) (model.Priority, error) {
	p, err := model.ParsePriority(s)
	if err != nil {
		return "", &todo.ValidationError{Field: "priority", Reason: err.Error()}
	}
	return p, nil
}

func newAddCmd(open opener) *cobra.Command {
	var (
		deadline, priority, notes, category, assignee string
		tags                                          []string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				in := model.CreateTaskInput{
					Title:      strings.Join(args, " "),
					Notes:      notes,
					Category:   category,
					Tags:       tags,
					AssignedTo: assignee,
				}
				if deadline != "" {
					d, err := parseDeadline(deadline, a.svc.Now())
					if err != nil {
						return err
					}
					in.Deadline = &d
				}
				if priority != "" {
					p, err := parsePriority(priority)
					if err != nil {
						return err
					}
					in.Priority = p
				}

				task, err := a.svc.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Created %s %q due %s\n",
					shortID(task.ID), task.Title, todo.DeadlineLabel(task.Deadline, a.svc.Now()))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "YYYY-MM-DD, today, tomorrow or nextWeek")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().StringVar(&assignee, "assign", "", "assignee employee ID")
	return cmd
}

func newEditCmd(open opener) *cobra.Command {
	var (
		title, deadline, priority, notes, category, assignee string
		tags                                                 []string
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				id, err := resolveID(a, args[0])
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				var patch model.TaskPatch
				if flags.Changed("title") {
					patch.Title = &title
				}
				if flags.Changed("deadline") {
					d, err := parseDeadline(deadline, a.svc.Now())
					if err != nil {
						return err
					}
					patch.Deadline = &d
				}
				if flags.Changed("priority") {
					p, err := parsePriority(priority)
					if err != nil {
						return err
					}
					patch.Priority = &p
				}
				if flags.Changed("notes") {
					patch.Notes = &notes
				}
				if flags.Changed("category") {
					patch.Category = &category
				}
				if flags.Changed("tag") {
					patch.Tags = &tags
				}
				if flags.Changed("assign") {
					patch.AssignedTo = &assignee
				}
				if patch.IsEmpty() {
					return errors.New("nothing to change")
				}

				task, err := a.svc.Update(cmd.Context(), id, patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Updated %s %q\n", shortID(task.ID), task.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "YYYY-MM-DD, today, tomorrow or nextWeek")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "replace tags (repeatable)")
	cmd.Flags().StringVar(&assignee, "assign", "", "assignee employee ID")
	return cmd
}

func newToggleCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a task done, or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				id, err := resolveID(a, args[0])
				if err != nil {
					return err
				}
				task, err := a.svc.Toggle(cmd.Context(), id)
				if err != nil {
					return err
				}
				state := "reopened"
				if task.Completed {
					state = "completed"
				}
				fmt.Fprintf(a.out, "%s %q %s\n", shortID(task.ID), task.Title, state)
				return nil
			})
		},
	}
}

func newRmCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app) error {
				id, err := resolveID(a, args[0])
				if err != nil {
					// Deleting something already gone is fine.
					var nf *todo.NotFoundError
					if errors.As(err, &nf) {
						fmt.Fprintf(a.out, "Deleted %s\n", args[0])
						return nil
					}
					return err
				}
				if err := a.svc.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted %s\n", shortID(id))
				return nil
			})
		},
	}
}
