// Package mstodo maps Microsoft To Do export snapshots to gtd boards.
package mstodo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/gtd"
)

// Decode reads an export snapshot (a JSON array of task lists).
func Decode(r io.Reader) ([]TaskList, error) {
	var lists []TaskList
	if err := json.NewDecoder(r).Decode(&lists); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return lists, nil
}

// MapBoards converts decoded export lists into boards, one board per list.
// It fails if any task uses categories, which the mapping does not support.
func MapBoards(lists []TaskList) ([]gtd.Board, error) {
	boards := make([]gtd.Board, 0, len(lists))
	for _, list := range lists {
		board, err := mapList(list)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", list.DisplayName, err)
		}
		boards = append(boards, board)
	}
	return boards, nil
}

func mapList(list TaskList) (gtd.Board, error) {
	projects := make([]gtd.Project, 0, len(list.Tasks))
	for _, task := range list.Tasks {
		project, err := mapTask(task)
		if err != nil {
			return gtd.Board{}, err
		}
		projects = append(projects, project)
	}
	return gtd.Board{Title: list.DisplayName, Projects: projects}, nil
}

func mapTask(task Task) (gtd.Project, error) {
	if len(task.Categories) > 0 {
		return gtd.Project{}, fmt.Errorf("task %q: categories are not supported: %v", task.Title, task.Categories)
	}

	created, err := parseInstant(task.CreatedDateTime)
	if err != nil {
		return gtd.Project{}, fmt.Errorf("task %q: created: %w", task.Title, err)
	}

	var actions []gtd.Action
	for _, item := range task.ChecklistItems {
		itemCreated, err := parseInstant(item.CreatedDateTime)
		if err != nil {
			return gtd.Project{}, fmt.Errorf("task %q: checklist item %q: %w", task.Title, item.DisplayName, err)
		}
		actions = append(actions, gtd.Action{
			Title:     item.DisplayName,
			Created:   *itemCreated,
			Completed: item.IsChecked,
		})
	}
	// The export carries no attachment content, only a flag. Represent the
	// manual download step as an extra open action.
	if task.HasAttachments {
		actions = append(actions, gtd.Action{
			Title:     "Download attachments",
			Created:   *created,
			Completed: false,
		})
	}

	completed, err := parseWrapped(task.CompletedDateTime)
	if err != nil {
		return gtd.Project{}, fmt.Errorf("task %q: completed: %w", task.Title, err)
	}
	due, err := dueOrReminder(task)
	if err != nil {
		return gtd.Project{}, fmt.Errorf("task %q: due: %w", task.Title, err)
	}

	return gtd.Project{
		Title:       task.Title,
		IsCompleted: task.Status == "completed",
		Description: nonBlank(task.Body.Content),
		Created:     created,
		Completed:   completed,
		Due:         due,
		Actions:     actions,
	}, nil
}

// dueOrReminder picks the due timestamp: an explicit due date wins, a
// reminder is the fallback, otherwise absent.
func dueOrReminder(task Task) (*time.Time, error) {
	if task.DueDateTime != nil {
		return parseWrapped(task.DueDateTime)
	}
	return parseWrapped(task.ReminderDateTime)
}

// nonBlank normalizes whitespace-only strings to absence.
func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func parseWrapped(dtz *DateTimeZone) (*time.Time, error) {
	if dtz == nil {
		return nil, nil
	}
	return parseInstant(dtz.DateTime)
}

// parseInstant accepts RFC 3339 as well as the export's zone-less
// fractional form ("2020-01-01T18:00:00.0000000"), which it treats as UTC.
func parseInstant(s string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", strings.SplitN(s, ".", 2)[0], time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return &t, nil
}
