package youtrack

import (
	"context"
	"fmt"
	"time"

	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/gtd"
)

// ConvertBoard fetches the root issue (an epic or mission ticket) and turns
// its linked issues into one board. Only one level of links is expanded:
// each linked issue becomes a project, its outward subtasks become actions.
func ConvertBoard(ctx context.Context, fetcher Fetcher, baseURL, rootID string) (gtd.Board, error) {
	root, err := fetcher.Fetch(ctx, rootID)
	if err != nil {
		return gtd.Board{}, fmt.Errorf("fetch board root %s: %w", rootID, err)
	}

	title := root.Summary
	if title == "" {
		title = root.ID
	}

	var projects []gtd.Project
	for _, link := range root.Links {
		for _, linked := range link.Issues {
			full, err := fetcher.Fetch(ctx, linked.ID)
			if err != nil {
				return gtd.Board{}, fmt.Errorf("board %s: fetch linked issue %s: %w", rootID, linked.ID, err)
			}
			projects = append(projects, IssueToProject(full, baseURL))
		}
	}

	return gtd.Board{Title: title, Projects: projects}, nil
}

// IssueToProject maps one fully fetched issue to a project.
func IssueToProject(issue *Issue, baseURL string) gtd.Project {
	var actions []gtd.Action
	for _, link := range issue.Links {
		if link.LinkType.Name != "Subtask" || link.Direction != "OUTWARD" {
			continue
		}
		for _, subtask := range link.Issues {
			title := subtask.Summary
			if title == "" {
				title = subtask.ID
			}
			actions = append(actions, gtd.Action{
				Title:     title,
				Created:   createdOrNow(subtask.Created),
				Completed: subtask.Resolved != nil,
			})
		}
	}

	title := issue.Summary
	if title == "" {
		title = issue.ID
	}

	tags := make([]string, 0, len(issue.Tags))
	for _, tag := range issue.Tags {
		tags = append(tags, tag.Name)
	}

	origin := fmt.Sprintf("%s/issue/%s", baseURL, issue.ID)

	return gtd.Project{
		Title:       title,
		IsCompleted: issue.Resolved != nil,
		Description: optional(issue.Description),
		Created:     Millis(issue.Created),
		Updated:     Millis(issue.Updated),
		Completed:   Millis(issue.Resolved),
		Due:         issue.DateFieldValue("Due Date"),
		Stage:       issue.FieldValue("Stage"),
		Actions:     actions,
		Tags:        tags,
		Origin:      &origin,
	}
}

// createdOrNow falls back to the current time when the linked projection
// carries no creation stamp.
func createdOrNow(ms *int64) time.Time {
	if t := Millis(ms); t != nil {
		return *t
	}
	return time.Now().UTC()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
