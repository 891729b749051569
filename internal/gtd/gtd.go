// Package gtd holds the unified board model that every source converts
// into and the markdown renderer consumes.
package gtd

import "time"

// Board is one Kanban board: a titled, ordered collection of projects.
// It maps to one output sub-directory.
type Board struct {
	Title    string
	Projects []Project
}

// Project is a single unit of work on a board. Depending on HasBody it is
// rendered either as a one-line board entry or as its own note file.
type Project struct {
	Title       string
	IsCompleted bool
	Description *string
	Created     *time.Time
	Updated     *time.Time
	Completed   *time.Time
	Due         *time.Time
	Actions     []Action
	Stage       *string
	Tags        []string
	Origin      *string
}

// Action is a sub-task line inside a project.
type Action struct {
	Title     string
	Created   time.Time
	Completed bool
	Due       *time.Time
}

// HasBody reports whether the project needs its own note file.
// A project with a description or at least one action gets a file;
// everything else is a oneliner on the board itself.
func (p Project) HasBody() bool {
	return p.Description != nil || len(p.Actions) > 0
}
