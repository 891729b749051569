// Package markdown renders gtd boards as Obsidian Kanban plugin files.
// Each board becomes a sub-directory holding one board file plus one note
// file per project that has a body; completed project notes go to Archive/.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/gtd"
)

// Markers used by the Obsidian Tasks plugin date syntax.
const (
	createdMarker   = "➕"
	dueMarker       = "📅"
	completedMarker = "✅"
)

// settingsBlock is the opaque configuration fragment the Kanban plugin
// expects at the end of a board file. Emitted verbatim.
const settingsBlock = "%% kanban:settings\n" +
	"```\n" +
	`{"kanban-plugin":"board","list-collapse":[null,false],"move-dates":true,"metadata-keys":[{"metadataKey":"created","label":"","shouldHideLabel":false,"containsMarkdown":false},{"metadataKey":"due","label":"","shouldHideLabel":false,"containsMarkdown":false}]}` + "\n" +
	"```\n" +
	"%%\n"

// Options tunes rendering. The zero value is usable.
type Options struct {
	// TodoLabel is the column header for incomplete projects without a
	// stage. Defaults to "TODO".
	TodoLabel string
}

func (o Options) todoLabel() string {
	if o.TodoLabel == "" {
		return "TODO"
	}
	return o.TodoLabel
}

// Sanitize removes characters that are illegal in file names or break
// wiki links, replacing each with an underscore. The same rule names
// files and builds the [[...]] tokens referencing them, so the two always
// agree.
func Sanitize(s string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|', '#', '^', '[', ']':
			return '_'
		}
		return r
	}, s)
	return strings.TrimSpace(replaced)
}

// ShortDate formats an instant as its UTC calendar date. Time of day and
// zone are never shown.
func ShortDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WriteBoard writes one board as a directory under outputDir. Any previous
// contents of the board directory are removed first so renames do not
// leave stale files behind.
func WriteBoard(board gtd.Board, outputDir string, opts Options) error {
	boardDir := filepath.Join(outputDir, Sanitize(board.Title))
	if err := os.RemoveAll(boardDir); err != nil {
		return fmt.Errorf("clear board dir: %w", err)
	}
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}

	var todo, done []gtd.Project
	for _, p := range board.Projects {
		if p.IsCompleted {
			done = append(done, p)
		} else {
			todo = append(todo, p)
		}
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("kanban-plugin: board\n")
	b.WriteString("---\n")

	for _, group := range groupByStage(todo, opts.todoLabel()) {
		fmt.Fprintf(&b, "## %s\n", group.label)
		for _, p := range group.projects {
			b.WriteString(taskLine(p))
		}
	}

	b.WriteString("## Done\n")
	sort.SliceStable(done, func(i, j int) bool {
		return beforeCompleted(done[i].Completed, done[j].Completed)
	})
	for _, p := range done {
		b.WriteString(taskLine(p))
	}

	b.WriteString("\n")
	b.WriteString(settingsBlock)

	boardFile := filepath.Join(boardDir, Sanitize(board.Title)+" Kanban.md")
	if err := os.WriteFile(boardFile, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}

	for _, p := range board.Projects {
		if !p.HasBody() {
			continue
		}
		if err := writeProjectFile(p, boardDir); err != nil {
			return fmt.Errorf("project %q: %w", p.Title, err)
		}
	}
	return nil
}

// WriteIndex writes an index.md listing each board as a link token.
func WriteIndex(boardTitles []string, outputDir string) error {
	var b strings.Builder
	for _, title := range boardTitles {
		fmt.Fprintf(&b, " - [[%s Kanban]]\n", Sanitize(title))
	}
	path := filepath.Join(outputDir, "index.md")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

type stageGroup struct {
	label    string
	projects []gtd.Project
}

// groupByStage buckets incomplete projects by their stage label in
// first-encounter order. Projects without a stage fall under todoLabel.
func groupByStage(projects []gtd.Project, todoLabel string) []stageGroup {
	index := make(map[string]int)
	var groups []stageGroup
	for _, p := range projects {
		label := todoLabel
		if p.Stage != nil {
			label = *p.Stage
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, stageGroup{label: label})
		}
		groups[i].projects = append(groups[i].projects, p)
	}
	return groups
}

// beforeCompleted orders completion stamps ascending with absent first.
func beforeCompleted(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

// taskLine renders one project as a board checklist line. Projects with a
// body link to their note, which carries the created/due dates; oneliners
// carry the dates inline.
func taskLine(p gtd.Project) string {
	flag := " "
	if p.IsCompleted {
		flag = "x"
	}
	completedSuffix := ""
	if p.Completed != nil {
		completedSuffix = " " + completedMarker + " " + ShortDate(*p.Completed)
	}
	if p.HasBody() {
		return fmt.Sprintf("- [%s] [[%s]]%s\n", flag, Sanitize(p.Title), completedSuffix)
	}
	createdSuffix := ""
	if p.Created != nil {
		createdSuffix = " " + createdMarker + " " + ShortDate(*p.Created)
	}
	dueSuffix := ""
	if p.Due != nil {
		dueSuffix = " " + dueMarker + " " + ShortDate(*p.Due)
	}
	return fmt.Sprintf("- [%s] %s%s%s%s\n", flag, p.Title, createdSuffix, dueSuffix, completedSuffix)
}

func writeProjectFile(p gtd.Project, boardDir string) error {
	dir := boardDir
	if p.IsCompleted {
		dir = filepath.Join(boardDir, "Archive")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}

	var b strings.Builder

	if p.Created != nil || p.Updated != nil || p.Due != nil || p.Completed != nil || p.Origin != nil {
		b.WriteString("---\n")
		if p.Created != nil {
			fmt.Fprintf(&b, "created: %s\n", ShortDate(*p.Created))
		}
		if p.Updated != nil {
			fmt.Fprintf(&b, "modified: %s\n", ShortDate(*p.Updated))
		}
		if p.Due != nil {
			fmt.Fprintf(&b, "due: %s\n", ShortDate(*p.Due))
		}
		if p.Completed != nil {
			fmt.Fprintf(&b, "completed: %s\n", ShortDate(*p.Completed))
		}
		if p.Origin != nil {
			fmt.Fprintf(&b, "origin: %s\n", *p.Origin)
		}
		b.WriteString("---\n")
	}

	if len(p.Actions) > 0 || (p.Due != nil && !p.IsCompleted) {
		b.WriteString("## Actions\n")
		b.WriteString("\n")
		if !p.IsCompleted && p.Due != nil {
			fmt.Fprintf(&b, "- [ ] Finish until %s %s\n", dueMarker, ShortDate(*p.Due))
		}
		actions := make([]gtd.Action, len(p.Actions))
		copy(actions, p.Actions)
		sort.SliceStable(actions, func(i, j int) bool {
			return !actions[i].Completed && actions[j].Completed
		})
		for _, a := range actions {
			b.WriteString(actionLine(a))
		}
	}

	if p.Description != nil {
		b.WriteString("## Description\n")
		b.WriteString("\n")
		for _, line := range strings.Split(*p.Description, "\n") {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	for _, tag := range p.Tags {
		fmt.Fprintf(&b, "#%s\n", strings.ToLower(tag))
	}
	if p.IsCompleted {
		b.WriteString("#archive\n")
	}
	b.WriteString("#project\n")

	path := filepath.Join(dir, Sanitize(p.Title)+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	return nil
}

// actionLine renders e.g. "- [ ] Call plumber ➕ 2026-02-13 📅 2026-02-14".
func actionLine(a gtd.Action) string {
	flag := " "
	if a.Completed {
		flag = "x"
	}
	dueSuffix := ""
	if a.Due != nil {
		dueSuffix = " " + dueMarker + " " + ShortDate(*a.Due)
	}
	return fmt.Sprintf("- [%s] %s %s %s%s\n", flag, a.Title, createdMarker, ShortDate(a.Created), dueSuffix)
}
