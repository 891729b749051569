package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yuriykulikov/MarkdownObsidianInjester/internal/gtd"
)

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func utc(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Buy milk", "Buy milk"},
		{`Ship: v1/2`, "Ship_ v1_2"},
		{`a\b/c:d*e?f"g<h>i|j#k^l[m]n`, "a_b_c_d_e_f_g_h_i_j_k_l_m_n"},
		{"  padded  ", "padded"},
		{"[[link]]", "__link__"},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Buy milk", `Ship: v1/2`, `a\b#c[d]`, "  padded  "}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, twice, once)
		}
		if strings.ContainsAny(once, `\/:*?"<>|#^[]`) {
			t.Errorf("Sanitize(%q) = %q still contains forbidden characters", in, once)
		}
	}
}

func TestShortDate_AlwaysUTC(t *testing.T) {
	// 2026-02-14T00:59+01:00 is 2026-02-13T23:59Z.
	offset := time.FixedZone("CET", 3600)
	instant := time.Date(2026, 2, 14, 0, 59, 0, 0, offset)
	if got := ShortDate(instant); got != "2026-02-13" {
		t.Errorf("ShortDate = %q, want 2026-02-13", got)
	}
}

func TestWriteBoard_EndToEnd(t *testing.T) {
	board := gtd.Board{
		Title: "Test",
		Projects: []gtd.Project{
			{
				Title: "Buy milk",
				Due:   timePtr(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)),
			},
			{
				Title: "Write report",
				Actions: []gtd.Action{
					{Title: "Outline", Created: utc(2025, 12, 1)},
				},
			},
		},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boardContent := readFile(t, filepath.Join(out, "Test", "Test Kanban.md"))

	if !strings.Contains(boardContent, "## TODO\n") {
		t.Error("board file should have a TODO section")
	}
	if !strings.Contains(boardContent, "- [ ] Buy milk 📅 2026-01-01\n") {
		t.Errorf("missing oneliner with due date:\n%s", boardContent)
	}
	if !strings.Contains(boardContent, "- [ ] [[Write report]]\n") {
		t.Errorf("missing link token line:\n%s", boardContent)
	}
	if !strings.Contains(boardContent, "## Done\n") {
		t.Error("board file should have a Done section")
	}
	if !strings.Contains(boardContent, "%% kanban:settings") {
		t.Error("board file should end with the settings block")
	}
	if !strings.HasPrefix(boardContent, "---\nkanban-plugin: board\n---\n") {
		t.Error("board file should start with the kanban front matter")
	}

	// The oneliner gets no file; the project with a body gets exactly one.
	if _, err := os.Stat(filepath.Join(out, "Test", "Buy milk.md")); !os.IsNotExist(err) {
		t.Error("oneliner must not produce a project file")
	}
	noteContent := readFile(t, filepath.Join(out, "Test", "Write report.md"))
	if !strings.Contains(noteContent, "## Actions\n") {
		t.Errorf("project note should have an Actions section:\n%s", noteContent)
	}
	if !strings.Contains(noteContent, "- [ ] Outline ➕ 2025-12-01\n") {
		t.Errorf("project note should list the action:\n%s", noteContent)
	}
}

func TestWriteBoard_LinkTokenMatchesFileName(t *testing.T) {
	board := gtd.Board{
		Title: "Roadmap",
		Projects: []gtd.Project{{
			Title:       `Ship: v1/2`,
			Description: strPtr("release notes"),
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boardContent := readFile(t, filepath.Join(out, "Roadmap", "Roadmap Kanban.md"))
	if !strings.Contains(boardContent, "[[Ship_ v1_2]]") {
		t.Errorf("link token should use the sanitized title:\n%s", boardContent)
	}
	if _, err := os.Stat(filepath.Join(out, "Roadmap", "Ship_ v1_2.md")); err != nil {
		t.Errorf("project file name should match the link token: %v", err)
	}
}

func TestWriteBoard_StageGrouping(t *testing.T) {
	stageLater := strPtr("Later")
	board := gtd.Board{
		Title: "Staged",
		Projects: []gtd.Project{
			{Title: "First", Stage: stageLater},
			{Title: "Second"},
			{Title: "Third", Stage: stageLater},
		},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{TodoLabel: "ASAP"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "Staged", "Staged Kanban.md"))

	later := strings.Index(content, "## Later\n")
	asap := strings.Index(content, "## ASAP\n")
	if later == -1 || asap == -1 {
		t.Fatalf("expected Later and ASAP sections:\n%s", content)
	}
	if later > asap {
		t.Error("stage sections should keep first-encounter order")
	}
	laterSection := content[later:asap]
	if !strings.Contains(laterSection, "- [ ] First\n") || !strings.Contains(laterSection, "- [ ] Third\n") {
		t.Errorf("Later section should hold both staged projects:\n%s", laterSection)
	}
}

func TestWriteBoard_DoneSortedByCompletion(t *testing.T) {
	board := gtd.Board{
		Title: "History",
		Projects: []gtd.Project{
			{Title: "Newest", IsCompleted: true, Completed: timePtr(utc(2026, 3, 1))},
			{Title: "Oldest", IsCompleted: true, Completed: timePtr(utc(2026, 1, 1))},
			{Title: "Middle", IsCompleted: true, Completed: timePtr(utc(2026, 2, 1))},
		},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "History", "History Kanban.md"))
	oldest := strings.Index(content, "Oldest")
	middle := strings.Index(content, "Middle")
	newest := strings.Index(content, "Newest")
	if !(oldest < middle && middle < newest) {
		t.Errorf("done section should be sorted by completion ascending:\n%s", content)
	}
	if !strings.Contains(content, "- [x] Oldest ✅ 2026-01-01\n") {
		t.Errorf("completed oneliner should carry the completion date:\n%s", content)
	}
}

func TestWriteBoard_ActionSortIsStable(t *testing.T) {
	board := gtd.Board{
		Title: "Sorting",
		Projects: []gtd.Project{{
			Title: "Ordered",
			Actions: []gtd.Action{
				{Title: "A", Created: utc(2026, 1, 1), Completed: true},
				{Title: "B", Created: utc(2026, 1, 2)},
				{Title: "C", Created: utc(2026, 1, 3)},
			},
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "Sorting", "Ordered.md"))
	a := strings.Index(content, "- [x] A")
	b := strings.Index(content, "- [ ] B")
	c := strings.Index(content, "- [ ] C")
	if !(b < c && c < a) {
		t.Errorf("expected order B, C, A:\n%s", content)
	}
}

func TestWriteBoard_CompletedProjectGoesToArchive(t *testing.T) {
	board := gtd.Board{
		Title: "Archive test",
		Projects: []gtd.Project{{
			Title:       "Old project",
			IsCompleted: true,
			Completed:   timePtr(utc(2026, 1, 5)),
			Description: strPtr("all done"),
			Tags:        []string{"Home", "2026"},
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(out, "Archive test", "Archive", "Old project.md")
	content := readFile(t, path)

	if !strings.Contains(content, "completed: 2026-01-05\n") {
		t.Errorf("front matter should carry the completion date:\n%s", content)
	}
	if !strings.Contains(content, "#home\n") || !strings.Contains(content, "#2026\n") {
		t.Errorf("tags should be lower-cased hashtags:\n%s", content)
	}
	if !strings.Contains(content, "#archive\n") {
		t.Errorf("completed note should carry #archive:\n%s", content)
	}
	if !strings.HasSuffix(content, "#project\n") {
		t.Errorf("note should end with the #project marker:\n%s", content)
	}
}

func TestWriteBoard_DueProducesFinishUntilLine(t *testing.T) {
	board := gtd.Board{
		Title: "Due test",
		Projects: []gtd.Project{{
			Title:       "Report",
			Due:         timePtr(utc(2026, 4, 1)),
			Description: strPtr("quarterly"),
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "Due test", "Report.md"))
	if !strings.Contains(content, "- [ ] Finish until 📅 2026-04-01\n") {
		t.Errorf("incomplete due project should get a Finish until line:\n%s", content)
	}
}

func TestWriteBoard_ProjectFrontMatter(t *testing.T) {
	origin := "https://example.youtrack.cloud/issue/Y-10"
	board := gtd.Board{
		Title: "Meta",
		Projects: []gtd.Project{{
			Title:       "Tracked",
			Description: strPtr("from the tracker"),
			Created:     timePtr(utc(2026, 1, 1)),
			Updated:     timePtr(utc(2026, 1, 2)),
			Due:         timePtr(utc(2026, 1, 3)),
			Origin:      &origin,
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "Meta", "Tracked.md"))
	want := "---\n" +
		"created: 2026-01-01\n" +
		"modified: 2026-01-02\n" +
		"due: 2026-01-03\n" +
		"origin: " + origin + "\n" +
		"---\n"
	if !strings.HasPrefix(content, want) {
		t.Errorf("unexpected front matter:\n%s", content)
	}
}

func TestWriteBoard_DescriptionCopiedVerbatim(t *testing.T) {
	board := gtd.Board{
		Title: "Desc",
		Projects: []gtd.Project{{
			Title:       "Multi line",
			Description: strPtr("first line\n\n  indented third line"),
		}},
	}

	out := t.TempDir()
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "Desc", "Multi line.md"))
	if !strings.Contains(content, "## Description\n\nfirst line\n\n  indented third line\n") {
		t.Errorf("description lines should be copied verbatim:\n%s", content)
	}
}

func TestWriteBoard_ReplacesStaleFiles(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "Fresh", "Removed project.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	board := gtd.Board{Title: "Fresh", Projects: []gtd.Project{{Title: "Kept"}}}
	if err := WriteBoard(board, out, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("rendering should clear stale files from the board directory")
	}
}

func TestWriteIndex(t *testing.T) {
	out := t.TempDir()
	if err := WriteIndex([]string{"Household", `Ship: v1/2`}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := readFile(t, filepath.Join(out, "index.md"))
	want := " - [[Household Kanban]]\n - [[Ship_ v1_2 Kanban]]\n"
	if content != want {
		t.Errorf("index = %q, want %q", content, want)
	}
}
