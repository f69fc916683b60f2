package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/focal-dev/focal/internal/config"
	"github.com/focal-dev/focal/internal/project"
)

func fixtureTable(n int) project.Table {
	t := project.Table{Mode: project.ModeDepthReduced}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, project.Row{
			Position: i,
			Label:    fmt.Sprintf("fn%d", i),
			Time:     0.1,
		})
	}
	return t
}

func TestTableViewHonorsRowLimit(t *testing.T) {
	m := Model{cfg: config.Config{RowLimit: 3}, table: fixtureTable(10)}

	out := renderTableView(&m, 100, 20)

	lines := strings.Split(out, "\n")
	if got, want := len(lines), 4; got != want { // column heads + 3 rows
		t.Fatalf("expected %d lines with row_limit 3, got %d:\n%s", want, got, out)
	}
}

func TestTableViewZeroRowLimitUsesHeight(t *testing.T) {
	m := Model{table: fixtureTable(10)}

	out := renderTableView(&m, 100, 6)

	lines := strings.Split(out, "\n")
	if got, want := len(lines), 6; got != want { // column heads + 5 rows
		t.Fatalf("expected %d lines for height 6, got %d:\n%s", want, got, out)
	}
}

func TestTableViewRowLimitKeepsCursorVisible(t *testing.T) {
	m := Model{cfg: config.Config{RowLimit: 3}, table: fixtureTable(10)}
	m.selectedRow = 7

	out := renderTableView(&m, 100, 20)

	if !strings.Contains(out, "fn7") {
		t.Errorf("expected the selected row to stay in the window:\n%s", out)
	}
	if strings.Contains(out, "fn0 ") {
		t.Errorf("expected early rows scrolled out of the window:\n%s", out)
	}
}
