package pages

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KotFed0t/exchange_board/internal/model"
)

func TestDashboard(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var buf bytes.Buffer
	err = p.Dashboard(&buf, Dashboard{
		Title:        "Données BRVM",
		Heading:      "Données BRVM",
		Endpoint:     "/api/brvm",
		ExportURL:    "/brvm/export.xlsx",
		CSVName:      "brvm_data.csv",
		Columns:      model.RegionalQuoteColumns,
		ChangePctKey: model.ChangePctKey,
		PollMillis:   60000,
	})
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	page := buf.String()
	for _, want := range []string{
		"<title>Données BRVM</title>",
		`<th data-col="0">Symbole</th>`,
		`<th data-col="6">Variation (%)</th>`,
		`"Key":"PrevClosePrice"`,
		"brvm_data.csv",
		"data-sort-dir",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard does not contain %q", want)
		}
	}
	if strings.Contains(page, "Tableau serveur") {
		t.Error("dashboard links the server table without TableURL")
	}
}

func TestTable_EscapesCells(t *testing.T) {
	var buf bytes.Buffer
	err := MustNew().Table(&buf, Table{
		Title:   "t",
		Headers: []TableHeader{{Label: "Symbole", Href: "?sort=Symbol&dir=asc"}},
		Rows:    [][]TableCell{{{Text: "<b>x</b>", Class: "up"}}},
		Total:   1,
	})
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	page := buf.String()
	if strings.Contains(page, "<b>x</b>") {
		t.Error("cell text is not escaped")
	}
	if !strings.Contains(page, `class="up"`) {
		t.Error("cell class missing")
	}
}

func TestChangeClass(t *testing.T) {
	tests := map[string]string{
		"2":     "up",
		"-1.25": "down",
		"0":     "",
		"-":     "",
		"":      "",
	}
	for in, want := range tests {
		if got := ChangeClass(in); got != want {
			t.Errorf("ChangeClass(%q) = %q, want %q", in, got, want)
		}
	}
}
