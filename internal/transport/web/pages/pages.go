package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/KotFed0t/exchange_board/internal/tableView"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Dashboard is the client-side page: the script polls Endpoint and renders Columns.
type Dashboard struct {
	Title        string
	Heading      string
	Endpoint     string
	ExportURL    string
	TableURL     string
	CSVName      string
	Columns      []model.Column
	ChangePctKey string
	PollMillis   int64
}

type TableHeader struct {
	Label string
	Href  string
	Arrow string
}

type TableCell struct {
	Text  string
	Class string
}

// Table is the server-rendered page.
type Table struct {
	Title   string
	Heading string
	Query   string
	Notice  string
	Headers []TableHeader
	Rows    [][]TableCell
	Total   int
}

type Pages struct {
	dashboard *template.Template
	table     *template.Template
}

func New() (*Pages, error) {
	dashboard, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	table, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/table.html")
	if err != nil {
		return nil, fmt.Errorf("parse table template: %w", err)
	}

	return &Pages{dashboard: dashboard, table: table}, nil
}

func MustNew() *Pages {
	p, err := New()
	if err != nil {
		panic(err.Error())
	}
	return p
}

func (p *Pages) Dashboard(w io.Writer, d Dashboard) error {
	return p.dashboard.ExecuteTemplate(w, "layout", d)
}

func (p *Pages) Table(w io.Writer, t Table) error {
	return p.table.ExecuteTemplate(w, "layout", t)
}

// ChangeClass returns the css class of a percentage change cell.
func ChangeClass(text string) string {
	v, ok := tableView.Numeric(text)
	switch {
	case !ok:
		return ""
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	}
	return ""
}
