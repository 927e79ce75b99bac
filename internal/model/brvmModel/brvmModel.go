package brvmModel

// Row maps a table header label to the cell text of one body row.
type Row map[string]string

type Table struct {
	Headers []string
	Rows    []Row
	// Found is false when no table with the expected headers exists in the source.
	Found bool
}
