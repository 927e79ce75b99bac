package model

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

func init() {
	// quote prices are served as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// EquityQuote is a normalized NGX equity statistics row.
// JSON keys follow the upstream NGX naming.
type EquityQuote struct {
	Symbol           null.String         `json:"Symbol"`
	PrevClosingPrice decimal.NullDecimal `json:"PrevClosingPrice"`
	OpeningPrice     decimal.NullDecimal `json:"OpeningPrice"`
	HighPrice        decimal.NullDecimal `json:"HighPrice"`
	LowPrice         decimal.NullDecimal `json:"LowPrice"`
	ClosePrice       decimal.NullDecimal `json:"ClosePrice"`
	Change           decimal.NullDecimal `json:"Change"`
	ChangePct        decimal.NullDecimal `json:"ChangePct"`
	Volume           null.Int            `json:"Volume"`
	Value            decimal.NullDecimal `json:"Value"`
	Trades           null.Int            `json:"Trades"`
	TradeDate        null.String         `json:"TradeDate"`
}

// RegionalQuote is a normalized BRVM equity row.
type RegionalQuote struct {
	Symbol         null.String         `json:"Symbol"`
	Name           null.String         `json:"Name"`
	Volume         null.Int            `json:"Volume"`
	PrevClosePrice decimal.NullDecimal `json:"PrevClosePrice"`
	OpeningPrice   decimal.NullDecimal `json:"OpeningPrice"`
	ClosingPrice   decimal.NullDecimal `json:"ClosingPrice"`
	ChangePct      decimal.NullDecimal `json:"ChangePct"`
}

type BrvmSnapshot struct {
	Quotes []RegionalQuote
	// TableFound is false when the source had no table with the expected headers.
	TableFound bool
}

// Column describes one canonical field: its JSON key and its display label.
type Column struct {
	Key     string
	Label   string
	Numeric bool
}

var EquityQuoteColumns = []Column{
	{Key: "Symbol", Label: "Symbole"},
	{Key: "PrevClosingPrice", Label: "Clôture veille", Numeric: true},
	{Key: "OpeningPrice", Label: "Ouverture", Numeric: true},
	{Key: "HighPrice", Label: "Plus haut", Numeric: true},
	{Key: "LowPrice", Label: "Plus bas", Numeric: true},
	{Key: "ClosePrice", Label: "Clôture", Numeric: true},
	{Key: "Change", Label: "Changement", Numeric: true},
	{Key: "ChangePct", Label: "Variation (%)", Numeric: true},
	{Key: "Volume", Label: "Volume", Numeric: true},
	{Key: "Value", Label: "Valeur", Numeric: true},
	{Key: "Trades", Label: "Transactions", Numeric: true},
	{Key: "TradeDate", Label: "Date"},
}

// RegionalQuoteColumns labels match the French headers of the BRVM site so that
// a workbook written with them is read back by the spreadsheet source.
var RegionalQuoteColumns = []Column{
	{Key: "Symbol", Label: "Symbole"},
	{Key: "Name", Label: "Nom"},
	{Key: "Volume", Label: "Volume", Numeric: true},
	{Key: "PrevClosePrice", Label: "Cours veille (FCFA)", Numeric: true},
	{Key: "OpeningPrice", Label: "Cours Ouverture (FCFA)", Numeric: true},
	{Key: "ClosingPrice", Label: "Cours Clôture (FCFA)", Numeric: true},
	{Key: "ChangePct", Label: "Variation (%)", Numeric: true},
}

// ChangePctKey is the column key colored by sign on every view.
const ChangePctKey = "ChangePct"
