package quoteConverter

import (
	"strings"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/KotFed0t/exchange_board/internal/model/brvmModel"
	"github.com/KotFed0t/exchange_board/internal/model/ngxModel"
	"github.com/KotFed0t/exchange_board/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// source field aliases, looked up case-insensitively
var (
	ngxSymbol     = []string{"Symbol"}
	ngxPrevClose  = []string{"PrevClosingPrice", "PreviousClose", "PrevClose"}
	ngxOpen       = []string{"OpeningPrice", "Open"}
	ngxHigh       = []string{"HighPrice", "High"}
	ngxLow        = []string{"LowPrice", "Low"}
	ngxClose      = []string{"ClosePrice", "Close"}
	ngxChange     = []string{"Change"}
	ngxVolume     = []string{"Volume"}
	ngxValue      = []string{"Value"}
	ngxTrades     = []string{"Trades", "Deals"}
	ngxTradeDate  = []string{"TradeDate"}
	brvmSymbol    = []string{"Symbole", "Symbol", "Code"}
	brvmName      = []string{"Nom", "Libellé", "Name"}
	brvmVolume    = []string{"Volume", "Volume échangé"}
	brvmPrevClose = []string{"Cours veille (FCFA)", "Cours veille"}
	brvmOpen      = []string{"Cours Ouverture (FCFA)", "Ouverture"}
	brvmClose     = []string{"Cours Clôture (FCFA)", "Clôture", "Cours du jour"}
	brvmVariation = []string{"Variation (%)", "Variation"}
)

type QuoteConverter struct {
	formula string
}

// New returns a converter deriving NGX percentage change with formula
// (config.FormulaChangeOverOpen or config.FormulaCloseOverPrevClose).
func New(formula string) *QuoteConverter {
	return &QuoteConverter{formula: formula}
}

// NgxQuotes maps raw NGX objects onto EquityQuote, keeping their order.
func (c *QuoteConverter) NgxQuotes(raw []ngxModel.RawQuote) []model.EquityQuote {
	quotes := make([]model.EquityQuote, 0, len(raw))
	for _, r := range raw {
		quotes = append(quotes, c.ngxQuote(r))
	}
	return quotes
}

func (c *QuoteConverter) ngxQuote(r ngxModel.RawQuote) model.EquityQuote {
	get := func(aliases []string) any {
		return lookupAny(r, aliases)
	}

	q := model.EquityQuote{
		Symbol:           ParseString(get(ngxSymbol)),
		PrevClosingPrice: ParseDecimal(get(ngxPrevClose), LocaleEnglish),
		OpeningPrice:     ParseDecimal(get(ngxOpen), LocaleEnglish),
		HighPrice:        ParseDecimal(get(ngxHigh), LocaleEnglish),
		LowPrice:         ParseDecimal(get(ngxLow), LocaleEnglish),
		ClosePrice:       ParseDecimal(get(ngxClose), LocaleEnglish),
		Change:           ParseDecimal(get(ngxChange), LocaleEnglish),
		Volume:           ParseInt(get(ngxVolume), LocaleEnglish),
		Value:            ParseDecimal(get(ngxValue), LocaleEnglish),
		Trades:           ParseInt(get(ngxTrades), LocaleEnglish),
		TradeDate:        ParseDate(get(ngxTradeDate)),
	}

	switch c.formula {
	case config.FormulaCloseOverPrevClose:
		q.ChangePct = PctChangeBetween(q.PrevClosingPrice, q.ClosePrice)
	default:
		q.ChangePct = PctOf(q.Change, q.OpeningPrice)
	}

	return q
}

// BrvmQuotes maps scraped or spreadsheet rows onto RegionalQuote, keeping their order.
func (c *QuoteConverter) BrvmQuotes(rows []brvmModel.Row) []model.RegionalQuote {
	quotes := make([]model.RegionalQuote, 0, len(rows))
	for _, r := range rows {
		quotes = append(quotes, c.brvmQuote(r))
	}
	return quotes
}

func (c *QuoteConverter) brvmQuote(r brvmModel.Row) model.RegionalQuote {
	folded := make(map[string]any, len(r))
	for k, v := range r {
		folded[utils.FoldLabel(k)] = v
	}
	get := func(aliases []string) any {
		for _, a := range aliases {
			if v, ok := folded[utils.FoldLabel(a)]; ok {
				return v
			}
		}
		return nil
	}

	q := model.RegionalQuote{
		Symbol:         ParseString(get(brvmSymbol)),
		Name:           ParseString(get(brvmName)),
		Volume:         ParseInt(get(brvmVolume), LocaleFrench),
		PrevClosePrice: ParseDecimal(get(brvmPrevClose), LocaleFrench),
		OpeningPrice:   ParseDecimal(get(brvmOpen), LocaleFrench),
		ClosingPrice:   ParseDecimal(get(brvmClose), LocaleFrench),
		ChangePct:      ParseDecimal(get(brvmVariation), LocaleFrench),
	}

	if q.ChangePct.Valid {
		q.ChangePct.Decimal = q.ChangePct.Decimal.RoundBank(2)
	} else {
		q.ChangePct = PctChangeBetween(q.PrevClosePrice, q.ClosingPrice)
	}

	return q
}

// PctOf returns part / base * 100 rounded to 2 places, null when base is zero or missing.
func PctOf(part, base decimal.NullDecimal) decimal.NullDecimal {
	if !part.Valid || !base.Valid || base.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(part.Decimal.Div(base.Decimal).Mul(hundred).RoundBank(2))
}

// PctChangeBetween returns (to - from) / from * 100 rounded to 2 places.
func PctChangeBetween(from, to decimal.NullDecimal) decimal.NullDecimal {
	if !from.Valid || !to.Valid {
		return decimal.NullDecimal{}
	}
	return PctOf(decimal.NewNullDecimal(to.Decimal.Sub(from.Decimal)), from)
}

func lookupAny(r map[string]any, aliases []string) any {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			return v
		}
	}
	for _, a := range aliases {
		for k, v := range r {
			if strings.EqualFold(k, a) {
				return v
			}
		}
	}
	return nil
}
