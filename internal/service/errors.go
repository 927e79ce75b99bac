package service

import "errors"

var (
	ErrNoQuotesTable = errors.New("no quotes table with the expected headers")
	ErrNoQuotes      = errors.New("no quotes to save")
)
