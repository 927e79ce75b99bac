package ngxModel

// RawQuote is one object of the NGX equities statistics array as received.
// Numbers are json.Number, missing keys are absent.
type RawQuote map[string]any
