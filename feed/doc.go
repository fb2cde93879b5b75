// Package feed implements the collaborators that supply market data to the
// stocks package: price feeds reading rows cached by an external fetcher, and
// the listing of valid symbols.
//
// Every feed reports a symbol it has no cached rows for with an error wrapping
// stocks.ErrNoSuchSymbol.
package feed
