// Package stocks tracks equities and portfolios of equities.
//
// The core types are:
//   - PriceSeries: the immutable daily price history of a symbol. It resolves any
//     calendar day to the trading date to use, walking backward over weekends and
//     market holidays as described by a Calendar.
//   - Stock: a listed symbol and its price series, with the analytics derived
//     from it (change over a range, moving average, crossovers).
//   - Portfolio: named holdings of stocks and the chronological log of the
//     transactions that produced them. It is valued, distributed and composed on
//     any date, and can be rebalanced to target weights.
//   - Market and Registry: the entry points used by front ends to get stocks from
//     a price feed and to create, load and save portfolios.
//
// Price rows and the list of listed symbols are supplied by collaborators, see
// package feed.
package stocks
