// Package universe builds and serves the symbol universe for a domain. The
// S&P 500 constituent list is scraped from Wikipedia's constituent table,
// versioned as dated JSON config, and optionally landed in the raw zone for
// the stock-meta staging load.
package universe
