// Package model defines shared data types used across the pipeline.
//
// Conventions:
//   - Prices: decimal.Decimal quantized to 4 fractional digits (round-half-up)
//   - Trade dates: time.Time truncated to a UTC calendar date
//   - Timestamps: time.Time in UTC
package model
