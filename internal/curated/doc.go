// Package curated appends staged rows into the star schema. Dimension
// refresh always runs before the fact append, and the fact grain's named
// uniqueness constraint is the final idempotence layer: even a run with an
// imprecise watermark inserts no duplicate facts.
package curated
