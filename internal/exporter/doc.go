// Package exporter persists summary tables produced by the aggregation run.
//
// The only output format is xlsx via excelize: a single sheet with a bold
// header row, bordered and centered cells, auto-fitted column widths, an
// auto-filter over the populated range, and a TOTAL row expressed as SUM
// formulas so downstream edits recompute.
package exporter
