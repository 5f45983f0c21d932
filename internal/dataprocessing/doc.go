// Package dataprocessing is the classification and aggregation core of
// stocktally. It turns the raw rows of supplier part-list sheets into a
// cross-tabulated count of distinct part families.
//
// # Architecture
//
// The package is organized into four components:
//
//  1. Column references: convert spreadsheet column letters to 1-based
//     ordinals and back.
//  2. Classifier: extract vendor/status/part-number fields from a raw row,
//     derive the category label by ordered prefix match, and derive the
//     part-family token.
//  3. Aggregator: stream one source's rows into a per-source aggregate of
//     distinct tokens keyed by (vendor, status) and category.
//  4. Summary builder: combine per-source aggregates, an ordered label set,
//     and an ordered filter list into the final summary table.
//
// # Data Flow
//
//	Sheet rows → ResolveRow → Classify/ExtractToken → SourceAggregate → BuildSummary → SummaryTable
//
// Aggregates are created fresh per run and owned exclusively by the run
// that builds them; BuildSummary only reads. Rows that fail to resolve or
// classify are skipped by design and never abort a source.
package dataprocessing
