package dataprocessing

import (
	"strings"

	"stocktally/pkg/contracts/domain"
)

// ExtractToken derives the part-family token from a part number: the
// trimmed identifier up to (not including) the first underscore, uppercased.
// A part number without an underscore is its own family. Returns false for
// identifiers that are empty after trimming.
func ExtractToken(partNumber string) (string, bool) {
	trimmed := strings.TrimSpace(partNumber)
	if trimmed == "" {
		return "", false
	}
	if i := strings.Index(trimmed, "_"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.ToUpper(trimmed), true
}

// Classify returns the first label the part number starts with,
// case-insensitively. Labels are checked in caller order, so an earlier
// shorter label beats a later longer one; that priority is how overlapping
// facility codes are resolved. Returns false when nothing matches.
func Classify(partNumber string, labels []string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(partNumber))
	if upper == "" {
		return "", false
	}
	for _, label := range labels {
		if strings.HasPrefix(upper, strings.ToUpper(label)) {
			return label, true
		}
	}
	return "", false
}

// ResolveRow reads the vendor, status, and part number cells out of one raw
// row using the resolved 0-based offsets. A row too short to reach an offset
// simply has no value there; any of the three fields empty after trimming
// means the row does not participate and is skipped, not an error.
func ResolveRow(row []string, vendorIdx, statusIdx, partIdx int) (domain.ClassifiedRow, bool) {
	vendor := cellAt(row, vendorIdx)
	status := cellAt(row, statusIdx)
	part := cellAt(row, partIdx)

	if vendor == "" || status == "" || part == "" {
		return domain.ClassifiedRow{}, false
	}
	return domain.ClassifiedRow{Vendor: vendor, Status: status, PartNumber: part}, true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
