package dataprocessing

import (
	"fmt"
	"strings"

	"stocktally/internal/errors"
)

// ColumnNameToIndex converts a spreadsheet column letter to its 1-based
// ordinal: "A" -> 1, "Z" -> 26, "AA" -> 27. Input is case-insensitive.
//
// excelize ships an equivalent, but it rejects anything past "XFD"; the
// tally config has no such cap, so the conversion lives here.
func ColumnNameToIndex(name string) (int, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, errors.NewInvalidAddressError("column letter is empty")
	}

	index := 0
	for _, r := range strings.ToUpper(trimmed) {
		if r < 'A' || r > 'Z' {
			return 0, errors.NewInvalidAddressError(
				fmt.Sprintf("column letter %q contains non-alphabetic character %q", name, r))
		}
		index = index*26 + int(r-'A'+1)
	}
	return index, nil
}

// ColumnIndexToName is the inverse of ColumnNameToIndex for index >= 1.
func ColumnIndexToName(index int) (string, error) {
	if index < 1 {
		return "", errors.NewInvalidAddressError(
			fmt.Sprintf("column index %d is out of range, must be >= 1", index))
	}

	var b []byte
	for index > 0 {
		index--
		b = append([]byte{byte('A' + index%26)}, b...)
		index /= 26
	}
	return string(b), nil
}
