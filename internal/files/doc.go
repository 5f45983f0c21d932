// Package files provides workbook access and file discovery for the
// stocktally application.
//
// This package contains two main components:
//
// Workbook: A thin wrapper over excelize that exposes sheet enumeration and
// streaming row access. SheetRows satisfies the aggregation engine's row
// reader contract, so the core never touches excelize directly.
//
// Discovery: Finds xlsx workbooks in a directory and checks file existence.
// Relative paths resolve against an explicit base path to keep project
// files portable.
//
// Example usage:
//
//	wb, err := files.OpenWorkbook("inputs/vendor_a.xlsx")
//	if err != nil {
//	    return err
//	}
//	defer wb.Close()
//
//	rows, err := wb.Rows("Sheet1")
//	if err != nil {
//	    return err
//	}
//	defer rows.Close()
package files
