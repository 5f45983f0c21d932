// Command inspect lists the sheets and header columns of a workbook so the
// column letters of a source mapping can be picked without opening Excel.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"stocktally/internal/dataprocessing"
	"stocktally/internal/files"
)

func main() {
	file := flag.String("file", "", "workbook to inspect")
	dir := flag.String("dir", "", "directory to scan for workbooks")
	sheet := flag.String("sheet", "", "sheet to show the header of (defaults to every sheet)")
	flag.Parse()

	switch {
	case *dir != "":
		if err := listWorkbooks(*dir); err != nil {
			slog.Error("Failed to list workbooks", "error", err)
			os.Exit(1)
		}
	case *file != "":
		if err := inspectWorkbook(*file, *sheet); err != nil {
			slog.Error("Failed to inspect workbook", "error", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func listWorkbooks(dir string) error {
	found, err := files.NewDiscovery(".").FindWorkbooks(dir)
	if err != nil {
		return err
	}
	for _, f := range found {
		fmt.Printf("%s\t%d bytes\t%s\n", f.Path, f.Size, f.ModTime.Format("2006-01-02 15:04"))
	}
	return nil
}

func inspectWorkbook(path, sheet string) error {
	wb, err := files.OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	sheets := wb.SheetNames()
	if sheet != "" {
		sheets = []string{sheet}
	}

	for _, name := range sheets {
		fmt.Printf("sheet: %s\n", name)
		header, err := wb.HeaderRow(name)
		if err != nil {
			return err
		}
		for i, cell := range header {
			if cell == "" {
				continue
			}
			letter, err := dataprocessing.ColumnIndexToName(i + 1)
			if err != nil {
				return err
			}
			fmt.Printf("  %s\t%s\n", letter, cell)
		}
	}
	return nil
}
