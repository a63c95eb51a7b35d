package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(path string) (Grid, error)
}

// ReaderForPath picks a reader from the file extension. Modern Excel files go
// through excelize, legacy BIFF files through the xls decoder.
func ReaderForPath(path string) (Reader, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm":
		return &ExcelReader{}, nil
	case "xls":
		return &XLSReader{}, nil
	case "csv":
		return &CSVReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension for %s (supported: xlsx, xlsm, xls, csv)", path)
	}
}
