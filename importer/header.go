package importer

import "strings"

// headerScanWindow bounds the search for the header row. Real payroll exports
// often carry title rows, company logos or merged cells before the headers,
// but a data row should never be mistaken for one this early in the sheet.
const headerScanWindow = 15

// headerKeywords are the Spanish payroll terms that identify a header row.
// One case-insensitive substring hit in any cell qualifies the row.
var headerKeywords = []string{
	"NOMBRE",
	"RUT",
	"TRABAJADOR",
	"EMPLEADO",
	"SUELDO",
	"LIQUIDO",
	"ANTICIPO",
	"TOTAL",
}

// LocateHeader returns the index of the first row in the scan window that
// contains a header keyword.
func LocateHeader(grid Grid) (int, error) {
	window := headerScanWindow
	if len(grid) < window {
		window = len(grid)
	}

	for i := 0; i < window; i++ {
		for _, cell := range grid[i] {
			if cell.IsEmpty() {
				continue
			}
			text := foldHeaderText(cell.Value)
			for _, keyword := range headerKeywords {
				if strings.Contains(text, keyword) {
					return i, nil
				}
			}
		}
	}

	return 0, &HeaderNotFoundError{RowsScanned: window}
}

var accentFolder = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
	"á", "A", "é", "E", "í", "I", "ó", "O", "ú", "U", "ü", "U", "ñ", "N",
)

// foldHeaderText uppercases and strips accents so "LÍQUIDO" and "liquido"
// compare equal against the keyword tables.
func foldHeaderText(value string) string {
	return strings.ToUpper(strings.TrimSpace(accentFolder.Replace(value)))
}
