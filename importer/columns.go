package importer

import "strings"

// Field is a logical payroll concept that may appear under many different
// literal column titles across source files.
type Field string

const (
	FieldNationalID     Field = "rut"
	FieldFullName       Field = "nombre"
	FieldSurname        Field = "apellido"
	FieldPosition       Field = "cargo"
	FieldArea           Field = "area"
	FieldNetSalary      Field = "sueldoLiquido"
	FieldAdvancePayment Field = "anticipo"
	FieldTotal          Field = "total"
	FieldCostCenterCode Field = "codigoCentroCosto"
	FieldCostCenterName Field = "nombreCentroCosto"
	FieldMonth          Field = "mes"
	FieldYear           Field = "anio"
	FieldPeriodLabel    Field = "periodo"
	FieldPaymentDate    Field = "fechaPago"
	FieldWorkDays       Field = "diasTrabajados"
	FieldPaymentMethod  Field = "formaPago"
	FieldNotes          Field = "observaciones"
)

// Keywords holds the two matching tiers for one field: exact titles first,
// then substrings. Entries are compared after accent folding and uppercasing.
type Keywords struct {
	Exact   []string
	Partial []string
}

// resolveOrder fixes the field iteration order so resolution is
// deterministic regardless of map iteration.
var resolveOrder = []Field{
	FieldNationalID,
	FieldFullName,
	FieldSurname,
	FieldPosition,
	FieldArea,
	FieldNetSalary,
	FieldAdvancePayment,
	FieldTotal,
	FieldCostCenterCode,
	FieldCostCenterName,
	FieldMonth,
	FieldYear,
	FieldPeriodLabel,
	FieldPaymentDate,
	FieldWorkDays,
	FieldPaymentMethod,
	FieldNotes,
}

var fieldKeywords = map[Field]Keywords{
	FieldNationalID: {
		Exact:   []string{"RUT", "RUN", "R.U.T.", "RUT TRABAJADOR"},
		Partial: []string{"RUT", "CEDULA", "DNI"},
	},
	FieldFullName: {
		Exact:   []string{"NOMBRE", "NOMBRES", "NOMBRE COMPLETO", "TRABAJADOR", "EMPLEADO", "FUNCIONARIO"},
		Partial: []string{"NOMBRE COMPLETO", "TRABAJADOR", "NOMBRES"},
	},
	FieldSurname: {
		Exact:   []string{"APELLIDO", "APELLIDOS", "APELLIDO PATERNO"},
		Partial: []string{"APELLIDO"},
	},
	FieldPosition: {
		Exact:   []string{"CARGO", "PUESTO"},
		Partial: []string{"CARGO"},
	},
	FieldArea: {
		Exact:   []string{"AREA", "DEPARTAMENTO", "GERENCIA"},
		Partial: []string{"AREA", "DEPTO"},
	},
	FieldNetSalary: {
		Exact:   []string{"SUELDO LIQUIDO", "LIQUIDO", "LIQUIDO A PAGAR", "SUELDO"},
		Partial: []string{"LIQUIDO", "SUELDO"},
	},
	FieldAdvancePayment: {
		Exact:   []string{"ANTICIPO", "ANTICIPOS"},
		Partial: []string{"ANTICIPO", "AVANCE"},
	},
	FieldTotal: {
		Exact:   []string{"TOTAL", "TOTAL A PAGAR", "TOTAL HABERES", "MONTO TOTAL"},
		Partial: []string{"TOTAL"},
	},
	FieldCostCenterCode: {
		Exact:   []string{"CENTRO DE COSTO", "CENTRO COSTO", "COD CC", "CODIGO CC", "CC"},
		Partial: []string{"COD. CENTRO", "CODIGO CENTRO", "C.COSTO"},
	},
	FieldCostCenterName: {
		Exact:   []string{"NOMBRE CENTRO DE COSTO", "NOMBRE CENTRO COSTO", "NOMBRE CC"},
		Partial: []string{"NOMBRE CENTRO"},
	},
	FieldMonth: {
		Exact:   []string{"MES"},
		Partial: []string{"MES DE"},
	},
	FieldYear: {
		Exact:   []string{"ANO", "ANIO", "AGNO"},
		Partial: []string{"ANIO"},
	},
	FieldPeriodLabel: {
		Exact:   []string{"PERIODO", "MES/ANO", "MES-ANO"},
		Partial: []string{"PERIODO"},
	},
	FieldPaymentDate: {
		Exact:   []string{"FECHA PAGO", "FECHA DE PAGO"},
		Partial: []string{"FECHA PAGO"},
	},
	FieldWorkDays: {
		Exact:   []string{"DIAS TRABAJADOS", "DIAS TRAB", "DIAS"},
		Partial: []string{"DIAS TRAB"},
	},
	FieldPaymentMethod: {
		Exact:   []string{"FORMA DE PAGO", "FORMA PAGO", "METODO DE PAGO"},
		Partial: []string{"FORMA DE PAGO", "METODO"},
	},
	FieldNotes: {
		Exact:   []string{"OBSERVACIONES", "OBSERVACION", "NOTAS", "GLOSA"},
		Partial: []string{"OBSERVACION"},
	},
}

// ColumnMap maps each resolved logical field to its zero-based column index.
// Unresolved fields are simply absent.
type ColumnMap map[Field]int

func (m ColumnMap) Index(field Field) (int, bool) {
	index, ok := m[field]
	return index, ok
}

func (m ColumnMap) Has(field Field) bool {
	_, ok := m[field]
	return ok
}

// ResolveColumns maps every logical field onto the header row using the
// two-tier keyword strategy: a full exact pass first, then substrings. The
// leftmost matching header cell wins; later duplicates are ignored.
//
// The import is viable only when the header yields an identity column (name
// or RUT) and at least one amount column; otherwise resolution fails with
// the missing fields and the full header row for diagnostics.
func ResolveColumns(header []Cell) (ColumnMap, error) {
	folded := make([]string, len(header))
	for i, cell := range header {
		folded[i] = foldHeaderText(cell.Value)
	}

	columns := make(ColumnMap, len(resolveOrder))
	for _, field := range resolveOrder {
		keywords := fieldKeywords[field]
		if index, ok := matchExact(folded, keywords.Exact); ok {
			columns[field] = index
			continue
		}
		if index, ok := matchPartial(folded, keywords.Partial); ok {
			columns[field] = index
		}
	}

	missing := missingRequiredFields(columns)
	if len(missing) > 0 {
		echoed := make([]string, len(header))
		for i, cell := range header {
			echoed[i] = cell.Value
		}
		return nil, &MissingRequiredColumnsError{Missing: missing, Header: echoed}
	}

	return columns, nil
}

func matchExact(folded []string, keywords []string) (int, bool) {
	for i, text := range folded {
		if text == "" {
			continue
		}
		for _, keyword := range keywords {
			if text == keyword {
				return i, true
			}
		}
	}
	return 0, false
}

func matchPartial(folded []string, keywords []string) (int, bool) {
	for i, text := range folded {
		if text == "" {
			continue
		}
		for _, keyword := range keywords {
			if keyword != "" && strings.Contains(text, keyword) {
				return i, true
			}
		}
	}
	return 0, false
}

func missingRequiredFields(columns ColumnMap) []Field {
	missing := make([]Field, 0, 2)

	if !columns.Has(FieldFullName) && !columns.Has(FieldNationalID) {
		missing = append(missing, FieldFullName, FieldNationalID)
	}
	if !columns.Has(FieldNetSalary) && !columns.Has(FieldAdvancePayment) && !columns.Has(FieldTotal) {
		missing = append(missing, FieldNetSalary, FieldAdvancePayment, FieldTotal)
	}

	return missing
}
