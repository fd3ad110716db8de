package parser

import "fmt"

// HeaderLines is the number of preamble lines skipped before the first data row.
const HeaderLines = 4

// NumColumns is the fixed number of numeric fields in every data row.
const NumColumns = 5

// ColumnNames lists the data columns in file order.
var ColumnNames = [NumColumns]string{
	"Kinetic Energy", "Total Stp. Pow.", "CSDA Range", "Radiation Yield", "Damage Effect Parameter",
}

// Row is one tabulated operating point of a material.
type Row struct {
	KineticEnergy         float64 // MeV
	TotalStoppingPower    float64 // MeV cm²/g
	CSDARange             float64 // g/cm²
	RadiationYield        float64
	DamageEffectParameter float64
}

// MaterialTable holds the rows of a material data file in file order,
// which is ascending kinetic energy for well-formed tables.
type MaterialTable struct {
	Source string // Path the table was read from, empty for readers
	Rows   []Row
}

// First returns the lowest-energy tabulated row.
func (t *MaterialTable) First() (Row, error) {
	if t == nil || len(t.Rows) == 0 {
		return Row{}, fmt.Errorf("material table is empty")
	}
	return t.Rows[0], nil
}

// Len returns the number of data rows.
func (t *MaterialTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func rowFromFields(values [NumColumns]float64) Row {
	return Row{
		KineticEnergy:         values[0],
		TotalStoppingPower:    values[1],
		CSDARange:             values[2],
		RadiationYield:        values[3],
		DamageEffectParameter: values[4],
	}
}
