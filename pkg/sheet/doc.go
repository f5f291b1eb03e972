// Package sheet loads tabular data and the schema that describes it.
//
// A sheet comes in one of two layouts. A definition file is YAML naming
// the marks, labels and enum tables, plus a separate CSV data file:
//
//	name: heroes
//	marks: "uint, str, {, uint, str, }"
//	labels: [id, name, info, age, title]
//	data: heroes.csv
//
// A self-describing sheet is a single CSV file whose first record holds the
// labels and whose second record holds one mark per column:
//
//	id,   name, info, age,  title, 
//	uint, str,  {,    uint, str,   }
//	1,    Hero, ,     30,   Sir,
//
// Blank data cells are read as nil. Every other cell is kept as a string
// and coerced by the schema.
package sheet
