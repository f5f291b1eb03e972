// Rowmark validates flat rows against a schema of marks and converts them
// into nested JSON records.
//
// A schema is a list of marks, one per column. Leaf marks name a type
// union ("uint", "int|str?", "array<int>", "enum<Element>") and bracket
// marks open and close nested objects and arrays:
//
//	id,   name, stats, hp,   mp,   ]
//	uint, str,  [,     uint, uint, ]
//
// Usage:
//
//	# Convert a sheet described by a YAML definition
//	rowmark convert --schema heroes.yaml --out heroes.json
//
//	# Convert a self-describing CSV (labels row, marks row, data)
//	rowmark convert --sheet heroes.csv
//
//	# Re-run on every change and expose /metrics
//	rowmark convert --schema heroes.yaml --watch --metrics-addr :9090
//
//	# Print the canonical form of a schema
//	rowmark parse "uint, str, [, uint, ]"
//
//	# Check a schema for mistakes
//	rowmark lint --schema heroes.yaml
//
//	# Try marks and rows interactively
//	rowmark shell
package main

import "os"

func main() {
	os.Exit(Execute())
}
