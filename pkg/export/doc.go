// Package export converts tabular rows with a compiled schema and shapes
// the results into plain JSON-ready records.
//
// Every row yields one record. Objects are keyed by labels (usually the
// header row): a leaf uses the label of its own column and a nested
// structure uses the label of the column holding its opening bracket.
//
//	schema:  uint,  str,    {,    uint,  str,   }
//	labels:  id,    name,   info, age,   title,
//	row:     1,     Hero,   ,     30,    Sir,
//	record:  {"id": 1, "name": "Hero", "info": {"age": 30, "title": "Sir"}}
//
// Rows that fail validation leave nil in their record slot and are listed
// in the report with row and column labels from the Descriptor.
package export
