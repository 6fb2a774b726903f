// Package network implements the in-memory network model: named
// table-like collections of elements (transformers, controllers,
// characteristics) with integer row ids, typed nullable columns,
// equality and boolean masking, and row deletion.
//
//   - [Table]: one element collection
//   - [Net]: the model, holding the standard tables
//
// Row ids are stable for the lifetime of a session; deletion never
// renumbers surviving rows.
package network
