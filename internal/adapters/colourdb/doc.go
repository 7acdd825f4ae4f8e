// Package colourdb provides colour record sources beyond the built-in palette
//
// Design choices:
// - YAML documents: a flat list of records, friendly to hand-maintained palettes
// - Records are validated before they reach the registry, so a bad file never half-populates it
// - File reads go through an os.ReadFile seam for fault injection in tests
// - IO failures come back Unavailable (retry the lookup); malformed or invalid records come back
//   Validation (fix the file first)
package colourdb
