// Package manifest renders, loads, fingerprints and compares package-data
// manifests.
//
// A manifest is rendered as JSON, YAML or a human-readable text listing. JSON
// and YAML renderings keep package and file order, so rendering the result of
// two scans of the same tree yields identical bytes. Stored manifests are
// loaded back by file extension and compared with a fresh scan through Diff.
package manifest
