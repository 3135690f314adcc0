// Package harness runs YAML scenarios against the bounded summation routine.
//
// # Scenario Format
//
//	name: large_numbers
//	description: "Threshold crossed on the third item"
//	threshold: 100        # optional, defaults to 100
//	items: [25, 50, 75, 100]
//	expect:
//	  total: 150
//	  consumed: 3         # optional
//	  crossed: true       # optional
//	  trace: [25, 75, 150] # optional running totals
//
// Unknown fields are rejected so typos fail loudly. Items that are not
// integers fail with sum.InvalidInputError before anything is summed.
//
// # Golden Files
//
// RunWithGolden compares a scenario's trace snapshot, encoded as canonical
// JSON, against testdata/golden/<name>.golden. Run with -update to
// regenerate:
//
//	go test ./internal/harness -update
package harness
