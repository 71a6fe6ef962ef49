// Package harness runs conformance cases through the generation engine.
//
// # Case Format
//
// Cases are YAML files with the following structure:
//
//	name: point_names_and_dump
//	description: "What this case validates"
//	source: |
//	  package geo
//
//	  //iterstruct:derive names
//	  type Point struct {
//	      x, y int
//	  }
//	types:                      # optional, like --type/--derive
//	  Other: [names]
//	expect:
//	  ok: true
//	  types:
//	    - type: Point
//	      names: [x, y]
//	      members: [FieldNames]
//	  diagnostics:
//	    - code: E201
//	      type: Color
//	      member: FieldNames
//	      contains: "is an enum"
//
// The source is parsed as a single file named input.go, so diagnostic
// positions read input.go:line:col.
//
// # Golden Files
//
// RunWithGolden compares the rendered file of a successful case, or the
// diagnostics of a failed one, with testdata/golden/<name>.golden. To
// regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// # Usage
//
//	c, err := harness.LoadCase("testdata/cases/point.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(c)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
