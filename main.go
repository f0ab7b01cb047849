// =============================================================================
// samcut - Main Entry Point
// =============================================================================
//
// samcut prints selected fields of SAM records, in the manner of cut(1).
//
// USAGE:
//   samcut [flags] [fields...]  - Print the requested fields of each record
//   samcut version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : record parsing, field resolution, input, output, pipeline
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/samcut/cmd"
)

func main() {
	cmd.Execute()
}
