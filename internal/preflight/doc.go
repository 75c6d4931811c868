// Package preflight provides readiness checks for the external binaries
// and filesystem paths the analyzer depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before each analysis run. If any check
//     fails, the run halts before any download starts.
//   - The CLI "distress status" command uses the same checks to display
//     environment health.
package preflight
