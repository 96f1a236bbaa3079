// Package output renders code reports for display or machine consumption.
//
// Four list formats are supported:
//   - text     - one line per report, colourised on a terminal (default)
//   - json     - the filtered entries as JSON
//   - markdown - PR-comment-friendly tables grouped by tag
//   - sarif    - SARIF v2.1.0 for upload to code scanning tools
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Listing]. [WriteListing] handles
// destination selection. The HTML dashboard is built with [BuildDashboard]
// and written with [WriteDashboardFile].
package output
