// Package report stores code reports in .codereports/reports.yaml.
//
// A report pins a tagged message to a line range of a file, records who owns
// that code and tracks whether the report is still open. Ids are sequential
// ("CR-000042") and never reused while higher ids exist. Saves go through a
// temporary file and a rename so a crash never leaves a half-written file.
package report
