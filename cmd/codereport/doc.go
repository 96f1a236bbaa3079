// Codereport is a CLI for tracking code review notes inside a git repository.
//
// Each note covers a line range, carries a tag (todo, refactor, buggy,
// critical) and is stamped with an author resolved from CODEOWNERS and git
// blame. Notes live in .codereports/reports.yaml next to the code.
//
// Usage:
//
//	codereport init                                  # create .codereports/
//	codereport add src/db.go:42-88 --tag buggy --message "leak"
//	codereport list --tag buggy --format markdown    # list reports
//	codereport resolve CR-000001                     # close a report
//	codereport check                                 # exit 1 on blocking or expired reports
//	codereport html                                  # render and open the dashboard
//	codereport who src/db.go:42-88                   # show the resolved author
//
// See https://github.com/dshills/codereport for full documentation.
package main
