// Package logging holds the process-wide zap logger used by codereport.
//
// The logger starts as a no-op so packages can log before the CLI has parsed
// its flags. [Initialize] swaps in a console or JSON logger writing to stderr;
// stdout stays reserved for command output.
package logging
