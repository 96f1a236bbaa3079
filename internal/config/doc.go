// Package config loads and validates the per-repository codereport
// configuration stored in .codereports/config.yaml.
//
// The configuration declares which report tags are enabled, the severity of
// each tag and an optional expiry in days. The tag set itself is fixed (see
// [Tag]); the file only tunes it. CODEREPORT_CONFIG points at an alternate
// file.
package config
