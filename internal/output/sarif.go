package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dshills/codereport/internal/config"
)

// SARIFWriter outputs open reports in SARIF v2.1.0 format. Resolved reports
// are omitted.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, l *Listing) error {
	sarif := buildSARIF(l)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling SARIF")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing SARIF")
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLocation   `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
	EndLine   uint32 `json:"endLine"`
}

func buildSARIF(l *Listing) sarifLog {
	var rules []sarifRule
	seen := make(map[string]bool)
	results := []sarifResult{}

	for _, e := range l.Entries {
		if !e.IsOpen() {
			continue
		}
		level := severityToLevel(severityOf(l.Config, e.Tag))
		id := ruleID(e.Tag)
		if !seen[id] {
			seen[id] = true
			rules = append(rules, sarifRule{
				ID:               id,
				Name:             e.Tag,
				ShortDescription: sarifMessage{Text: fmt.Sprintf("Code report tagged %s", e.Tag)},
				DefaultConfig:    sarifDefaultConfig{Level: level},
			})
		}
		results = append(results, sarifResult{
			RuleID:  id,
			Level:   level,
			Message: sarifMessage{Text: fmt.Sprintf("[%s] %s", e.ID, e.Message)},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: e.Path},
					Region:           sarifRegion{StartLine: e.Range.Start, EndLine: e.Range.End},
				},
			}},
			PartialFingerprints: map[string]string{"codereportId/v1": e.ID},
		})
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "codereport",
						Version:        l.Version,
						InformationURI: "https://github.com/dshills/codereport",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToLevel maps a tag severity to a SARIF level.
func severityToLevel(s config.Severity) string {
	switch s {
	case config.SeverityBlocking, config.SeverityHigh:
		return "error"
	case config.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func ruleID(tag string) string {
	return "codereport/" + tag
}
