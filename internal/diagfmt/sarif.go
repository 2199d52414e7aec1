package diagfmt

import (
	"encoding/json"
	"io"

	"sniff/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string           `json:"name"`
	Version string           `json:"version,omitempty"`
	Rules   []sarifRuleEntry `json:"rules,omitempty"`
}

type sarifRuleEntry struct {
	ID                   string          `json:"id"`
	ShortDescription     sarifMessage    `json:"shortDescription"`
	DefaultConfiguration sarifRuleConfig `json:"defaultConfiguration"`
	Properties           map[string]any  `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex *int            `json:"ruleIndex,omitempty"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	CharOffset  uint32 `json:"charOffset"`
	CharLength  uint32 `json:"charLength"`
}

func sarifLevel(s diag.Severity) string {
	if s == diag.SevWarning {
		return "warning"
	}
	return "error"
}

// Sarif форматирует отчёты в SARIF формат (v2.1.0).
// ruleId is the check ID; the sub-code goes into the message prefix.
func Sarif(w io.Writer, files []FileReport, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
		}},
		Results: []sarifResult{},
	}
	index := make(map[string]int, len(meta.Rules))
	for i, r := range meta.Rules {
		index[r.ID] = i
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRuleEntry{
			ID:                   r.ID,
			ShortDescription:     sarifMessage{Text: r.Description},
			DefaultConfiguration: sarifRuleConfig{Level: sarifLevel(r.Severity)},
			Properties:           map[string]any{"fixable": r.Fixable},
		})
	}

	ok := true
	for _, fr := range files {
		uri := fr.displayPath(PathModeRelative, "")
		if fr.Err != nil {
			ok = false
			continue
		}
		if fr.Report == nil {
			continue
		}
		for _, v := range fr.Report.Items() {
			if v.Fixed {
				continue
			}
			res := sarifResult{
				RuleID:  v.Rule,
				Level:   sarifLevel(v.Severity),
				Message: sarifMessage{Text: v.ID() + ": " + v.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: uri},
				}}},
			}
			if i, found := index[v.Rule]; found {
				res.RuleIndex = &i
			}
			if v.Line > 0 {
				res.Locations[0].PhysicalLocation.Region = &sarifRegion{
					StartLine:   v.Line,
					StartColumn: v.Col,
					CharOffset:  v.Span.Start,
					CharLength:  v.Span.Len(),
				}
			}
			run.Results = append(run.Results, res)
		}
	}
	if len(meta.InvocationArgs) > 0 || !ok {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: ok}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
