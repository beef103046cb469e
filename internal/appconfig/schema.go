package appconfig

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func percent() map[string]any {
	return map[string]any{"type": "number", "minimum": 0, "maximum": 100}
}

// positive rejects 0, which would otherwise read as "unset" and fall back to
// the default.
func positive() map[string]any {
	return map[string]any{"type": "number", "minimum": 0, "exclusiveMinimum": true}
}

func positivePercent() map[string]any {
	m := positive()
	m["maximum"] = 100
	return m
}

// configSchema describes the accepted shape of a JSON config file.
func configSchema() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type":    "object",
		"properties": map[string]any{
			"debug":    map[string]any{"type": "boolean"},
			"jsonMode": map[string]any{"type": "boolean"},
			"logFile":  map[string]any{"type": "string"},
			"metrics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "normal", "malicious"},
					"properties": map[string]any{
						"name":      map[string]any{"type": "string", "minLength": 1},
						"normal":    percent(),
						"malicious": percent(),
					},
				},
			},
			"classLabels": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"normal":    map[string]any{"type": "string"},
					"malicious": map[string]any{"type": "string"},
				},
			},
			"thresholds": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"balanced": positive(),
					"mild":     positive(),
				},
			},
			"simulation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min":  positivePercent(),
					"max":  positivePercent(),
					"step": positive(),
				},
			},
			"features": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"feature", "impact", "relevance"},
					"properties": map[string]any{
						"feature":         map[string]any{"type": "string", "minLength": 1},
						"importanceScore": map[string]any{"type": "number", "minimum": 0},
						"contribution":    percent(),
						"impact":          map[string]any{"type": "string", "enum": []string{"High", "Moderate", "Low"}},
						"relevance":       map[string]any{"type": "string", "enum": []string{"Very High", "High", "Moderate", "Low"}},
					},
				},
			},
			"report": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":          map[string]any{"type": "string"},
					"output":         map[string]any{"type": "string"},
					"markdownOutput": map[string]any{"type": "string"},
					"notes":          map[string]any{"type": "string"},
				},
			},
			"server": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"addr": map[string]any{"type": "string"},
				},
			},
		},
	}
}

// Validate checks a raw JSON config document against the config schema.
func Validate(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema())
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(errs, ", "))
}
