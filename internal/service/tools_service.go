package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ToolsService implements the stateless developer utilities.
type ToolsService struct{}

// NewToolsService constructs the service.
func NewToolsService() *ToolsService {
	return &ToolsService{}
}

// JSONFormatResult describes a formatting outcome.
type JSONFormatResult struct {
	FormattedData   string `json:"formatted_data"`
	OriginalLength  int    `json:"original_length"`
	FormattedLength int    `json:"formatted_length"`
}

// FormatJSON validates and reformats a JSON document, beautified with
// two-space indent or minified. Key order is preserved.
func (s *ToolsService) FormatJSON(data string, minify bool) (*JSONFormatResult, error) {
	var buf bytes.Buffer
	var err error
	if minify {
		err = json.Compact(&buf, []byte(data))
	} else {
		err = json.Indent(&buf, []byte(data), "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return &JSONFormatResult{
		FormattedData:   buf.String(),
		OriginalLength:  len(data),
		FormattedLength: buf.Len(),
	}, nil
}

// YAMLConvertResult describes a conversion outcome.
type YAMLConvertResult struct {
	ConvertedData string `json:"converted_data"`
	FromFormat    string `json:"from_format"`
	ToFormat      string `json:"to_format"`
}

// ConvertYAML converts between JSON and YAML representations.
func (s *ToolsService) ConvertYAML(data, fromFormat, toFormat string) (*YAMLConvertResult, error) {
	var converted string

	switch {
	case fromFormat == "json" && toFormat == "yaml":
		var value any
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			return nil, fmt.Errorf("conversion error: %w", err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("conversion error: %w", err)
		}
		converted = string(out)
	case fromFormat == "yaml" && toFormat == "json":
		var value any
		if err := yaml.Unmarshal([]byte(data), &value); err != nil {
			return nil, fmt.Errorf("conversion error: %w", err)
		}
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("conversion error: %w", err)
		}
		converted = string(out)
	default:
		return nil, fmt.Errorf("unsupported conversion: %s to %s", fromFormat, toFormat)
	}

	return &YAMLConvertResult{
		ConvertedData: converted,
		FromFormat:    fromFormat,
		ToFormat:      toFormat,
	}, nil
}

// UUIDGenerateResult describes generated UUIDs.
type UUIDGenerateResult struct {
	UUIDs   []string `json:"uuids"`
	Version int      `json:"version"`
	Count   int      `json:"count"`
}

// GenerateUUIDs produces count UUIDs of the requested version. Version 5
// derives names "devpockit-{i}" under the given namespace; without a
// namespace a random one is used, making the result non-reproducible.
func (s *ToolsService) GenerateUUIDs(version, count int, namespace string) (*UUIDGenerateResult, error) {
	uuids := make([]string, 0, count)

	switch version {
	case 1:
		for i := 0; i < count; i++ {
			id, err := uuid.NewUUID()
			if err != nil {
				return nil, fmt.Errorf("uuid generation error: %w", err)
			}
			uuids = append(uuids, id.String())
		}
	case 4:
		for i := 0; i < count; i++ {
			uuids = append(uuids, uuid.NewString())
		}
	case 5:
		ns := uuid.New()
		if namespace != "" {
			parsed, err := uuid.Parse(namespace)
			if err != nil {
				return nil, fmt.Errorf("uuid generation error: invalid namespace: %w", err)
			}
			ns = parsed
		}
		for i := 0; i < count; i++ {
			name := fmt.Sprintf("devpockit-%d", i)
			uuids = append(uuids, uuid.NewSHA1(ns, []byte(name)).String())
		}
	default:
		return nil, fmt.Errorf("unsupported UUID version: %d", version)
	}

	return &UUIDGenerateResult{UUIDs: uuids, Version: version, Count: count}, nil
}
