package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// JSONFormatRequest payload for JSON formatting.
type JSONFormatRequest struct {
	Data   string `json:"data"`
	Minify bool   `json:"minify"`
}

// Validate runs validation rules.
func (r JSONFormatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Data, validation.Required),
	)
}

// YAMLConvertRequest payload for JSON/YAML conversion.
type YAMLConvertRequest struct {
	Data       string `json:"data"`
	FromFormat string `json:"from_format"`
	ToFormat   string `json:"to_format"`
}

// Validate runs validation rules.
func (r YAMLConvertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Data, validation.Required),
		validation.Field(&r.FromFormat, validation.Required, validation.In("json", "yaml")),
		validation.Field(&r.ToFormat, validation.Required, validation.In("json", "yaml")),
	)
}

// UUIDGenerateRequest payload for UUID generation. Version and count
// default to 4 and 1 when omitted.
type UUIDGenerateRequest struct {
	Version   int    `json:"version"`
	Count     int    `json:"count"`
	Namespace string `json:"namespace"`
}

// ApplyDefaults fills zero values with the documented defaults.
func (r *UUIDGenerateRequest) ApplyDefaults() {
	if r.Version == 0 {
		r.Version = 4
	}
	if r.Count == 0 {
		r.Count = 1
	}
}

// Validate runs validation rules.
func (r UUIDGenerateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Version, validation.In(1, 4, 5)),
		validation.Field(&r.Count, validation.Min(1), validation.Max(1000)),
	)
}
