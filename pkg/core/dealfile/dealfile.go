// Package dealfile decodes deal snapshots written by hand. Files are tried
// as strict JSON first, then Hjson, then repaired JSON. YAML files are
// recognised by extension.
package dealfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"hotel_underwriting/pkg/models"
)

// Format records which decoder accepted the input.
type Format string

const (
	FormatJSON         Format = "json"
	FormatRepairedJSON Format = "repaired_json"
	FormatHJSON        Format = "hjson"
	FormatYAML         Format = "yaml"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("deal file is empty")

// Load reads and decodes the deal at path.
func Load(path string) (*models.Deal, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read deal file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		deal, err := DecodeYAML(data)
		return deal, FormatYAML, err
	}

	deal, format, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return deal, format, nil
}

// Decode tries strict JSON, then Hjson, then repaired JSON. Hjson runs
// before repair since the repairer accepts almost any input.
func Decode(data []byte) (*models.Deal, Format, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, "", ErrEmpty
	}

	var deal models.Deal
	strictErr := json.Unmarshal(data, &deal)
	if strictErr == nil {
		return &deal, FormatJSON, nil
	}

	// Hjson goes through a generic value so the json tags on Deal apply.
	var generic interface{}
	if err := hjson.Unmarshal(data, &generic); err == nil {
		if normalized, err := json.Marshal(generic); err == nil {
			deal = models.Deal{}
			if err := json.Unmarshal(normalized, &deal); err == nil {
				return &deal, FormatHJSON, nil
			}
		}
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		deal = models.Deal{}
		if err := json.Unmarshal([]byte(repaired), &deal); err == nil {
			return &deal, FormatRepairedJSON, nil
		}
	}

	return nil, "", fmt.Errorf("deal file is not valid JSON or Hjson: %w", strictErr)
}

// DecodeYAML decodes a YAML deal.
func DecodeYAML(data []byte) (*models.Deal, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	var deal models.Deal
	if err := yaml.Unmarshal(data, &deal); err != nil {
		return nil, fmt.Errorf("yaml deal file: %w", err)
	}
	return &deal, nil
}

// Save writes the deal as indented JSON, or YAML for .yaml/.yml paths.
func Save(path string, deal *models.Deal) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(deal)
	default:
		data, err = json.MarshalIndent(deal, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode deal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
