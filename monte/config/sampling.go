package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// SamplingParams is the external, YAML-facing description of what a
// StateSampler samples and how often.
type SamplingParams struct {
	SampleBy               string   `yaml:"sample_by"`
	Spacing                string   `yaml:"spacing"`
	Begin                  float64  `yaml:"begin"`
	Period                 float64  `yaml:"period"`
	SamplesPerPeriod       float64  `yaml:"samples_per_period"`
	Shift                  float64  `yaml:"shift"`
	StochasticSamplePeriod bool     `yaml:"stochastic_sample_period"`
	Quantities             []string `yaml:"quantities"`
	SampleTrajectory       bool     `yaml:"sample_trajectory"`
}

// DefaultSamplingParams returns a SamplingParams with every default value
// from §6 filled in; callers decode YAML into a copy of this rather than a
// zero value.
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		Spacing:          "linear",
		SamplesPerPeriod: 1.0,
	}
}

// LoadSamplingParams reads and strictly parses a YAML sampling params file.
func LoadSamplingParams(path string) (*SamplingParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading sampling params: %w", err)
	}
	params := DefaultSamplingParams()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("config: parsing sampling params: %w", err)
	}
	return &params, nil
}

// Validate checks p against §6's rules. timeSamplingAllowed reports whether
// the calling driver supports BY_TIME sampling. knownQuantities is the set
// of registered sampling function names.
func (p *SamplingParams) Validate(timeSamplingAllowed bool, knownQuantities map[string]bool) ConfigErrors {
	var errs ConfigErrors

	switch p.SampleBy {
	case "pass", "step":
	case "time":
		if !timeSamplingAllowed {
			errs = append(errs, ConfigError{"sample_by", `"time" sampling is not supported here`})
		}
	default:
		errs = append(errs, ConfigError{"sample_by", fmt.Sprintf("must be one of pass, step, time; got %q", p.SampleBy)})
	}

	switch p.Spacing {
	case "linear", "log":
	default:
		errs = append(errs, ConfigError{"spacing", fmt.Sprintf("must be linear or log; got %q", p.Spacing)})
	}

	if p.Spacing == "log" {
		if p.Period <= 1.0 {
			errs = append(errs, ConfigError{"period", fmt.Sprintf("must be > 1.0 for log spacing, got %f", p.Period)})
		}
	} else if p.Period <= 0.0 {
		errs = append(errs, ConfigError{"period", fmt.Sprintf("must be > 0.0, got %f", p.Period)})
	}

	for i, q := range p.Quantities {
		if !knownQuantities[q] {
			errs = append(errs, ConfigError{fmt.Sprintf("quantities/%d", i), fmt.Sprintf("unknown sampling function %q", q)})
		}
	}

	return errs
}

// ScheduleMode converts SampleBy to a statesampler.SampleMode. Callers
// should only rely on this after Validate reports no error on sample_by.
func (p *SamplingParams) ScheduleMode() statesampler.SampleMode {
	switch p.SampleBy {
	case "step":
		return statesampler.BySteps
	case "time":
		return statesampler.ByTime
	default:
		return statesampler.ByPass
	}
}

// ScheduleMethod converts Spacing to a statesampler.SampleMethod. Callers
// should only rely on this after Validate reports no error on spacing.
func (p *SamplingParams) ScheduleMethod() statesampler.SampleMethod {
	if p.Spacing == "log" {
		return statesampler.Log
	}
	return statesampler.Linear
}
