package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
	"github.com/bpuchala/CASMcode-monte/monte/statistics"
)

// CutoffAxis is one min/max pair on a cutoff axis; either bound may be
// omitted.
type CutoffAxis struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// CutoffSpec is the YAML-facing form of the four cutoff axes.
type CutoffSpec struct {
	Count     *CutoffAxis `yaml:"count,omitempty"`
	Sample    *CutoffAxis `yaml:"sample,omitempty"`
	Time      *CutoffAxis `yaml:"time,omitempty"`
	Clocktime *CutoffAxis `yaml:"clocktime,omitempty"`
}

// ConvergenceSpec names one quantity (and optionally a subset of its
// components) to converge, and the precision it must reach. Exactly one of
// AbsPrecision, RelPrecision, or Precision (an alias for AbsPrecision) must
// be set, unless both AbsPrecision and RelPrecision are set together.
type ConvergenceSpec struct {
	Quantity       string   `yaml:"quantity"`
	AbsPrecision   *float64 `yaml:"abs_precision,omitempty"`
	RelPrecision   *float64 `yaml:"rel_precision,omitempty"`
	Precision      *float64 `yaml:"precision,omitempty"`
	ComponentIndex []int    `yaml:"component_index,omitempty"`
	ComponentName  []string `yaml:"component_name,omitempty"`
}

// CompletionCheckParams is the external, YAML-facing description of a run's
// cutoffs, check schedule, and convergence requirements.
type CompletionCheckParams struct {
	Cutoff CutoffSpec `yaml:"cutoff,omitempty"`

	Spacing         string  `yaml:"spacing,omitempty"`
	Begin           float64 `yaml:"begin,omitempty"`
	Period          float64 `yaml:"period,omitempty"`
	ChecksPerPeriod float64 `yaml:"checks_per_period,omitempty"`
	Shift           float64 `yaml:"shift,omitempty"`

	Confidence                 float64 `yaml:"confidence,omitempty"`
	WeightedObservationsMethod int     `yaml:"weighted_observations_method,omitempty"`
	NResamples                 int     `yaml:"n_resamples,omitempty"`

	Convergence []ConvergenceSpec `yaml:"convergence,omitempty"`
}

// DefaultCompletionCheckParams returns a CompletionCheckParams with every
// default value from §6 filled in.
func DefaultCompletionCheckParams() CompletionCheckParams {
	return CompletionCheckParams{
		Spacing:                    "linear",
		ChecksPerPeriod:            1.0,
		Confidence:                 0.95,
		WeightedObservationsMethod: 1,
		NResamples:                 10000,
	}
}

// LoadCompletionCheckParams reads and strictly parses a YAML completion
// check params file.
func LoadCompletionCheckParams(path string) (*CompletionCheckParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading completion check params: %w", err)
	}
	params := DefaultCompletionCheckParams()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("config: parsing completion check params: %w", err)
	}
	return &params, nil
}

// Build validates p and, if it is valid, converts it into the runtime
// checks.CompletionCheckParams monte/checks operates on. samplingFunctions
// maps every registered sampling function name to its component names, used
// to validate and resolve convergence requests.
func (p *CompletionCheckParams) Build(samplingFunctions map[string][]string) (checks.CompletionCheckParams, ConfigErrors) {
	var errs ConfigErrors
	out := checks.CompletionCheckParams{
		CheckBegin:                 p.Begin,
		CheckPeriod:                p.Period,
		ChecksPerPeriod:            p.ChecksPerPeriod,
		CheckShift:                 p.Shift,
		Confidence:                 p.Confidence,
		WeightedObservationsMethod: statistics.WeightedObservationsMethod(p.WeightedObservationsMethod),
		NResamples:                 p.NResamples,
	}

	switch p.Spacing {
	case "linear":
		out.CheckSpacing = statesampler.Linear
		if p.Period <= 0.0 {
			errs = append(errs, ConfigError{"period", fmt.Sprintf("must be > 0.0, got %f", p.Period)})
		}
	case "log":
		out.CheckSpacing = statesampler.Log
		if p.Period <= 1.0 {
			errs = append(errs, ConfigError{"period", fmt.Sprintf("must be > 1.0 for log spacing, got %f", p.Period)})
		}
	default:
		errs = append(errs, ConfigError{"spacing", fmt.Sprintf("must be linear or log; got %q", p.Spacing)})
	}

	if p.WeightedObservationsMethod != 1 && p.WeightedObservationsMethod != 2 {
		errs = append(errs, ConfigError{"weighted_observations_method", fmt.Sprintf("must be 1 or 2; got %d", p.WeightedObservationsMethod)})
	}
	if p.Confidence <= 0.0 || p.Confidence >= 1.0 {
		errs = append(errs, ConfigError{"confidence", fmt.Sprintf("must be in (0, 1); got %f", p.Confidence)})
	}

	out.Cutoff = buildCutoff(p.Cutoff)

	target := map[sampler.SamplerComponent]checks.RequestedPrecision{}
	for i, c := range p.Convergence {
		path := fmt.Sprintf("convergence/%d", i)
		names, ok := samplingFunctions[c.Quantity]
		if !ok {
			errs = append(errs, ConfigError{path + "/quantity", fmt.Sprintf("unknown sampling function %q", c.Quantity)})
			continue
		}
		if len(c.ComponentIndex) > 0 && len(c.ComponentName) > 0 {
			errs = append(errs, ConfigError{path, "component_index and component_name are mutually exclusive"})
			continue
		}

		precision, err := convergencePrecision(c)
		if err != nil {
			errs = append(errs, ConfigError{path, err.Error()})
			continue
		}

		builder := checks.Converge(target, c.Quantity, names)
		switch {
		case len(c.ComponentIndex) > 0:
			for _, idx := range c.ComponentIndex {
				if idx < 0 || idx >= len(names) {
					errs = append(errs, ConfigError{path + "/component_index", fmt.Sprintf("index %d out of range for %q", idx, c.Quantity)})
					continue
				}
				builder.Component(idx).Precision(precision)
			}
		case len(c.ComponentName) > 0:
			for _, name := range c.ComponentName {
				if !contains(names, name) {
					errs = append(errs, ConfigError{path + "/component_name", fmt.Sprintf("unknown component %q for %q", name, c.Quantity)})
					continue
				}
				builder.ComponentByName(name).Precision(precision)
			}
		default:
			builder.Precision(precision)
		}
	}

	for component, precision := range target {
		out.Convergence = append(out.Convergence, checks.ConvergenceRequest{Component: component, Precision: precision})
	}
	sort.Slice(out.Convergence, func(i, j int) bool {
		a, b := out.Convergence[i].Component, out.Convergence[j].Component
		if a.SamplerName != b.SamplerName {
			return a.SamplerName < b.SamplerName
		}
		return a.ComponentIndex < b.ComponentIndex
	})

	if len(errs) > 0 {
		return checks.CompletionCheckParams{}, errs
	}
	return out, nil
}

func convergencePrecision(c ConvergenceSpec) (checks.RequestedPrecision, error) {
	switch {
	case c.Precision != nil && (c.AbsPrecision != nil || c.RelPrecision != nil):
		return checks.RequestedPrecision{}, fmt.Errorf("precision cannot be combined with abs_precision or rel_precision")
	case c.AbsPrecision != nil && c.RelPrecision != nil:
		return checks.AbsAndRel(*c.AbsPrecision, *c.RelPrecision), nil
	case c.AbsPrecision != nil:
		return checks.Abs(*c.AbsPrecision), nil
	case c.RelPrecision != nil:
		return checks.Rel(*c.RelPrecision), nil
	case c.Precision != nil:
		return checks.Abs(*c.Precision), nil
	default:
		return checks.RequestedPrecision{}, fmt.Errorf("one of abs_precision, rel_precision, or precision is required")
	}
}

func buildCutoff(spec CutoffSpec) checks.CutoffParams {
	var out checks.CutoffParams
	if spec.Count != nil {
		out.CountMin = toInt64Ptr(spec.Count.Min)
		out.CountMax = toInt64Ptr(spec.Count.Max)
	}
	if spec.Sample != nil {
		out.SampleMin = toInt64Ptr(spec.Sample.Min)
		out.SampleMax = toInt64Ptr(spec.Sample.Max)
	}
	if spec.Time != nil {
		out.TimeMin = spec.Time.Min
		out.TimeMax = spec.Time.Max
	}
	if spec.Clocktime != nil {
		out.ClocktimeMin = spec.Clocktime.Min
		out.ClocktimeMax = spec.Clocktime.Max
	}
	return out
}

func toInt64Ptr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
