package statesampler

import (
	"fmt"
	"math"
	"time"

	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
)

// SampleMode selects what counter drives sample scheduling.
type SampleMode int

const (
	BySteps SampleMode = iota
	ByPass
	ByTime
)

// SampleMethod selects the deterministic spacing formula between samples.
type SampleMethod int

const (
	Linear SampleMethod = iota
	Log
)

// StateSamplingFunction evaluates one named, vector-valued quantity of the
// current state on demand. ComponentNames labels each entry of the slice
// Function returns for reporting and for indexing precision requests.
type StateSamplingFunction struct {
	Name           string
	Description    string
	ComponentNames []string
	Function       func() []float64
}

// StateSampler schedules and dispatches sampling of a fixed set of
// StateSamplingFunctions against step/pass/count/time counters that a driver
// advances via IncrementStep and SetTime.
type StateSampler struct {
	Rand monte.RandSource

	SampleMode             SampleMode
	SampleMethod           SampleMethod
	Begin                  float64
	Period                 float64
	SamplesPerPeriod       float64
	Shift                  float64
	StochasticSamplePeriod bool
	DoSampleTrajectory     bool
	DoSampleTime           bool

	Functions []StateSamplingFunction
	Samplers  map[string]*sampler.Sampler

	StepsPerPass int64
	Step         int64
	Pass         int64
	Count        int64
	Time         float64
	NAccept      int64
	NReject      int64

	NextSampleCount int64
	NextSampleTime  float64

	SampleCount     []int64
	SampleTime      []float64
	SampleClocktime []float64

	startTime time.Time
}

// New builds a StateSampler. Call Reset before sampling begins.
func New(rng monte.RandSource, sampleMode SampleMode, sampleMethod SampleMethod, begin, period, samplesPerPeriod, shift float64, stochasticSamplePeriod, doSampleTrajectory, doSampleTime bool, functions []StateSamplingFunction) *StateSampler {
	s := &StateSampler{
		Rand:                   rng,
		SampleMode:             sampleMode,
		SampleMethod:           sampleMethod,
		Begin:                  begin,
		Period:                 period,
		SamplesPerPeriod:       samplesPerPeriod,
		Shift:                  shift,
		StochasticSamplePeriod: stochasticSamplePeriod,
		DoSampleTrajectory:     doSampleTrajectory,
		DoSampleTime:           doSampleTime,
		Functions:              functions,
	}
	s.Reset(1)
	return s
}

// Reset clears all sampled data and counters and sets stepsPerPass, the
// number of steps that make up one pass (typically the number of mutating
// sites in the configuration).
func (s *StateSampler) Reset(stepsPerPass int64) error {
	s.StepsPerPass = stepsPerPass
	s.Step = 0
	s.Pass = 0
	s.Count = 0
	s.Time = 0.0
	s.NAccept = 0
	s.NReject = 0
	s.startTime = time.Now()

	s.Samplers = make(map[string]*sampler.Sampler, len(s.Functions))
	for _, fn := range s.Functions {
		s.Samplers[fn.Name] = sampler.New(fn.Name, fn.ComponentNames)
	}
	s.SampleCount = s.SampleCount[:0]
	s.SampleTime = s.SampleTime[:0]
	s.SampleClocktime = s.SampleClocktime[:0]

	if s.SampleMode == ByTime {
		s.NextSampleCount = 0
		next, err := s.sampleAt(int64(len(s.SampleTime)))
		if err != nil {
			return err
		}
		if next < 0.0 {
			return fmt.Errorf("statesampler: sampling period parameter error, next_sample_time < 0.0")
		}
		s.NextSampleTime = next
	} else {
		s.NextSampleTime = 0.0
		next, err := s.sampleAt(int64(len(s.SampleCount)))
		if err != nil {
			return err
		}
		nextCount := int64(math.Round(next))
		if nextCount < 0 {
			return fmt.Errorf("statesampler: sampling period parameter error, next_sample_count < 0")
		}
		s.NextSampleCount = nextCount
	}
	return nil
}

// stochasticCountStep draws how many further steps or passes elapse before
// the next sample, given a target mean sampling rate (samples per count).
func (s *StateSampler) stochasticCountStep(sampleRate float64) int64 {
	var dn int64 = 1
	for {
		if s.Rand.Float64() < sampleRate {
			return dn
		}
		dn++
	}
}

// stochasticTimeStep draws how much simulated time elapses before the next
// sample, given a target mean sampling rate (samples per unit time).
func (s *StateSampler) stochasticTimeStep(sampleRate float64) float64 {
	return -math.Log(s.Rand.Float64()) / sampleRate
}

// sampleAt returns the count or time at which the sampleIndex-th sample
// should be taken.
//
// If StochasticSamplePeriod is false, this is the deterministic LINEAR or
// LOG spacing formula evaluated at sampleIndex. If true, the same formulas
// instead determine a mean rate, and the next sample is drawn stochastically
// (exponential inter-sample time, geometric inter-sample count) around
// that rate, so that repeated runs still sample at the configured mean
// cadence without being perfectly evenly spaced.
func (s *StateSampler) sampleAt(sampleIndex int64) (float64, error) {
	if s.StochasticSamplePeriod {
		if sampleIndex == 0 {
			return s.Begin, nil
		}
		n := float64(sampleIndex)
		var rate float64
		if s.SampleMethod == Linear {
			rate = 1.0 / (s.Period / s.SamplesPerPeriod)
		} else {
			rate = 1.0 / (math.Log(s.Period) * math.Pow(s.Period, (n+s.Shift)/s.SamplesPerPeriod) / s.SamplesPerPeriod)
		}
		if s.SampleMode == ByTime {
			if len(s.SampleTime) == 0 {
				return 0, fmt.Errorf("statesampler: stochastic sampling requires at least one prior time sample")
			}
			last := s.SampleTime[len(s.SampleTime)-1]
			return last + s.stochasticTimeStep(rate), nil
		}
		if len(s.SampleCount) == 0 {
			return 0, fmt.Errorf("statesampler: stochastic sampling requires at least one prior count sample")
		}
		last := float64(s.SampleCount[len(s.SampleCount)-1])
		return last + float64(s.stochasticCountStep(rate)), nil
	}

	n := float64(sampleIndex)
	if s.SampleMethod == Linear {
		return s.Begin + (s.Period/s.SamplesPerPeriod)*n, nil
	}
	return s.Begin + math.Pow(s.Period, (n+s.Shift)/s.SamplesPerPeriod), nil
}

// SampleData records one sample: the current count, optionally the current
// time, the elapsed wall-clock time, and the result of every configured
// sampling function. It then advances NextSampleCount/NextSampleTime.
//
// The drivers in this module (monte/kmc.Driver and models/ising.Run) call it
// before applying the current step's event and before IncrementStep, so a
// sample records the state reached at the current count.
func (s *StateSampler) SampleData() error {
	s.SampleCount = append(s.SampleCount, s.Count)
	if s.DoSampleTime {
		s.SampleTime = append(s.SampleTime, s.Time)
	}
	s.SampleClocktime = append(s.SampleClocktime, time.Since(s.startTime).Seconds())

	for _, fn := range s.Functions {
		if err := s.Samplers[fn.Name].PushBack(fn.Function()); err != nil {
			return fmt.Errorf("statesampler: sampling %q: %w", fn.Name, err)
		}
	}

	if s.SampleMode == ByTime {
		next, err := s.sampleAt(int64(len(s.SampleTime)))
		if err != nil {
			return err
		}
		if next <= s.Time {
			return fmt.Errorf("statesampler: sampling period parameter error, next_sample_time <= current time")
		}
		s.NextSampleTime = next
	} else {
		next, err := s.sampleAt(int64(len(s.SampleCount)))
		if err != nil {
			return err
		}
		nextCount := int64(math.Round(next))
		if nextCount <= s.Count {
			return fmt.Errorf("statesampler: sampling period parameter error, next_sample_count <= current count")
		}
		s.NextSampleCount = nextCount
	}
	return nil
}

// SampleDataByCountIfDue takes a sample if the current Count has reached
// NextSampleCount and sampling is not driven by time.
func (s *StateSampler) SampleDataByCountIfDue() error {
	if s.SampleMode != ByTime && s.Count == s.NextSampleCount {
		return s.SampleData()
	}
	return nil
}

// SampleDataByTimeIfDue takes a sample if eventTime has reached
// NextSampleTime and sampling is not driven by time (BY_TIME sampling is
// instead handled by the driver directly setting the event time and
// sampling unconditionally at that time).
func (s *StateSampler) SampleDataByTimeIfDue(eventTime float64) error {
	if s.SampleMode != ByTime && eventTime >= s.NextSampleTime {
		return s.SampleData()
	}
	return nil
}

// IncrementNAccept records one accepted event.
func (s *StateSampler) IncrementNAccept() { s.NAccept++ }

// IncrementNReject records one rejected event.
func (s *StateSampler) IncrementNReject() { s.NReject++ }

// IncrementStep advances the step counter by one, rolling over into a pass
// once StepsPerPass steps have elapsed, and updates Count according to
// SampleMode.
func (s *StateSampler) IncrementStep() {
	s.Step++
	if s.SampleMode == BySteps {
		s.Count++
	}
	if s.Step == s.StepsPerPass {
		s.Pass++
		if s.SampleMode != BySteps {
			s.Count++
		}
		s.Step = 0
	}
}

// SetTime sets the current simulated time.
func (s *StateSampler) SetTime(eventTime float64) { s.Time = eventTime }
