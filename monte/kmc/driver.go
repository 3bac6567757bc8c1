package kmc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bpuchala/CASMcode-monte/monte/occloc"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

// KMCData is scratch state shared by sampling functions across one run:
// the current total event rate and simulated time, and the simulated time
// as of each fixture's previous sample (useful for functions that report
// time-averaged quantities).
type KMCData struct {
	TotalRate float64
	Time      float64
	PrevTime  map[string]float64
}

// Driver runs the outer KMC loop described in §4.7: repeatedly select an
// event, let every fixture sample if due, apply the event, and stop once
// the RunManager reports completion.
type Driver struct {
	Data        *KMCData
	OccLocation *occloc.OccLocation
	Occupation  []int
	Selector    EventSelector
	Events      EventLookup
	Manager     *RunManager

	// Logger receives one entry per applied event at Debug level, in the
	// style of a tick trace. Defaults to logrus.StandardLogger() if nil.
	Logger *logrus.Logger

	// StatusInterval is the minimum wall-clock time, in seconds, between
	// status writes by Manager.WriteStatusIfDue, which Run calls once per
	// loop iteration. Zero disables status writing.
	StatusInterval float64
}

// NewDriver builds a Driver ready to Run. Status logging is enabled with a
// 5-second interval by default; set StatusInterval to 0 to disable it.
func NewDriver(occLocation *occloc.OccLocation, occupation []int, selector EventSelector, events EventLookup, manager *RunManager) *Driver {
	return &Driver{
		Data:           &KMCData{PrevTime: make(map[string]float64)},
		OccLocation:    occLocation,
		Occupation:     occupation,
		Selector:       selector,
		Events:         events,
		Manager:        manager,
		Logger:         logrus.StandardLogger(),
		StatusInterval: 5.0,
	}
}

// Run executes the loop to completion.
func (d *Driver) Run() error {
	d.Data.Time = 0
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}

	for {
		complete, err := d.Manager.IsComplete()
		if err != nil {
			return fmt.Errorf("kmc: completion check: %w", err)
		}
		if complete {
			break
		}
		if d.StatusInterval > 0 {
			d.Manager.WriteStatusIfDue(d.StatusInterval, d.Logger)
		}

		d.Data.TotalRate = d.Selector.TotalRate()
		id, dt := d.Selector.SelectEvent()
		if dt <= 0 {
			return fmt.Errorf("kmc: selected event has non-positive time increment %f", dt)
		}
		eventTime := d.Data.Time + dt

		for _, f := range d.Manager.Fixtures {
			if f.Sampler.SampleMode == statesampler.ByTime {
				continue
			}
			if err := f.Sampler.SampleDataByCountIfDue(); err != nil {
				return fmt.Errorf("kmc: fixture %q: %w", f.Label, err)
			}
		}

		for _, f := range d.Manager.Fixtures {
			if f.Sampler.SampleMode != statesampler.ByTime {
				continue
			}
			for eventTime >= f.Sampler.NextSampleTime {
				f.Sampler.SetTime(f.Sampler.NextSampleTime)
				if err := f.Sampler.SampleData(); err != nil {
					return fmt.Errorf("kmc: fixture %q: %w", f.Label, err)
				}
				if f.Sampler.NextSampleTime > eventTime {
					break
				}
			}
		}

		event := d.Events.Event(id)
		if err := d.OccLocation.Apply(event, d.Occupation); err != nil {
			return fmt.Errorf("kmc: applying event %d: %w", id, err)
		}
		d.Data.Time = eventTime

		for _, f := range d.Manager.Fixtures {
			f.Sampler.SetTime(eventTime)
			f.Sampler.IncrementStep()
		}

		d.Logger.WithFields(logrus.Fields{
			"event": id,
			"time":  eventTime,
		}).Debug("kmc: applied event")
	}

	return nil
}
