// Package casmmontesim provides the CLI entry point for running the bundled
// lattice Monte Carlo models.
package casmmontesim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/bpuchala/CASMcode-monte/models/ising"
	"github.com/bpuchala/CASMcode-monte/monte"
	"github.com/bpuchala/CASMcode-monte/monte/checks"
	"github.com/bpuchala/CASMcode-monte/monte/config"
	"github.com/bpuchala/CASMcode-monte/monte/sampler"
	"github.com/bpuchala/CASMcode-monte/monte/statesampler"
)

var (
	// Run configuration
	seed     int64  // Master RNG seed; every subsystem's stream derives from this
	logLevel string // Log verbosity level

	// Lattice and Hamiltonian
	rows, cols  int     // Lattice dimensions
	fillValue   int     // Initial occupation, +1 or -1, applied uniformly
	j           float64 // Nearest-neighbor exchange interaction
	mu          float64 // Exchange potential conjugate to composition
	temperature float64 // Temperature, same energy units as j (kB folded in)

	// Sampling and completion checking
	stepsPerPass         int64   // Proposed flips per pass ("sweep")
	minSamples           int64   // Minimum samples before completion is possible
	checkBegin           float64 // Sample count of the first convergence check
	checkPeriod          float64 // Samples between convergence checks
	precision            float64 // Absolute precision required at convergence
	confidence           float64 // Confidence level used by convergence statistics
	samplingConfigPath   string  // Optional YAML override for sampling parameters
	completionConfigPath string  // Optional YAML override for completion check parameters
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "casmmontesim",
	Short: "Lattice Monte Carlo simulation runtime",
}

// runCmd runs the bundled Ising semi-grand canonical model to completion.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Ising semi-grand canonical model",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if fillValue != 1 && fillValue != -1 {
			logrus.Fatalf("--fill must be 1 or -1, got %d", fillValue)
		}

		engine := monte.NewRandEngine(seed)
		// FixedConfigGenerator always returns the same starting lattice; a
		// future incremental-conditions driver that scans a temperature or
		// mu grid would swap this for a ConfigGenerator that starts each run
		// from the previous run's final configuration.
		configGen := monte.FixedConfigGenerator[*ising.Configuration]{
			Configuration: ising.NewConfiguration(rows, cols, fillValue),
		}
		lattice := configGen.Generate(monte.ValueMap{}, nil)
		calc := ising.NewCalculator(lattice, j, ising.Conditions{Temperature: temperature, ExchangePotential: mu}, engine.ForSubsystem("metropolis"))

		samp, err := buildSampler(engine, calc)
		if err != nil {
			logrus.Fatalf("sampling config: %v", err)
		}
		check, err := buildCompletionCheck(calc)
		if err != nil {
			logrus.Fatalf("completion check config: %v", err)
		}

		logrus.Infof("Starting semi-grand canonical run: %dx%d lattice, J=%v, mu=%v, T=%v, seed=%d",
			rows, cols, j, mu, temperature, seed)

		results, err := ising.Run(calc, stepsPerPass, samp, check, engine.ForSubsystem("checks"))
		if err != nil {
			logrus.Fatalf("run failed: %v", err)
		}

		logrus.Infof("Run complete: is_complete=%v has_all_minimums_met=%v n_samples=%d n_accept=%d n_reject=%d",
			results.IsComplete, results.HasAllMinimumsMet, results.NSamples, calc.NAccept, calc.NReject)

		for _, name := range []string{"param_composition", "formation_energy", "potential_energy"} {
			printMean(samp, name)
		}

		runData := monte.RunData[*ising.Configuration]{
			InitialState: monte.NewState(lattice),
			FinalState:   monte.NewState(lattice),
		}
		analysis := checks.RunAnalyses(analysisFunctions(samp, lattice.NSites(), temperature), runData, results, logrus.StandardLogger())
		for name, values := range analysis {
			logrus.Infof("%s: %v", name, values)
		}
	},
}

// analysisFunctions builds the post-run analysis functions evaluated once
// against samp's accumulated history: the specific heat estimated from the
// potential energy sampler's fluctuations, C = N*Var(e)/T^2.
func analysisFunctions(samp *statesampler.StateSampler, nSites int, temperature float64) []checks.AnalysisFunction[*ising.Configuration] {
	return []checks.AnalysisFunction[*ising.Configuration]{
		{
			Name:           "heat_capacity",
			Description:    "Specific heat estimated from potential energy fluctuations",
			ComponentNames: []string{"0"},
			Function: func(monte.RunData[*ising.Configuration], checks.Results) ([]float64, error) {
				e, ok := samp.Samplers["potential_energy"]
				if !ok || e.NumSamples() == 0 {
					return nil, fmt.Errorf("no potential_energy samples")
				}
				variance := stat.Variance(e.Component(0), nil)
				return []float64{float64(nSites) * variance / (temperature * temperature)}, nil
			},
		},
	}
}

func buildSampler(engine *monte.RandEngine, calc *ising.Calculator) (*statesampler.StateSampler, error) {
	params := config.DefaultSamplingParams()
	if samplingConfigPath != "" {
		loaded, err := config.LoadSamplingParams(samplingConfigPath)
		if err != nil {
			return nil, err
		}
		params = *loaded
	} else {
		params.SampleBy = "pass"
		params.Period = 1
	}

	knownQuantities := map[string]bool{"param_composition": true, "formation_energy": true, "potential_energy": true}
	if errs := params.Validate(false, knownQuantities); errs.AsError() != nil {
		return nil, errs.AsError()
	}

	samp := statesampler.New(
		engine.ForSubsystem("sampling"),
		params.ScheduleMode(),
		params.ScheduleMethod(),
		params.Begin,
		params.Period,
		params.SamplesPerPeriod,
		params.Shift,
		params.StochasticSamplePeriod,
		params.SampleTrajectory,
		false,
		calc.SamplingFunctions(),
	)
	return samp, nil
}

func buildCompletionCheck(calc *ising.Calculator) (*checks.CompletionCheck, error) {
	if completionConfigPath != "" {
		loaded, err := config.LoadCompletionCheckParams(completionConfigPath)
		if err != nil {
			return nil, err
		}
		samplingFunctionComponents := map[string][]string{}
		for _, f := range calc.SamplingFunctions() {
			samplingFunctionComponents[f.Name] = f.ComponentNames
		}
		built, errs := loaded.Build(samplingFunctionComponents)
		if errs.AsError() != nil {
			return nil, errs.AsError()
		}
		return checks.New(built), nil
	}

	params := checks.CompletionCheckParams{
		Cutoff:          checks.CutoffParams{SampleMin: &minSamples},
		CheckPeriod:     checkPeriod,
		ChecksPerPeriod: 1,
		CheckBegin:      checkBegin,
		Confidence:      confidence,
		Convergence: []checks.ConvergenceRequest{
			{Component: sampler.SamplerComponent{SamplerName: "param_composition", ComponentIndex: 0, ComponentName: "0"}, Precision: checks.Abs(precision)},
			{Component: sampler.SamplerComponent{SamplerName: "potential_energy", ComponentIndex: 0, ComponentName: "0"}, Precision: checks.Abs(precision)},
		},
	}
	return checks.New(params), nil
}

func printMean(samp *statesampler.StateSampler, name string) {
	s, ok := samp.Samplers[name]
	if !ok || s.NumSamples() == 0 {
		return
	}
	values := s.Component(0)
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	logrus.Infof("%s: mean=%f n=%d", name, sum/float64(len(values)), len(values))
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master RNG seed")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&rows, "rows", 25, "Lattice rows")
	runCmd.Flags().IntVar(&cols, "cols", 25, "Lattice columns")
	runCmd.Flags().IntVar(&fillValue, "fill", 1, "Initial occupation value, 1 or -1")
	runCmd.Flags().Float64Var(&j, "j", 0.1, "Nearest-neighbor exchange interaction")
	runCmd.Flags().Float64Var(&mu, "mu", 0.0, "Exchange potential (chemical potential difference)")
	runCmd.Flags().Float64Var(&temperature, "temperature", 2000.0, "Temperature, same units as j (kB folded in)")

	runCmd.Flags().Int64Var(&stepsPerPass, "steps-per-pass", 625, "Proposed flips per pass; defaults to rows*cols at the default lattice size")
	runCmd.Flags().Int64Var(&minSamples, "min-samples", 100, "Minimum number of samples before completion is possible")
	runCmd.Flags().Float64Var(&checkBegin, "check-begin", 100, "Sample count at which the first convergence check runs")
	runCmd.Flags().Float64Var(&checkPeriod, "check-period", 10, "Samples between convergence checks")
	runCmd.Flags().Float64Var(&precision, "precision", 0.001, "Absolute precision required of param_composition and potential_energy")
	runCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level for calculated precision")

	runCmd.Flags().StringVar(&samplingConfigPath, "sampling-config", "", "Optional path to a sampling parameters YAML file")
	runCmd.Flags().StringVar(&completionConfigPath, "completion-config", "", "Optional path to a completion check parameters YAML file")

	rootCmd.AddCommand(runCmd)
}
