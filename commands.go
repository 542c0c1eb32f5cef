package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtcount/internal/circuit"
	"qtcount/internal/optimize"
	"qtcount/internal/sim"
)

// --- Global Command Variables ---
var (
	configPath   string
	methodFlag   string
	workersFlag  int
	noGadgetize  bool
	logLevelFlag string
	timeoutFlag  string
	outputPath   string
	verifyAfter  bool
	savePath     string

	cfg    Config
	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "qtcount",
		Short: "T-count optimizer for Clifford+T circuits",
		Long: `qtcount reduces the number of T gates in Clifford+T circuits read from
OpenQASM 2.0 or .qc files using TOHPE or FastTODD phase polynomial reduction.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	optimizeCmd = &cobra.Command{
		Use:   "optimize [circuit]",
		Short: "Optimize the T-count of a circuit",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptimize,
	}

	statsCmd = &cobra.Command{
		Use:   "stats [circuit...]",
		Short: "Print gate metrics for one or more circuits",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runStats,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify [circuit]",
		Short: "Optimize a circuit and check the result by state-vector simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}

	viewCmd = &cobra.Command{
		Use:   "view [circuit]",
		Short: "Browse the original and optimized circuit in a terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", DefaultConfigPath, "path to the YAML configuration file")
	pf.StringVar(&methodFlag, "method", "", "reduction method: tohpe or fasttodd")
	pf.IntVar(&workersFlag, "workers", 0, "segments reduced concurrently")
	pf.BoolVar(&noGadgetize, "no-gadgetize", false, "keep interior Hadamards instead of gadgetizing them")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&timeoutFlag, "timeout", "", "abort the optimization after this duration (e.g. 30s)")

	optimizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the optimized circuit here (.qasm or .qc)")
	optimizeCmd.Flags().BoolVar(&verifyAfter, "verify", false, "check the result by simulation")

	viewCmd.Flags().StringVar(&savePath, "save", "optimized.qasm", "file written by ctrl+s")

	rootCmd.AddCommand(optimizeCmd, statsCmd, verifyCmd, viewCmd)
}

// loadSettings reads the config file, applies flag overrides and builds the
// logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = LoadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err = newLogger(cfg.Log)
	return err
}

func applyFlags(c *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("method") {
		c.Method = strings.ToLower(methodFlag)
	}
	if flags.Changed("workers") {
		c.Workers = workersFlag
	}
	if flags.Changed("no-gadgetize") {
		c.Gadgetize = !noGadgetize
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevelFlag
	}
	if flags.Changed("timeout") {
		d, err := parseTimeout(timeoutFlag)
		if err != nil {
			return err
		}
		c.Timeout = d
	}
	return nil
}

func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func runPipeline(cmd *cobra.Command, c *circuit.Circuit) (*optimize.Result, error) {
	ctx, cancel := runContext(cmd)
	defer cancel()
	opts := cfg.Options()
	opts.Logger = logger
	return optimize.TCountOptimization(ctx, c, opts)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	c, err := readCircuit(args[0])
	if err != nil {
		return err
	}
	res, err := runPipeline(cmd, c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputPath == "" {
		fmt.Fprint(out, res.Circuit.ToQASM())
		out = cmd.ErrOrStderr()
	} else if err := writeCircuit(outputPath, res.Circuit); err != nil {
		return err
	}
	writeMetrics(out, []string{"Before", "After"}, res.Before, res.After)
	if len(res.Retired) > 0 {
		fmt.Fprintf(out, "Logical qubits on wires %v; post-select wires %v on |+>\n", res.Mapping, res.Retired)
	}

	if verifyAfter {
		return checkResult(cmd, c, res)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	var sets []circuit.Metrics
	for _, path := range args {
		c, err := readCircuit(path)
		if err != nil {
			return err
		}
		sets = append(sets, c.Metrics())
	}
	writeMetrics(cmd.OutOrStdout(), args, sets...)
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	c, err := readCircuit(args[0])
	if err != nil {
		return err
	}
	res, err := runPipeline(cmd, c)
	if err != nil {
		return err
	}
	return checkResult(cmd, c, res)
}

// checkResult simulates both circuits, post-selecting the retired gadget
// wires of the optimized one, and reports the T-count change.
func checkResult(cmd *cobra.Command, orig *circuit.Circuit, res *optimize.Result) error {
	if err := verifyResult(orig, res, cfg.CleanAncillas); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "verified: T-count %d -> %d\n", res.Before.TCount, res.After.TCount)
	return nil
}

// verifyResult compares the columns of the input unitary with the optimized
// circuit. Inputs that set a clean ancilla are skipped since the clean
// Toffoli decomposition assumes those wires start in |0>.
func verifyResult(orig *circuit.Circuit, res *optimize.Result, clean []int) error {
	if res.Circuit.NumQubits > sim.MaxQubits {
		return errors.Wrapf(sim.ErrTooLarge, "optimized circuit has %d wires", res.Circuit.NumQubits)
	}
	ref, err := sim.Unitary(orig)
	if err != nil {
		return err
	}
	var dirty int
	for _, q := range clean {
		dirty |= 1 << q
	}
	var want, got []*sim.StateVector
	for k := range ref {
		if k&dirty != 0 {
			continue
		}
		want = append(want, ref[k])
		got = append(got, sim.Basis(res.Circuit.NumQubits, k).Run(res.Circuit).PostSelect(res.Mapping, res.Retired))
	}
	if !sim.EqualUpToPhase(want, got, 1e-7) {
		return errors.New("verification failed: optimized circuit differs from the input")
	}
	return nil
}
