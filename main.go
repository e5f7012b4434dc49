package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/tui"
	"github.com/sheikhrachel/decaylife/utils"
)

const defaultConfigFile = "decaylife.yaml"

var logger = log.New(os.Stderr, "decaylife: ", 0)

var (
	configFile  string
	rows        int
	cols        int
	decay       int
	frameRate   time.Duration
	generations int
	mode        string
	density     float64
	seed        int64
	color       bool
	autoRestart bool
	graph       bool
	quiet       bool
)

// loadConfig reads the config file when there is one, then applies explicit flags
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()

	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		config.Rows = rows
	}
	if flags.Changed("cols") {
		config.Cols = cols
	}
	if flags.Changed("decay") {
		config.DecayDuration = decay
	}
	if flags.Changed("frame-rate") {
		config.FrameRate = frameRate
	}
	if flags.Changed("generations") {
		config.MaxGenerations = generations
	}
	if flags.Changed("mode") {
		config.Mode = utils.StepMode(mode)
	}
	if flags.Changed("density") {
		config.RandomDensity = density
	}
	if flags.Changed("seed") {
		config.RandomSeed = seed
	}
	if flags.Changed("color") {
		config.Color = color
	}
	if flags.Changed("auto-restart") {
		config.AutoRestart = autoRestart
	}

	return config, config.Validate()
}

func runTerminal(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pattern, err := buildPattern(config)
	if err != nil {
		return err
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := runGame(ctx, os.Stdout, config, pattern, options{quiet: quiet})
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("\nFinal stats: %d generations in %.1f seconds\n",
			stats.TotalGenerations, stats.Runtime().Seconds())
		fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
			stats.GenerationsPerSecond, stats.AveragePopulation)
	}
	if graph {
		if plot := plotPopulation(stats); plot != "" {
			fmt.Println(plot)
		}
	}
	return nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pattern, err := buildPattern(config)
	if err != nil {
		return err
	}
	return tui.Run(config, pattern)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("[initConfig] %s already exists", path)
	}

	config := utils.DefaultConfig()
	pattern, err := buildPattern(config)
	if err != nil {
		return err
	}
	config.Pattern = pattern.Seeds()

	if err = utils.SaveConfig(path, config); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "decaylife",
		Short:         "game of life with dying cells, in the terminal",
		Args:          cobra.NoArgs,
		RunE:          runTerminal,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configFile, "config", "", "config file path (yaml), defaults to ./"+defaultConfigFile+" when present")
	persistent.IntVar(&rows, "rows", utils.DefaultRows, "grid rows")
	persistent.IntVar(&cols, "cols", utils.DefaultCols, "grid columns")
	persistent.IntVar(&decay, "decay", rules.DefaultDecay, "steps a dying cell lingers")
	persistent.DurationVar(&frameRate, "frame-rate", utils.DefaultFrameRate, "delay between generations")
	persistent.IntVar(&generations, "generations", 0, "stop after this many generations, 0 runs forever")
	persistent.StringVar(&mode, "mode", string(utils.ModeSequential), "stepper: sequential, parallel or bounded")
	persistent.Float64Var(&density, "density", 0, "probability of extra random alive cells on top of the pattern")
	persistent.Int64Var(&seed, "seed", 0, "random seed for --density")
	persistent.BoolVar(&color, "color", false, "color the cells")
	persistent.BoolVar(&autoRestart, "auto-restart", false, "reseed on extinction or stagnation")

	rootCmd.Flags().BoolVar(&graph, "graph", false, "plot the population history on exit")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "print frames only")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive view with pause, single step and speed control",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(tuiCmd, configCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}
