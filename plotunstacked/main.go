// Command plotunstacked draws the Wcb analysis comparison plots from
// per-process ROOT histogram files.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/decibelcooper/wcbplot"
)

type app struct {
	configPath string
	labels     wcbplot.LabelFlags
	verbose    bool
	profileDir string

	inputDir  string
	outputDir string

	cfg      wcbplot.Config
	resolver *wcbplot.Resolver
	logger   *slog.Logger
	prof     interface{ Stop() }
}

func main() {
	a := &app{}
	if err := a.execute(newRootCmd(a)); err != nil {
		log.Fatal(err)
	}
}

// execute runs cmd and stops the profiler, if one was started, whether or
// not the command succeeded.
func (a *app) execute(cmd *cobra.Command) error {
	defer a.stopProfile()
	return cmd.Execute()
}

func (a *app) stopProfile() {
	if a.prof != nil {
		a.prof.Stop()
		a.prof = nil
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "plotunstacked",
		Short:         "Plot signal, background and purity comparisons from ROOT histogram files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML or YAML file overriding labels, luminosity and weight set")
	pf.Var(&a.labels, "label", "extra process label rule (repeatable)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log every histogram read")
	pf.StringVar(&a.profileDir, "profile", "", "write a CPU profile to this directory")

	root.AddCommand(
		newUnstackedCmd(a),
		newPurityCmd(a),
		newCompareFSCmd(a),
		newCompareFSScoreCmd(a),
		newSelectionsCmd(a),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if a.profileDir != "" {
		a.prof = profile.Start(profile.CPUProfile, profile.ProfilePath(a.profileDir), profile.Quiet)
	}

	cfg, err := wcbplot.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.resolver, err = cfg.Resolver(a.labels.Rules...)
	if err != nil {
		return errors.Wrap(err, "invalid process label table")
	}
	return nil
}

// addIODirs registers the input and output directory flags of a plotting
// command.
func (a *app) addIODirs(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.inputDir, "input-dir", "", "directory holding the ROOT files")
	cmd.Flags().StringVar(&a.outputDir, "output-dir", "", "directory the plots are written to")
	cmd.MarkFlagRequired("input-dir")
	cmd.MarkFlagRequired("output-dir")
}

func (a *app) inputs(l wcbplot.Layout) ([]wcbplot.Input, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create output directory")
	}
	return wcbplot.Discover(a.inputDir, l)
}

func (a *app) style(logY bool) wcbplot.Style {
	return wcbplot.Style{Lumi: a.cfg.Lumi, Status: a.cfg.Status, LogY: logY}
}

func (a *app) wrote(files []string) {
	for _, f := range files {
		a.logger.Info("saved", "file", f)
	}
}
