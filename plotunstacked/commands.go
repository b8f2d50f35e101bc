package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/decibelcooper/wcbplot"
)

func newUnstackedCmd(a *app) *cobra.Command {
	var (
		histName string
		csvPath  string
		process  string
		norm     float64
		logY     bool
		dump     bool
	)
	cmd := &cobra.Command{
		Use:   "unstacked",
		Short: "Overlay Wcb, one background and the sum of backgrounds, with a ratio panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if histName == "" && csvPath == "" {
				return errors.New("one of --hist-name or --input-csv is required")
			}
			if !(norm > 0) {
				return errors.Errorf("--normalization must be positive, got %g", norm)
			}
			hists := []string{histName}
			if histName == "" {
				var err error
				if hists, err = wcbplot.ReadVarListFile(csvPath); err != nil {
					return err
				}
			}

			inputs, err := a.inputs(wcbplot.LayoutFlat)
			if err != nil {
				return err
			}
			src := wcbplot.ROOTSource{}
			for _, name := range hists {
				o, err := wcbplot.Unstacked(src, a.resolver, inputs, name, process, norm, a.logger)
				if err != nil {
					return err
				}
				files, err := wcbplot.RenderOverlay(o, a.outputDir, a.style(logY))
				if err != nil {
					return err
				}
				a.wrote(files)

				if dump {
					if err := dumpOverlay(o, a.outputDir); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	a.addIODirs(cmd)
	f := cmd.Flags()
	f.StringVar(&histName, "hist-name", "", "histogram to plot")
	f.StringVar(&csvPath, "input-csv", "", "CSV listing the variables to plot")
	f.StringVar(&process, "process", "ttLF", "background process compared with Wcb")
	f.Float64Var(&norm, "normalization", 1, "integral each histogram is normalized to")
	f.BoolVar(&logY, "log", false, "logarithmic y axis")
	f.BoolVar(&dump, "dump", false, "also write the plotted histograms to a ROOT file")
	return cmd
}

func dumpOverlay(o *wcbplot.Overlay, dir string) error {
	var hists []*wcbplot.Hist
	for _, h := range []*wcbplot.Hist{o.Signal, o.Background, o.Backgrounds, o.Ratio} {
		if h == nil {
			continue
		}
		h = h.Clone()
		h.Name = fmt.Sprintf("%s_%s", o.HistName, h.Name)
		hists = append(hists, h)
	}
	return wcbplot.WriteROOT(filepath.Join(dir, o.Name()+".root"), hists...)
}

func newPurityCmd(a *app) *cobra.Command {
	var multiRegion, raw bool
	cmd := &cobra.Command{
		Use:   "purity",
		Short: "Plot the target-process fraction of each classifier category",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := wcbplot.LayoutFlat
			if multiRegion {
				layout = wcbplot.LayoutRegions
			}
			inputs, err := a.inputs(layout)
			if err != nil {
				return err
			}

			var r *wcbplot.BarReport
			if multiRegion {
				r, err = wcbplot.PurityMultiRegion(wcbplot.ROOTSource{}, inputs, raw, a.logger)
			} else {
				r, err = wcbplot.Purity(wcbplot.ROOTSource{}, inputs, a.logger)
			}
			if err != nil {
				return err
			}
			files, err := wcbplot.RenderBars(r, a.outputDir, a.style(false))
			if err != nil {
				return err
			}
			a.wrote(files)
			return nil
		},
	}
	a.addIODirs(cmd)
	cmd.Flags().BoolVar(&multiRegion, "multi-region", false, "split categories between CR, CR fscores and SR")
	cmd.Flags().BoolVar(&raw, "raw-evt-number", false, "plot target event counts instead of purities (with --multi-region)")
	return cmd
}

func newCompareFSCmd(a *app) *cobra.Command {
	var (
		process string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "compare-fs",
		Short: "Compare a process between the 4F and 5F samples in every classifier category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkSelections(wcbplot.SchemeCategories(process)); err != nil {
				return err
			}
			inputs, err := a.inputs(wcbplot.LayoutSchemes)
			if err != nil {
				return err
			}
			r, err := wcbplot.CompareSchemes(wcbplot.ROOTSource{}, inputs, process, raw, a.logger)
			if err != nil {
				return err
			}
			files, err := wcbplot.RenderBars(r, a.outputDir, a.style(false))
			if err != nil {
				return err
			}
			a.wrote(files)
			return nil
		},
	}
	a.addIODirs(cmd)
	cmd.Flags().StringVar(&process, "process", "", "process token counted in each category, e.g. ttbb")
	cmd.Flags().BoolVar(&raw, "raw-evt-number", false, "plot event counts instead of purities")
	cmd.MarkFlagRequired("process")
	return cmd
}

func newCompareFSScoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-fs-score",
		Short: "Compare the tt+bb and tt+bj Wcb score between the 4FS and 5FS samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.inputs(wcbplot.LayoutSchemeSamples)
			if err != nil {
				return err
			}
			c, err := wcbplot.CompareSchemesVsScore(wcbplot.ROOTSource{}, inputs, a.logger)
			if err != nil {
				return err
			}
			files, err := wcbplot.RenderScoreComparison(c, a.outputDir, a.style(false))
			if err != nil {
				return err
			}
			a.wrote(files)
			return nil
		},
	}
	a.addIODirs(cmd)
	return cmd
}

func newSelectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selections",
		Short: "Print the category selections and binnings of the configured weight set",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.selections()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(table))
			for k := range table {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintf(out, "%s\n  binning: %v\n  selection: %s\n", k, table[k].Edges, table[k].Expr)
			}
			return nil
		},
	}
}

func (a *app) selections() (map[string]wcbplot.Selection, error) {
	w, err := wcbplot.WeightSet(a.cfg.WeightSet)
	if err != nil {
		return nil, err
	}
	return wcbplot.Selections(w)
}

func (a *app) checkSelections(cats []wcbplot.Category) error {
	table, err := a.selections()
	if err != nil {
		return err
	}
	return wcbplot.CheckCoverage(table, cats)
}
