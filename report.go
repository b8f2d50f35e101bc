package wcbplot

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// Overlay is the content of an unstacked comparison: the signal, one
// background process and the sum of all backgrounds, each normalized, plus
// the signal over process ratio.
type Overlay struct {
	HistName string
	// Process is the display label of the compared background.
	Process     string
	Signal      *Hist
	Background  *Hist
	Backgrounds *Hist
	// Ratio is Signal/Background, nil unless both were found.
	Ratio *Hist
}

// Name is the base name of the output files.
func (o *Overlay) Name() string {
	return "unstacked_" + o.HistName + "_" + strings.ReplaceAll(o.Process, "+", "")
}

// Unstacked reads histName from every input and builds an Overlay. process
// is a token of the resolver table, e.g. ttLF. Every histogram is normalized
// to norm; inputs that are neither signal nor data enter the background
// sum, which is normalized to norm as well. norm must be positive.
func Unstacked(src Source, res *Resolver, inputs []Input, histName, process string, norm float64, logger *slog.Logger) (*Overlay, error) {
	if !(norm > 0) {
		return nil, errors.Errorf("normalization must be positive, got %g", norm)
	}
	label, err := res.Beautify(process)
	if err != nil {
		return nil, err
	}
	o := &Overlay{HistName: histName, Process: label}

	for _, in := range inputs {
		proc, ok := res.Resolve(in.Key)
		data := IsData(in.Key)
		if !ok && !data {
			logger.Warn("unrecognized process, only added to the background sum", "file", in.Key, "name", proc)
		} else {
			logger.Info("process", "file", in.Key, "label", proc)
		}

		h, err := src.Read(in.Path, histName)
		if err != nil {
			return nil, err
		}
		if err := Normalize(h, norm); err != nil {
			return nil, errors.Wrapf(err, "file %s", in.Path)
		}

		switch {
		case ok && proc == SignalLabel:
			if o.Signal != nil {
				logger.Warn("signal found twice, keeping the last", "file", in.Key)
			}
			o.Signal = h
		case ok && proc == label:
			if o.Background != nil {
				logger.Warn("process found twice, keeping the last", "file", in.Key, "label", label)
			}
			o.Background = h
		}

		if (ok && proc == SignalLabel) || data {
			continue
		}
		if o.Backgrounds == nil {
			o.Backgrounds = EmptyLike("sum_of_backgrounds", h)
		}
		if err := Accumulate(o.Backgrounds, h); err != nil {
			return nil, errors.Wrapf(err, "file %s", in.Path)
		}
	}

	if o.Backgrounds == nil {
		return nil, errors.Errorf("%s: no background inputs", histName)
	}
	if err := Normalize(o.Backgrounds, norm); err != nil {
		return nil, err
	}

	if o.Signal != nil && o.Background != nil {
		o.Ratio, err = Ratio("ratio", o.Signal, o.Background)
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Bars is one series of a bar chart.
type Bars struct {
	Label  string
	Values []float64
}

// BarReport is a per-category bar chart, optionally with a ratio panel.
type BarReport struct {
	Name   string
	YLabel string
	Labels []string
	Groups []Bars
	// Raw marks event counts instead of purities.
	Raw bool
	// Ratio, when set, is drawn in a lower panel under RatioLabel.
	Ratio      []float64
	RatioLabel string
}

// Purity computes the purity of each classifier category.
func Purity(src Source, inputs []Input, logger *slog.Logger) (*BarReport, error) {
	ts, err := TallyFiles(src, inputs, PurityCategories(), logger)
	if err != nil {
		return nil, err
	}
	return &BarReport{
		Name:   "purity",
		YLabel: "Purity",
		Labels: ts.Labels(),
		Groups: []Bars{{Label: "Purity", Values: ts.Values(false, logger)}},
	}, nil
}

// PurityMultiRegion computes category purities in the control region, the
// control region with fscore categories and the signal region. With raw set
// the target event counts are reported instead.
func PurityMultiRegion(src Source, inputs []Input, raw bool, logger *slog.Logger) (*BarReport, error) {
	if err := CheckExclusive(inputs, RegionCR, RegionSR); err != nil {
		return nil, err
	}
	ts, err := TallyFiles(src, inputs, MultiRegionCategories(), logger)
	if err != nil {
		return nil, err
	}

	cr := ts.Select(func(c Category) bool {
		return strings.HasSuffix(c.Key, "_"+RegionCR) && !strings.Contains(c.Key, fscoreTag)
	})
	fs := ts.Select(func(c Category) bool {
		return strings.Contains(c.Key, fscoreTag) || c.Key == scoreHist("tt_Wcb")+"_"+RegionCR
	})
	sr := ts.Select(HasSuffix("_" + RegionSR))

	r := &BarReport{
		Name:   "purity_CRSR",
		YLabel: "Purity",
		Labels: cr.Labels(),
		Groups: []Bars{
			{Label: "CR", Values: cr.Values(raw, logger)},
			{Label: "CR-fscores", Values: fs.Values(raw, logger)},
			{Label: "SR", Values: sr.Values(raw, logger)},
		},
		Raw: raw,
	}
	if raw {
		r.Name = "raw_evt_number_CRSR"
		r.YLabel = "Events"
	}
	return r, nil
}

// CompareSchemes compares, per category, the share (or with raw the
// number) of process events between the 4F and 5F samples.
func CompareSchemes(src Source, inputs []Input, process string, raw bool, logger *slog.Logger) (*BarReport, error) {
	if process == "" {
		return nil, errors.New("no process selected for the 4F/5F comparison")
	}
	if err := CheckExclusive(inputs, Scheme4F, Scheme5F); err != nil {
		return nil, err
	}
	ts, err := TallyFiles(src, inputs, SchemeCategories(process), logger)
	if err != nil {
		return nil, err
	}

	f4 := ts.Select(HasSuffix("_" + Scheme4F))
	f5 := ts.Select(HasSuffix("_" + Scheme5F))
	v4, v5 := f4.Values(raw, logger), f5.Values(raw, logger)

	r := &BarReport{
		Name:   "purity_" + process + "_4F5F",
		YLabel: "Purity",
		Labels: f4.Labels(),
		Groups: []Bars{
			{Label: process + " 4FS", Values: v4},
			{Label: process + " 5FS", Values: v5},
		},
		Raw:        raw,
		Ratio:      SafeRatios(v4, v5),
		RatioLabel: "4F/5F",
	}
	if raw {
		r.Name = "raw_evt_number_" + process + "_4F5F"
		r.YLabel = "Events"
	}
	return r, nil
}

// ScoreComparison holds the summed tt+bb and tt+bj Wcb score distributions
// of the 4FS and 5FS samples.
type ScoreComparison struct {
	Name  string
	H4F   *Hist
	H5F   *Hist
	Ratio *Hist
}

// CompareSchemesVsScore sums the Wcb score histogram of the tt+bb and tt+bj
// inputs per flavor scheme and divides 4FS by 5FS.
func CompareSchemesVsScore(src Source, inputs []Input, logger *slog.Logger) (*ScoreComparison, error) {
	const histName = "h_score_tt_Wcb"
	var sums [2]*Hist
	schemes := [2]string{Scheme4F, Scheme5F}
	if err := CheckExclusive(inputs, schemes[:]...); err != nil {
		return nil, err
	}

	for _, in := range inputs {
		if !strings.Contains(in.Key, "bb") && !strings.Contains(in.Key, "bj") {
			continue
		}
		for i, s := range schemes {
			if !strings.Contains(in.Key, s) {
				continue
			}
			logger.Info("processing file", "file", in.Key, "scheme", s)

			h, err := src.Read(in.Path, histName)
			if err != nil {
				return nil, err
			}
			if sums[i] == nil {
				sums[i] = EmptyLike(histName+"_"+s, h)
			}
			if err := Accumulate(sums[i], h); err != nil {
				return nil, errors.Wrapf(err, "file %s", in.Path)
			}
		}
	}
	for i, s := range schemes {
		if sums[i] == nil {
			return nil, errors.Errorf("no tt+bb or tt+bj inputs in the %sS samples", s)
		}
	}

	ratio, err := Ratio("ratio", sums[0], sums[1])
	if err != nil {
		return nil, err
	}
	return &ScoreComparison{
		Name:  "compare_4F5F_vs_score_ttWcb",
		H4F:   sums[0],
		H5F:   sums[1],
		Ratio: ratio,
	}, nil
}
