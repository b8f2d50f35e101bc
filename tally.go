package wcbplot

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyCategory is returned by Tally.Purity when no events reached the
// category.
var ErrEmptyCategory = errors.New("empty category")

// ErrAmbiguousInput is returned when an input file key names more than one
// region or flavor scheme.
var ErrAmbiguousInput = errors.New("ambiguous input")

// CheckExclusive verifies that no input key contains more than one of tags.
func CheckExclusive(inputs []Input, tags ...string) error {
	for _, in := range inputs {
		var hits []string
		for _, tag := range tags {
			if strings.Contains(in.Key, tag) {
				hits = append(hits, tag)
			}
		}
		if len(hits) > 1 {
			return errors.Wrapf(ErrAmbiguousInput, "%s matches %s", in.Key, strings.Join(hits, " and "))
		}
	}
	return nil
}

// Tally counts the events of a category that belong to its target process
// (Numerator) against all events in the category (Denominator).
type Tally struct {
	Numerator   float64
	Denominator float64
}

// Add counts n events, attributing them to the target when matched.
func (t *Tally) Add(n float64, matched bool) {
	if matched {
		t.Numerator += n
	}
	t.Denominator += n
}

func (t Tally) Purity() (float64, error) {
	if t.Denominator <= 0 {
		return 0, ErrEmptyCategory
	}
	return t.Numerator / t.Denominator, nil
}

// PurityOrZero is Purity with empty categories reported as 0, so that a bar
// chart stays drawable.
func (t Tally) PurityOrZero() float64 {
	p, err := t.Purity()
	if err != nil {
		return 0
	}
	return p
}

// Category selects the input files that populate one histogram and the
// subset of them that counts as the target process.
type Category struct {
	// Key identifies the category in reports.
	Key string
	// Hist is the histogram read from each member file.
	Hist string
	// Target must appear in a file key for its events to count towards
	// the numerator.
	Target string
	// Require lists substrings that must all appear in a member file key.
	Require []string
	// Exclude lists substrings that must not appear in a member file key.
	Exclude []string
}

// Member reports whether the file identified by key feeds the category.
func (c Category) Member(key string) bool {
	for _, s := range c.Require {
		if !strings.Contains(key, s) {
			return false
		}
	}
	for _, s := range c.Exclude {
		if strings.Contains(key, s) {
			return false
		}
	}
	return true
}

// Matches reports whether the file identified by key is the category's
// target process.
func (c Category) Matches(key string) bool {
	return c.Target != "" && strings.Contains(key, c.Target)
}

// Tallies holds one tally per category, in category order.
type Tallies struct {
	Categories []Category
	Counts     []Tally
}

// Get returns the tally for a category key.
func (ts *Tallies) Get(key string) (Tally, bool) {
	for i, c := range ts.Categories {
		if c.Key == key {
			return ts.Counts[i], true
		}
	}
	return Tally{}, false
}

// Select returns the tallies whose keys satisfy keep, in order.
func (ts *Tallies) Select(keep func(Category) bool) *Tallies {
	out := &Tallies{}
	for i, c := range ts.Categories {
		if keep(c) {
			out.Categories = append(out.Categories, c)
			out.Counts = append(out.Counts, ts.Counts[i])
		}
	}
	return out
}

// Values returns per-category purities, or raw numerators when raw is set.
// Empty categories are logged and reported as 0.
func (ts *Tallies) Values(raw bool, logger *slog.Logger) []float64 {
	vs := make([]float64, len(ts.Counts))
	for i, t := range ts.Counts {
		if raw {
			vs[i] = t.Numerator
			continue
		}
		p, err := t.Purity()
		if err != nil {
			logger.Warn("empty category", "category", ts.Categories[i].Key)
		}
		vs[i] = p
	}
	return vs
}

// Labels returns the display labels of the categories.
func (ts *Tallies) Labels() []string {
	labels := make([]string, len(ts.Categories))
	for i, c := range ts.Categories {
		labels[i] = CategoryLabel(c.Key)
	}
	return labels
}

// TallyFiles reads each category's histogram from every member input and
// adds its integral to the category tally. Data files are skipped.
func TallyFiles(src Source, inputs []Input, cats []Category, logger *slog.Logger) (*Tallies, error) {
	ts := &Tallies{
		Categories: append([]Category(nil), cats...),
		Counts:     make([]Tally, len(cats)),
	}
	for _, in := range inputs {
		if IsData(in.Key) {
			logger.Debug("skipping data", "file", in.Key)
			continue
		}
		logger.Info("processing file", "file", in.Key)

		var (
			idx   []int
			names []string
		)
		for i, c := range cats {
			if !c.Member(in.Key) {
				continue
			}
			idx = append(idx, i)
			names = append(names, c.Hist)
		}
		if len(idx) == 0 {
			continue
		}

		hists, err := src.ReadAll(in.Path, names...)
		if err != nil {
			return nil, err
		}
		for j, i := range idx {
			n := hists[j].Integral()
			matched := cats[i].Matches(in.Key)
			logger.Debug("tally", "category", cats[i].Key, "file", in.Key, "integral", n, "target", matched)
			ts.Counts[i].Add(n, matched)
		}
	}
	return ts, nil
}

// SafeRatios divides a by b element-wise, giving 0 where b is not positive.
func SafeRatios(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if b[i] > 0 {
			out[i] = a[i] / b[i]
		}
	}
	return out
}
