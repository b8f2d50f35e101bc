package wcbplot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Weights are the per-node scale factors applied to classifier scores
// before picking the highest-scoring background node.
type Weights map[string]float64

// Weights0p6Wcb0p05LF is the weight set tuned for a Wcb score cut at 0.6
// and a ttLF score cut at 0.05.
func Weights0p6Wcb0p05LF() Weights {
	return Weights{
		"ttLF": 0.537,
		"ttcc": 0.09,
		"ttcj": 0.116,
		"ttbb": 0.071,
		"ttbj": 0.156,
	}
}

// Weights0p6Wcb0p1LF is the weight set tuned for a Wcb score cut at 0.6
// and a ttLF score cut at 0.1.
func Weights0p6Wcb0p1LF() Weights {
	return Weights{
		"ttLF": 0.63,
		"ttcc": 0.09,
		"ttcj": 0.12,
		"ttbb": 0.04,
		"ttbj": 0.10,
	}
}

// WeightSet looks up a weight set by name. Each call returns a new map.
func WeightSet(name string) (Weights, error) {
	switch name {
	case "", "0p6ttWcb_and_0p1ttLF":
		return Weights0p6Wcb0p1LF(), nil
	case "0p6ttWcb_and_0p05ttLF":
		return Weights0p6Wcb0p05LF(), nil
	}
	return nil, errors.Errorf("unknown weight set %q", name)
}

const (
	baseSelection = "score_tt_Wcb > 0.6 && score_ttLF < 0.1"
	srSelection   = "score_tt_Wcb > 0.85"
	crSelection   = "score_tt_Wcb < 0.85"
)

// Selection is the event selection and binning of one classifier category.
type Selection struct {
	Expr  string
	Edges []float64
}

func categoryEdges() map[string][]float64 {
	return map[string][]float64{
		"score_tt_Wcb": {0, 0.9, 1},
		"fscore_ttbb":  {0, 0.7, 1},
		"fscore_ttbj":  {0, 0.45, 1},
		"fscore_ttcc":  {0, 0.45, 1},
		"fscore_ttcj":  {0, 0.35, 1},
		"fscore_ttLF":  {0, 0.1, 1},
	}
}

// Selections builds the category selection table for a weight set. A
// background category takes the events whose weighted score for its node
// beats the weighted score of every other background node.
func Selections(w Weights) (map[string]Selection, error) {
	for _, n := range fscoreNodes {
		if _, ok := w[n]; !ok {
			return nil, errors.Errorf("weight set lacks %s", n)
		}
	}

	edges := categoryEdges()
	table := map[string]Selection{
		"score_tt_Wcb": {
			Expr:  baseSelection + " && " + srSelection,
			Edges: edges["score_tt_Wcb"],
		},
	}
	for _, n := range fscoreNodes {
		terms := []string{baseSelection, crSelection}
		for _, o := range fscoreNodes {
			if o == n {
				continue
			}
			terms = append(terms, fmt.Sprintf("%v * score_%s > %v * score_%s", w[n], n, w[o], o))
		}
		key := "fscore_" + n
		table[key] = Selection{
			Expr:  strings.Join(terms, " && "),
			Edges: edges[key],
		}
	}
	return table, nil
}

// CheckCoverage verifies that every category has a selection with a valid
// binning.
func CheckCoverage(table map[string]Selection, cats []Category) error {
	var missing []string
	seen := make(map[string]bool)
	for _, c := range cats {
		key := strings.TrimPrefix(c.Hist, "h_")
		if seen[key] {
			continue
		}
		seen[key] = true
		sel, ok := table[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if len(sel.Edges) < 2 {
			return errors.Errorf("selection %s: binning has %d edges", key, len(sel.Edges))
		}
		if _, err := NewHist(key, sel.Edges, make([]float64, len(sel.Edges)-1), nil); err != nil {
			return errors.Wrapf(err, "selection %s", key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Errorf("no selection for %s", strings.Join(missing, ", "))
	}
	return nil
}
