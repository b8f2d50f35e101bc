package wcbplot

import (
	"strings"
)

// Classifier output nodes, signal first.
var (
	scoreNodes  = []string{"tt_Wcb", "ttLF", "ttbb", "ttbj", "ttcc", "ttcj"}
	fscoreNodes = []string{"ttLF", "ttbb", "ttbj", "ttcc", "ttcj"}
)

const (
	RegionCR = "CR"
	RegionSR = "SR"
	Scheme4F = "4F"
	Scheme5F = "5F"

	fscoreTag = "fscore"
)

// nodeTarget is the file-name token of the process a classifier node
// selects.
func nodeTarget(node string) string {
	if node == "tt_Wcb" {
		return "ttWcb"
	}
	return node
}

func scoreHist(node string) string  { return "h_score_" + node }
func fscoreHist(node string) string { return "h_fscore_" + node }

// PurityCategories are the classifier categories over a single region.
func PurityCategories() []Category {
	cats := make([]Category, 0, len(scoreNodes))
	for _, n := range scoreNodes {
		cats = append(cats, Category{
			Key:    scoreHist(n),
			Hist:   scoreHist(n),
			Target: nodeTarget(n),
		})
	}
	return cats
}

// MultiRegionCategories split the score categories between control and
// signal regions, and add the control-region fscore categories. Inputs are
// expected under CR/, SR/ and CRfscores/.
func MultiRegionCategories() []Category {
	var cats []Category
	for _, n := range scoreNodes {
		for _, region := range []string{RegionCR, RegionSR} {
			c := Category{
				Key:     scoreHist(n) + "_" + region,
				Hist:    scoreHist(n),
				Target:  nodeTarget(n),
				Require: []string{region},
			}
			if n != "tt_Wcb" {
				c.Exclude = []string{fscoreTag}
			}
			cats = append(cats, c)
		}
	}
	for _, n := range fscoreNodes {
		cats = append(cats, Category{
			Key:     fscoreHist(n) + "_" + RegionCR,
			Hist:    fscoreHist(n),
			Target:  nodeTarget(n),
			Require: []string{RegionCR, fscoreTag},
		})
	}
	return cats
}

// SchemeCategories are the signal score and background fscore categories in
// the 4F and 5F samples. All of them count target as the numerator.
func SchemeCategories(target string) []Category {
	var cats []Category
	hists := []string{scoreHist("tt_Wcb")}
	for _, n := range fscoreNodes {
		hists = append(hists, fscoreHist(n))
	}
	for _, h := range hists {
		for _, s := range []string{Scheme4F, Scheme5F} {
			cats = append(cats, Category{
				Key:     h + "_" + s,
				Hist:    h,
				Target:  target,
				Require: []string{s},
			})
		}
	}
	return cats
}

// HasSuffix selects categories by key suffix.
func HasSuffix(suffix string) func(Category) bool {
	return func(c Category) bool { return strings.HasSuffix(c.Key, suffix) }
}

var labelReplacer = strings.NewReplacer(
	"tt_Wcb", "Wcb",
	"ttLF", "tt+LF",
	"ttbb", "tt+bb",
	"ttbj", "tt+bj",
	"ttcc", "tt+cc",
	"ttcj", "tt+cj",
)

// CategoryLabel turns a category key such as h_fscore_ttbb_CR into an axis
// label such as tt+bb.
func CategoryLabel(key string) string {
	s := strings.TrimPrefix(key, "h_score_")
	s = strings.TrimPrefix(s, "h_fscore_")
	for _, suffix := range []string{RegionCR, RegionSR, Scheme4F, Scheme5F} {
		s = strings.TrimSuffix(s, "_"+suffix)
	}
	return labelReplacer.Replace(s)
}
