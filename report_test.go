package wcbplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUnstacked(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	src := memSource{
		"wcb.root":  {"h_x": mustHist(t, "h_x", edges, []float64{10, 20, 10})},
		"ttLF.root": {"h_x": mustHist(t, "h_x", edges, []float64{5, 5, 5})},
	}
	o, err := Unstacked(src, defaultResolver(t), inputsOf("wcb.root", "ttLF.root"), "h_x", "ttLF", 1, discard())
	require.NoError(t, err)

	third := 1. / 3
	if diff := cmp.Diff([]float64{0.25, 0.5, 0.25}, o.Signal.Contents, approx); diff != "" {
		t.Errorf("signal (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{third, third, third}, o.Background.Contents, approx); diff != "" {
		t.Errorf("process (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{third, third, third}, o.Backgrounds.Contents, approx); diff != "" {
		t.Errorf("sum of backgrounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.75, 1.5, 0.75}, o.Ratio.Contents, approx); diff != "" {
		t.Errorf("ratio (-want +got):\n%s", diff)
	}
	require.Equal(t, "tt+LF", o.Process)
	require.Equal(t, "unstacked_h_x_ttLF", o.Name())
}

func TestUnstackedBackgroundSum(t *testing.T) {
	edges := []float64{0, 1, 2}
	src := memSource{
		"in/h_ttWcb.root":             {"h_x": mustHist(t, "h_x", edges, []float64{1, 1})},
		"in/h_ttbar-powheg_ttLF.root": {"h_x": mustHist(t, "h_x", edges, []float64{4, 0})},
		"in/h_ttbb-withDPS.root":      {"h_x": mustHist(t, "h_x", edges, []float64{0, 2})},
		"in/h_mystery.root":           {"h_x": mustHist(t, "h_x", edges, []float64{1, 0})},
		"in/h_Data.root":              {"h_x": mustHist(t, "h_x", edges, []float64{100, 100})},
	}
	inputs := []Input{
		{Path: "in/h_Data.root", Key: "h_Data.root"},
		{Path: "in/h_ttWcb.root", Key: "h_ttWcb.root"},
		{Path: "in/h_ttbar-powheg_ttLF.root", Key: "h_ttbar-powheg_ttLF.root"},
		{Path: "in/h_ttbb-withDPS.root", Key: "h_ttbb-withDPS.root"},
		{Path: "in/h_mystery.root", Key: "h_mystery.root"},
	}
	o, err := Unstacked(src, defaultResolver(t), inputs, "h_x", "ttbb", 2, discard())
	require.NoError(t, err)

	// Each background enters normalized to 2: ttLF [2,0], ttbb [0,2],
	// mystery [2,0]; the sum [4,2] is normalized to 2 again.
	if diff := cmp.Diff([]float64{4. / 3, 2. / 3}, o.Backgrounds.Contents, approx); diff != "" {
		t.Errorf("sum of backgrounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 2}, o.Background.Contents, approx); diff != "" {
		t.Errorf("process (-want +got):\n%s", diff)
	}
	// Wcb is [1,1] over tt+bb [0,2]: the empty denominator bin gives 0.
	if diff := cmp.Diff([]float64{0, 0.5}, o.Ratio.Contents, approx); diff != "" {
		t.Errorf("ratio (-want +got):\n%s", diff)
	}
	require.Zero(t, o.Ratio.Errors[0])
	require.Equal(t, "unstacked_h_x_ttbb", o.Name())
}

func TestUnstackedErrors(t *testing.T) {
	edges := []float64{0, 1, 2}
	res := defaultResolver(t)

	src := memSource{
		"wcb.root":  {"h_x": mustHist(t, "h_x", edges, []float64{1, 1})},
		"ttLF.root": {"h_x": mustHist(t, "h_x", edges, []float64{0, 0})},
	}
	_, err := Unstacked(src, res, inputsOf("wcb.root", "ttLF.root"), "h_x", "ttLF", 1, discard())
	require.True(t, errors.Is(err, ErrZeroIntegral), "got %v", err)
	require.Contains(t, err.Error(), "ttLF.root")

	_, err = Unstacked(src, res, inputsOf("wcb.root"), "h_x", "ttLF", 1, discard())
	require.Error(t, err)

	_, err = Unstacked(src, res, inputsOf("wcb.root"), "h_y", "ttLF", 1, discard())
	require.True(t, errors.Is(err, ErrNoHist), "got %v", err)

	_, err = Unstacked(src, res, inputsOf("wcb.root"), "h_x", "tt+LF", 1, discard())
	require.Error(t, err)

	src["ttbb.root"] = map[string]*Hist{"h_x": mustHist(t, "h_x", []float64{0, 2}, []float64{1})}
	src["ttcc.root"] = map[string]*Hist{"h_x": mustHist(t, "h_x", edges, []float64{1, 1})}
	_, err = Unstacked(src, res, inputsOf("ttcc.root", "ttbb.root"), "h_x", "ttbb", 1, discard())
	require.True(t, errors.Is(err, ErrBinning), "got %v", err)
}

func TestUnstackedWithoutSignal(t *testing.T) {
	edges := []float64{0, 1}
	src := memSource{"ttLF.root": {"h_x": mustHist(t, "h_x", edges, []float64{3})}}
	o, err := Unstacked(src, defaultResolver(t), inputsOf("ttLF.root"), "h_x", "ttLF", 1, discard())
	require.NoError(t, err)
	require.Nil(t, o.Signal)
	require.Nil(t, o.Ratio)
	require.NotNil(t, o.Background)
}

func scoreFile(t *testing.T, integrals map[string]float64) map[string]*Hist {
	t.Helper()
	m := make(map[string]*Hist)
	for name, n := range integrals {
		m[name] = mustHist(t, name, []float64{0, 0.5, 1}, []float64{n / 2, n / 2})
	}
	return m
}

func TestPurity(t *testing.T) {
	all := func(n float64) map[string]float64 {
		m := make(map[string]float64)
		for _, c := range PurityCategories() {
			m[c.Hist] = n
		}
		return m
	}
	src := memSource{
		"h_ttbb-withDPS.root":      scoreFile(t, all(100)),
		"h_ttbar-powheg_ttLF.root": scoreFile(t, all(50)),
		"h_Data.root":              nil,
	}
	r, err := Purity(src, inputsOf("h_ttbb-withDPS.root", "h_ttbar-powheg_ttLF.root", "h_Data.root"), discard())
	require.NoError(t, err)

	require.Equal(t, "purity", r.Name)
	require.Equal(t, []string{"Wcb", "tt+LF", "tt+bb", "tt+bj", "tt+cc", "tt+cj"}, r.Labels)
	require.Len(t, r.Groups, 1)
	if diff := cmp.Diff([]float64{0, 1. / 3, 2. / 3, 0, 0, 0}, r.Groups[0].Values, approx); diff != "" {
		t.Errorf("purity (-want +got):\n%s", diff)
	}
}

func TestPurityMultiRegion(t *testing.T) {
	score := func(n float64) map[string]float64 {
		m := make(map[string]float64)
		for _, node := range scoreNodes {
			m[scoreHist(node)] = n
		}
		return m
	}
	fscore := score(10)
	for _, node := range fscoreNodes {
		fscore[fscoreHist(node)] = 10
	}
	src := memSource{
		"CR/h_ttWcb.root":        scoreFile(t, score(1)),
		"CR/h_ttbb.root":         scoreFile(t, score(3)),
		"SR/h_ttWcb.root":        scoreFile(t, score(8)),
		"SR/h_ttbb.root":         scoreFile(t, score(2)),
		"CRfscores/h_ttbb.root":  scoreFile(t, fscore),
		"CRfscores/h_ttWcb.root": scoreFile(t, fscore),
	}
	inputs := inputsOf("CR/h_ttWcb.root", "CR/h_ttbb.root", "SR/h_ttWcb.root", "SR/h_ttbb.root",
		"CRfscores/h_ttbb.root", "CRfscores/h_ttWcb.root")

	r, err := PurityMultiRegion(src, inputs, false, discard())
	require.NoError(t, err)
	require.Equal(t, "purity_CRSR", r.Name)
	require.Equal(t, []string{"CR", "CR-fscores", "SR"}, []string{r.Groups[0].Label, r.Groups[1].Label, r.Groups[2].Label})
	require.Equal(t, []string{"Wcb", "tt+LF", "tt+bb", "tt+bj", "tt+cc", "tt+cj"}, r.Labels)

	// Wcb in CR reads CR/ and CRfscores/: 1+10 of 1+3+10+10.
	if diff := cmp.Diff([]float64{11. / 24, 0, 0.75, 0, 0, 0}, r.Groups[0].Values, approx); diff != "" {
		t.Errorf("CR (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{11. / 24, 0, 0.5, 0, 0, 0}, r.Groups[1].Values, approx); diff != "" {
		t.Errorf("CR fscores (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.8, 0, 0.2, 0, 0, 0}, r.Groups[2].Values, approx); diff != "" {
		t.Errorf("SR (-want +got):\n%s", diff)
	}

	raw, err := PurityMultiRegion(src, inputs, true, discard())
	require.NoError(t, err)
	require.Equal(t, "raw_evt_number_CRSR", raw.Name)
	require.Equal(t, "Events", raw.YLabel)
	if diff := cmp.Diff([]float64{8, 0, 2, 0, 0, 0}, raw.Groups[2].Values, approx); diff != "" {
		t.Errorf("SR raw (-want +got):\n%s", diff)
	}
}

func TestCompareSchemes(t *testing.T) {
	hists := func(n float64) map[string]float64 {
		m := make(map[string]float64)
		for _, c := range SchemeCategories("ttbb") {
			m[c.Hist] = n
		}
		return m
	}
	src := memSource{
		"4F/h_ttbb.root": scoreFile(t, hists(30)),
		"4F/h_ttLF.root": scoreFile(t, hists(70)),
		"5F/h_ttbb.root": scoreFile(t, hists(20)),
		"5F/h_ttLF.root": scoreFile(t, hists(80)),
	}
	inputs := inputsOf("4F/h_ttbb.root", "4F/h_ttLF.root", "5F/h_ttbb.root", "5F/h_ttLF.root")

	r, err := CompareSchemes(src, inputs, "ttbb", false, discard())
	require.NoError(t, err)
	require.Equal(t, "purity_ttbb_4F5F", r.Name)
	require.Equal(t, "ttbb 4FS", r.Groups[0].Label)
	require.Len(t, r.Labels, 6)
	require.Equal(t, "Wcb", r.Labels[0])
	for i := range r.Labels {
		require.InDelta(t, 0.3, r.Groups[0].Values[i], 1e-12)
		require.InDelta(t, 0.2, r.Groups[1].Values[i], 1e-12)
		require.InDelta(t, 1.5, r.Ratio[i], 1e-12)
	}

	raw, err := CompareSchemes(src, inputs, "ttbb", true, discard())
	require.NoError(t, err)
	require.Equal(t, "raw_evt_number_ttbb_4F5F", raw.Name)
	require.InDelta(t, 30, raw.Groups[0].Values[0], 1e-12)

	_, err = CompareSchemes(src, inputs, "", false, discard())
	require.Error(t, err)
}

func TestCompareSchemesVsScore(t *testing.T) {
	edges := []float64{0, 0.5, 1}
	src := memSource{
		"ttbb_4FS/h_ttbb.root": {"h_score_tt_Wcb": mustHist(t, "a", edges, []float64{4, 2})},
		"ttbj_4FS/h_ttbj.root": {"h_score_tt_Wcb": mustHist(t, "b", edges, []float64{4, 0})},
		"ttbb_5FS/h_ttbb.root": {"h_score_tt_Wcb": mustHist(t, "c", edges, []float64{4, 0})},
		"ttLF_5FS/h_ttLF.root": nil,
	}
	inputs := inputsOf("ttbb_4FS/h_ttbb.root", "ttbj_4FS/h_ttbj.root", "ttbb_5FS/h_ttbb.root", "ttLF_5FS/h_ttLF.root")

	c, err := CompareSchemesVsScore(src, inputs, discard())
	require.NoError(t, err)
	require.Equal(t, "compare_4F5F_vs_score_ttWcb", c.Name)
	require.Equal(t, []float64{8, 2}, c.H4F.Contents)
	require.Equal(t, []float64{4, 0}, c.H5F.Contents)
	require.Equal(t, []float64{2, 0}, c.Ratio.Contents)
	require.Zero(t, c.Ratio.Errors[1])

	_, err = CompareSchemesVsScore(src, inputs[:2], discard())
	require.Error(t, err)
}

func TestReportsFromROOTFiles(t *testing.T) {
	dir := t.TempDir()
	edges := []float64{0, 0.5, 1}
	write := func(name string, contents []float64) {
		h := mustHist(t, "h_x", edges, contents)
		require.NoError(t, WriteROOT(filepath.Join(dir, name), h))
	}
	write("h_ttWcb.root", []float64{10, 30})
	write("h_ttbar-powheg_ttLF.root", []float64{6, 2})
	write("h_Data.root", []float64{50, 50})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0o644))

	inputs, err := Discover(dir, LayoutFlat)
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	o, err := Unstacked(ROOTSource{}, defaultResolver(t), inputs, "h_x", "ttLF", 1, discard())
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{0.25, 0.75}, o.Signal.Contents, approx); diff != "" {
		t.Errorf("signal (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.75, 0.25}, o.Backgrounds.Contents, approx); diff != "" {
		t.Errorf("sum of backgrounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1. / 3, 3}, o.Ratio.Contents, approx); diff != "" {
		t.Errorf("ratio (-want +got):\n%s", diff)
	}
}

func TestUnstackedSkipsLowercaseData(t *testing.T) {
	edges := []float64{0, 1, 2}
	src := memSource{
		"h_ttWcb.root": {"h_x": mustHist(t, "h_x", edges, []float64{1, 1})},
		"h_ttLF.root":  {"h_x": mustHist(t, "h_x", edges, []float64{1, 0})},
		"h_data.root":  {"h_x": mustHist(t, "h_x", edges, []float64{0, 1})},
	}
	o, err := Unstacked(src, defaultResolver(t), inputsOf("h_ttWcb.root", "h_ttLF.root", "h_data.root"), "h_x", "ttLF", 1, discard())
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1, 0}, o.Backgrounds.Contents, approx); diff != "" {
		t.Errorf("sum of backgrounds (-want +got):\n%s", diff)
	}
}

func TestUnstackedNormalization(t *testing.T) {
	edges := []float64{0, 1, 2}
	src := memSource{
		"wcb.root":  {"h_x": mustHist(t, "h_x", edges, []float64{1, 1})},
		"ttLF.root": {"h_x": mustHist(t, "h_x", edges, []float64{1, 3})},
	}
	inputs := inputsOf("wcb.root", "ttLF.root")
	for _, norm := range []float64{0, -1} {
		_, err := Unstacked(src, defaultResolver(t), inputs, "h_x", "ttLF", norm, discard())
		require.Error(t, err, "norm %g", norm)
		require.Contains(t, err.Error(), "normalization must be positive")
	}
}

func TestAmbiguousInputs(t *testing.T) {
	edges := []float64{0, 0.5, 1}
	hists := make(map[string]float64)
	for _, c := range MultiRegionCategories() {
		hists[c.Hist] = 10
	}
	for _, c := range SchemeCategories("ttbb") {
		hists[c.Hist] = 10
	}
	src := memSource{
		"CR/h_ttbb_SR.root":         scoreFile(t, hists),
		"4F/h_ttbb_5F.root":         scoreFile(t, hists),
		"ttbb_4FS/h_ttbb_5F.root":   {"h_score_tt_Wcb": mustHist(t, "a", edges, []float64{1, 2})},
		"ttbb_5FS/h_ttbb.root":      {"h_score_tt_Wcb": mustHist(t, "b", edges, []float64{1, 2})},
		"CR/h_ttWcb.root":           scoreFile(t, hists),
		"4F/h_ttWcb.root":           scoreFile(t, hists),
		"ttbb_4FS/h_ttbb_only.root": {"h_score_tt_Wcb": mustHist(t, "c", edges, []float64{1, 2})},
	}

	_, err := PurityMultiRegion(src, inputsOf("CR/h_ttWcb.root", "CR/h_ttbb_SR.root"), false, discard())
	require.True(t, errors.Is(err, ErrAmbiguousInput), "got %v", err)
	require.Contains(t, err.Error(), "CR/h_ttbb_SR.root")

	_, err = CompareSchemes(src, inputsOf("4F/h_ttWcb.root", "4F/h_ttbb_5F.root"), "ttbb", true, discard())
	require.True(t, errors.Is(err, ErrAmbiguousInput), "got %v", err)
	require.Contains(t, err.Error(), "4F/h_ttbb_5F.root")

	_, err = CompareSchemesVsScore(src, inputsOf("ttbb_4FS/h_ttbb_5F.root", "ttbb_5FS/h_ttbb.root"), discard())
	require.True(t, errors.Is(err, ErrAmbiguousInput), "got %v", err)

	c, err := CompareSchemesVsScore(src, inputsOf("ttbb_4FS/h_ttbb_only.root", "ttbb_5FS/h_ttbb.root"), discard())
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, c.H4F.Contents)
}
