package wcbplot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelections(t *testing.T) {
	table, err := Selections(Weights0p6Wcb0p1LF())
	require.NoError(t, err)
	require.Len(t, table, 6)

	wcb := table["score_tt_Wcb"]
	require.Equal(t, "score_tt_Wcb > 0.6 && score_ttLF < 0.1 && score_tt_Wcb > 0.85", wcb.Expr)
	require.Equal(t, []float64{0, 0.9, 1}, wcb.Edges)

	bb := table["fscore_ttbb"]
	require.Equal(t, []float64{0, 0.7, 1}, bb.Edges)
	require.True(t, strings.HasPrefix(bb.Expr, "score_tt_Wcb > 0.6 && score_ttLF < 0.1 && score_tt_Wcb < 0.85 && "))
	require.Contains(t, bb.Expr, "0.04 * score_ttbb > 0.1 * score_ttbj")
	require.Contains(t, bb.Expr, "0.04 * score_ttbb > 0.63 * score_ttLF")
	require.NotContains(t, bb.Expr, "score_ttbb > 0.04 * score_ttbb")
	require.Equal(t, 6, strings.Count(bb.Expr, "&&"))

	lf := table["fscore_ttLF"]
	require.Contains(t, lf.Expr, "0.63 * score_ttLF > 0.12 * score_ttcj")
}

func TestSelectionsWeightSet(t *testing.T) {
	w, err := WeightSet("0p6ttWcb_and_0p05ttLF")
	require.NoError(t, err)
	table, err := Selections(w)
	require.NoError(t, err)
	require.Contains(t, table["fscore_ttbj"].Expr, "0.156 * score_ttbj > 0.537 * score_ttLF")

	_, err = WeightSet("nope")
	require.Error(t, err)

	_, err = Selections(Weights{"ttLF": 1})
	require.Error(t, err)
}

func TestSelectionsAreCopies(t *testing.T) {
	a, err := Selections(Weights0p6Wcb0p1LF())
	require.NoError(t, err)
	a["fscore_ttbb"].Edges[1] = 0.5

	b, err := Selections(Weights0p6Wcb0p1LF())
	require.NoError(t, err)
	require.Equal(t, 0.7, b["fscore_ttbb"].Edges[1])
}

func TestWeightSetIsCopy(t *testing.T) {
	w, err := WeightSet("")
	require.NoError(t, err)
	w["ttbb"] = 99
	delete(w, "ttLF")

	again, err := WeightSet("0p6ttWcb_and_0p1ttLF")
	require.NoError(t, err)
	require.Equal(t, Weights0p6Wcb0p1LF(), again)
	require.Equal(t, 0.04, again["ttbb"])
}

func TestCheckCoverage(t *testing.T) {
	table, err := Selections(Weights0p6Wcb0p1LF())
	require.NoError(t, err)

	require.NoError(t, CheckCoverage(table, SchemeCategories("ttbb")))

	err = CheckCoverage(table, PurityCategories())
	require.Error(t, err)
	require.Contains(t, err.Error(), "score_ttLF")

	table["fscore_ttcc"] = Selection{Expr: "1", Edges: []float64{0, 1, 0.5}}
	require.Error(t, CheckCoverage(table, SchemeCategories("ttbb")))

	table["fscore_ttcc"] = Selection{Expr: "1", Edges: []float64{0}}
	require.Error(t, CheckCoverage(table, SchemeCategories("ttbb")))
}
