package wcbplot

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// FromH1D copies the in-range bins of h. Under- and overflows are dropped.
func FromH1D(name string, h *hbook.H1D) (*Hist, error) {
	bins := h.Binning.Bins
	edges := make([]float64, 0, len(bins)+1)
	contents := make([]float64, len(bins))
	errs := make([]float64, len(bins))
	for i, bin := range bins {
		edges = append(edges, bin.Range.Min)
		contents[i] = bin.SumW()
		errs[i] = math.Sqrt(bin.SumW2())
	}
	if len(bins) > 0 {
		edges = append(edges, bins[len(bins)-1].Range.Max)
	}
	return NewHist(name, edges, contents, errs)
}

// H1D converts h into a go-hep histogram suitable for hplot. Bin contents
// and uncertainties are preserved.
func (h *Hist) H1D() *hbook.H1D {
	out := hbook.NewH1DFromEdges(h.Edges)
	out.Annotation()["name"] = h.Name
	for i, c := range h.Contents {
		out.Fill(h.Center(i), c)
		out.Binning.Bins[i].Dist.Dist.SumW2 = h.Errors[i] * h.Errors[i]
	}
	return out
}

// S2D returns the bin centers, contents and uncertainties of h as a scatter
// with half-bin-width horizontal errors.
func (h *Hist) S2D() *hbook.S2D {
	pts := make([]hbook.Point2D, h.Len())
	for i, c := range h.Contents {
		hw := 0.5 * (h.Edges[i+1] - h.Edges[i])
		pts[i] = hbook.Point2D{
			X:    h.Center(i),
			Y:    c,
			ErrX: hbook.Range{Min: hw, Max: hw},
			ErrY: hbook.Range{Min: h.Errors[i], Max: h.Errors[i]},
		}
	}
	return hbook.NewS2D(pts...)
}
