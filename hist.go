package wcbplot

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrZeroIntegral is returned when normalizing a histogram whose
	// contents sum to zero.
	ErrZeroIntegral = errors.New("zero integral")
	// ErrBinning is returned when two histograms do not share a binning.
	ErrBinning = errors.New("binning mismatch")
	// ErrInvalidHist is returned by NewHist for malformed input.
	ErrInvalidHist = errors.New("invalid histogram")
)

// Hist is a one-dimensional histogram detached from any input file.
type Hist struct {
	Name     string
	Edges    []float64
	Contents []float64
	Errors   []float64
}

// NewHist validates and copies the given arrays. A nil errs slice defaults
// to Poisson uncertainties, sqrt(content).
func NewHist(name string, edges, contents, errs []float64) (*Hist, error) {
	if len(edges) < 2 {
		return nil, errors.Wrapf(ErrInvalidHist, "%s: need at least 2 edges, got %d", name, len(edges))
	}
	if len(contents) != len(edges)-1 {
		return nil, errors.Wrapf(ErrInvalidHist, "%s: %d edges for %d bins", name, len(edges), len(contents))
	}
	if errs != nil && len(errs) != len(contents) {
		return nil, errors.Wrapf(ErrInvalidHist, "%s: %d errors for %d bins", name, len(errs), len(contents))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, errors.Wrapf(ErrInvalidHist, "%s: edges not strictly increasing at %d", name, i)
		}
	}
	for i, c := range contents {
		if c < 0 || math.IsNaN(c) {
			return nil, errors.Wrapf(ErrInvalidHist, "%s: bin %d has content %v", name, i, c)
		}
	}

	h := &Hist{
		Name:     name,
		Edges:    append([]float64(nil), edges...),
		Contents: append([]float64(nil), contents...),
		Errors:   make([]float64, len(contents)),
	}
	if errs != nil {
		copy(h.Errors, errs)
	} else {
		for i, c := range contents {
			h.Errors[i] = math.Sqrt(c)
		}
	}
	return h, nil
}

// EmptyLike returns a zero-filled histogram with the binning of h.
func EmptyLike(name string, h *Hist) *Hist {
	return &Hist{
		Name:     name,
		Edges:    append([]float64(nil), h.Edges...),
		Contents: make([]float64, len(h.Contents)),
		Errors:   make([]float64, len(h.Errors)),
	}
}

func (h *Hist) Clone() *Hist {
	return &Hist{
		Name:     h.Name,
		Edges:    append([]float64(nil), h.Edges...),
		Contents: append([]float64(nil), h.Contents...),
		Errors:   append([]float64(nil), h.Errors...),
	}
}

func (h *Hist) Len() int { return len(h.Contents) }

// Integral is the sum of all bin contents.
func (h *Hist) Integral() float64 {
	sum := 0.
	for _, c := range h.Contents {
		sum += c
	}
	return sum
}

// Center returns the midpoint of bin i.
func (h *Hist) Center(i int) float64 {
	return 0.5 * (h.Edges[i] + h.Edges[i+1])
}

// Scale multiplies contents and errors by f.
func (h *Hist) Scale(f float64) {
	for i := range h.Contents {
		h.Contents[i] *= f
		h.Errors[i] *= f
	}
}

// Normalize scales h so that its integral equals target.
func Normalize(h *Hist, target float64) error {
	integral := h.Integral()
	if integral == 0 {
		return errors.Wrapf(ErrZeroIntegral, "normalize %s", h.Name)
	}
	h.Scale(target / integral)
	return nil
}

// SameBinning reports whether a and b have identical edges.
func SameBinning(a, b *Hist) bool {
	if len(a.Edges) != len(b.Edges) {
		return false
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			return false
		}
	}
	return true
}

// Accumulate adds h into total bin by bin. Uncertainties are combined in
// quadrature.
func Accumulate(total, h *Hist) error {
	if !SameBinning(total, h) {
		return errors.Wrapf(ErrBinning, "add %s (%d bins) to %s (%d bins)", h.Name, h.Len(), total.Name, total.Len())
	}
	for i := range total.Contents {
		total.Contents[i] += h.Contents[i]
		total.Errors[i] = math.Hypot(total.Errors[i], h.Errors[i])
	}
	return nil
}

// Ratio divides num by den bin by bin, treating the two as uncorrelated.
// A bin with a zero denominator is set to 0 with 0 uncertainty.
func Ratio(name string, num, den *Hist) (*Hist, error) {
	if !SameBinning(num, den) {
		return nil, errors.Wrapf(ErrBinning, "divide %s by %s", num.Name, den.Name)
	}
	r := EmptyLike(name, num)
	for i := range r.Contents {
		a, b := num.Contents[i], den.Contents[i]
		if b == 0 {
			continue
		}
		sa, sb := num.Errors[i], den.Errors[i]
		r.Contents[i] = a / b
		r.Errors[i] = math.Sqrt(math.Pow(sa/b, 2) + math.Pow(a*sb/(b*b), 2))
	}
	return r, nil
}

func (h *Hist) String() string {
	return fmt.Sprintf("%s[%d bins, integral=%g]", h.Name, h.Len(), h.Integral())
}
