package wcbplot

import (
	"github.com/pkg/errors"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// ErrNoHist is returned when a file lacks a requested 1-dim histogram.
var ErrNoHist = errors.New("histogram not found")

// Source reads named histograms out of input files.
type Source interface {
	Read(path, name string) (*Hist, error)
	ReadAll(path string, names ...string) ([]*Hist, error)
}

// ROOTSource reads TH1 objects from ROOT files. Each call opens the file,
// copies the requested histograms out and closes it again.
type ROOTSource struct{}

func (s ROOTSource) Read(path, name string) (*Hist, error) {
	hs, err := s.ReadAll(path, name)
	if err != nil {
		return nil, err
	}
	return hs[0], nil
}

func (ROOTSource) ReadAll(path string, names ...string) ([]*Hist, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open file %s", path)
	}
	defer f.Close()

	hists := make([]*Hist, len(names))
	for i, name := range names {
		h, err := readH1(f, name)
		if err != nil {
			return nil, errors.Wrapf(err, "file %s", path)
		}
		hists[i] = h
	}
	return hists, nil
}

func readH1(f *riofs.File, name string) (*Hist, error) {
	obj, err := f.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrNoHist, "%q: %v", name, err)
	}
	th1, ok := obj.(rhist.H1)
	if !ok {
		return nil, errors.Wrapf(ErrNoHist, "%q is a %s", name, obj.Class())
	}
	return FromH1D(name, rootcnv.H1D(th1))
}

// WriteROOT stores hists as TH1D objects keyed by their names.
func WriteROOT(path string, hists ...*Hist) error {
	f, err := groot.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create file %s", path)
	}

	for _, h := range hists {
		if err := f.Put(h.Name, rhist.NewH1DFrom(h.H1D())); err != nil {
			f.Close()
			return errors.Wrapf(err, "could not write %s to %s", h.Name, path)
		}
	}
	return errors.Wrapf(f.Close(), "could not close file %s", path)
}
