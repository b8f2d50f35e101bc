package wcbplot

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// ErrNoInputs is returned when discovery finds no input files.
var ErrNoInputs = errors.New("no input files")

// Input is a discovered input file. Key is the slash-separated path relative
// to the input directory; category and process matching is done on it.
type Input struct {
	Path string
	Key  string
}

// Layout names the sub-directory structure of an input directory.
type Layout int

const (
	// LayoutFlat is one ROOT file per process in the input directory.
	LayoutFlat Layout = iota
	// LayoutRegions has CR/, SR/ and CRfscores/ sub-directories.
	LayoutRegions
	// LayoutSchemes has 4F/ and 5F/ sub-directories.
	LayoutSchemes
	// LayoutSchemeSamples has *4FS/ and *5FS/ sub-directories.
	LayoutSchemeSamples
)

// Patterns returns the glob patterns of a layout, in read order.
func (l Layout) Patterns() []string {
	switch l {
	case LayoutRegions:
		return []string{"CR/*.root", "SR/*.root", "CRfscores/*.root"}
	case LayoutSchemes:
		return []string{"4F/*.root", "5F/*.root"}
	case LayoutSchemeSamples:
		return []string{"*4FS/*.root", "*5FS/*.root"}
	default:
		return []string{"*.root"}
	}
}

// Discover lists the input files of dir for a layout.
func Discover(dir string, l Layout) ([]Input, error) {
	return DiscoverFS(os.DirFS(dir), dir, l)
}

// DiscoverFS is Discover over an arbitrary file system rooted at dir.
func DiscoverFS(fsys fs.FS, dir string, l Layout) ([]Input, error) {
	var inputs []Input
	for _, pattern := range l.Patterns() {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "glob %s in %s", pattern, dir)
		}
		sort.Strings(matches)
		for _, m := range matches {
			inputs = append(inputs, Input{
				Path: filepath.Join(dir, filepath.FromSlash(m)),
				Key:  m,
			})
		}
	}
	if len(inputs) == 0 {
		return nil, errors.Wrapf(ErrNoInputs, "%s (patterns %v)", dir, l.Patterns())
	}
	return inputs, nil
}
