package wcbplot

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadVarList reads histogram names from the first column of a variable
// CSV. The Variable header row is skipped and names get the h_ prefix.
func ReadVarList(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read variable list")
		}
		v := strings.TrimSpace(rec[0])
		if v == "" || v == "Variable" {
			continue
		}
		names = append(names, "h_"+v)
	}
	return names, nil
}

// ReadVarListFile is ReadVarList on a file.
func ReadVarListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open variable list")
	}
	defer f.Close()
	return ReadVarList(f)
}
