// Package discover locates the three input files of a population run
// inside a single directory: one OWL ontology document and two CSV files,
// the smaller holding category names and the larger holding the records.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for the directory layout contract.
var (
	ErrOntologyMissing = errors.New("no OWL ontology file found in directory")
	ErrCSVMissing      = errors.New("no CSV files found in directory")
	ErrCSVIncomplete   = errors.New("directory must contain both a categories and an instances CSV file")
)

// Inputs are the resolved paths of one population run.
type Inputs struct {
	Ontology   string // the ontology document to load
	Categories string // header CSV: one line of category names
	Instances  string // body CSV: one record per line
}

// Discover classifies the regular files directly under dir by extension,
// case-insensitively: .owl files are ontology candidates, .csv files are
// tabular candidates, everything else is ignored. No recursion.
//
// The two smallest CSV files by byte size are selected; the smaller of the
// pair is the categories file. With more than two CSV candidates the rest
// are ignored, with ties broken by lexical path order so the selection is
// deterministic. The first ontology candidate in lexical order wins.
func Discover(dir string) (Inputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Inputs{}, fmt.Errorf("read directory %s: %w", dir, err)
	}

	type candidate struct {
		path string
		size int64
	}
	var owl, csv []candidate

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return Inputs{}, fmt.Errorf("read directory %s: %w", dir, err)
		}
		c := candidate{path: filepath.Join(dir, entry.Name()), size: info.Size()}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".owl":
			owl = append(owl, c)
		case ".csv":
			csv = append(csv, c)
		}
	}

	if len(owl) == 0 {
		return Inputs{}, ErrOntologyMissing
	}
	switch len(csv) {
	case 0:
		return Inputs{}, ErrCSVMissing
	case 1:
		return Inputs{}, ErrCSVIncomplete
	}

	sort.Slice(owl, func(i, j int) bool { return owl[i].path < owl[j].path })
	sort.Slice(csv, func(i, j int) bool {
		if csv[i].size != csv[j].size {
			return csv[i].size < csv[j].size
		}
		return csv[i].path < csv[j].path
	})

	return Inputs{
		Ontology:   owl[0].path,
		Categories: csv[0].path,
		Instances:  csv[1].path,
	}, nil
}
