// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package accession implements functions
// to normalize and compare genome accessions.
package accession

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrFormat is returned when an accession
// does not have a version suffix.
var ErrFormat = errors.New("invalid accession format")

// accRegExp matches assembly accessions
// (e.g., "RS_GCF_005435135.1")
// at the start of a string.
var accRegExp = regexp.MustCompile(`^(GB_)?(RS_)?(GCF_|GCA_)?(\d{9})\.\d`)

// Canonical returns the canonical form of a genome accession:
// the letter 'G' followed by the nine digits of the accession,
// without database prefixes,
// version,
// or any other suffix.
// For example,
// "RS_GCF_005435135.1" is returned as "G005435135".
//
// If the string is not a recognized accession,
// it is returned without changes.
func Canonical(id string) string {
	m := accRegExp.FindStringSubmatch(id)
	if m == nil {
		return id
	}
	return "G" + m[4]
}

// SameVersion returns true if two accessions
// have the same version
// (the integer after the last dot).
func SameVersion(a, b string) (bool, error) {
	va, err := Version(a)
	if err != nil {
		return false, err
	}
	vb, err := Version(b)
	if err != nil {
		return false, err
	}
	return va == vb, nil
}

// Version returns the version of an accession
// (the integer after the last dot).
func Version(id string) (int, error) {
	i := strings.LastIndexByte(id, '.')
	if i < 0 {
		return 0, fmt.Errorf("%w: %q: version not found", ErrFormat, id)
	}
	v, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: invalid version: %v", ErrFormat, id, err)
	}
	return v, nil
}
