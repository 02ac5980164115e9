package main

import (
	"errors"

	"github.com/djherbis/times"
)

var errNoBirthTime = errors.New("filesystem does not record creation time")

// creationTime returns the birth time of the file at path in Unix seconds.
// There is no fallback to the modification time.
func creationTime(path string) (uint64, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return 0, &MetadataError{Path: path, Err: err}
	}
	if !ts.HasBirthTime() {
		return 0, &MetadataError{Path: path, Err: errNoBirthTime}
	}

	secs := ts.BirthTime().Unix()
	if secs < 0 {
		return 0, &MetadataError{Path: path, Err: errors.New("creation time before the Unix epoch")}
	}
	return uint64(secs), nil
}
