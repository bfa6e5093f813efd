// Package io reads and writes XML documents on disk.
//
// Reads map a missing file to [errors.ErrCodeFileNotFound] so callers can
// tell "nothing there yet" apart from I/O failures. Writes go through a
// temporary file in the destination directory followed by a rename, so a
// failed or interrupted run never leaves a truncated document behind:
//
//	data, err := io.ReadDocument("workspace.xml")
//	...
//	err = io.WriteDocument("workspace.xml", merged)
//
// [ReadExisting] is the variant used by generators that update a file
// which may not have been created yet.
//
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/xmlmerge/pkg/errors.ErrCodeFileNotFound
package io
