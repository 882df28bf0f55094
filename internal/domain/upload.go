package domain

import "io"

// Upload is a user-supplied file. Name carries the original file name, whose
// extension selects the reader.
type Upload struct {
	Name string
	Body io.Reader
}
