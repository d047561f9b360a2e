package entity

// RawDocument is an uploaded invoice: an opaque byte blob plus the filename
// it arrived under. The filename is used only as a classification hint.
// Consumed once by text recovery and then discarded.
type RawDocument struct {
	Filename string
	Content  []byte
}
