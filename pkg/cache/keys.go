package cache

// Keyer derives cache keys.
type Keyer interface {
	// MergeKey is the key for the result of applying a script to a document.
	MergeKey(documentHash, scriptHash string, opts MergeKeyOpts) string
}

// MergeKeyOpts holds the output settings that change the merged bytes
// without being part of the document or script.
type MergeKeyOpts struct {
	Indent         int  `json:"indent"`
	Declaration    bool `json:"declaration"`
	SortAttributes bool `json:"sort_attributes"`
}

// DefaultKeyer produces "merge:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MergeKey hashes the document hash, script hash and output settings together.
func (DefaultKeyer) MergeKey(documentHash, scriptHash string, opts MergeKeyOpts) string {
	return hashKey("merge", documentHash, scriptHash, opts)
}
