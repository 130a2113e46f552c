package cache

// Keyer derives cache keys for the export pipeline. Keys combine the
// content hash of the ordered closure with every option that changes the
// emitted text, so two runs share a key exactly when their output is
// byte-identical.
type Keyer interface {
	// ExportKey generates a key for generated export code.
	ExportKey(closureHash string, opts ExportKeyOpts) string
}

// ExportKeyOpts holds the options that affect generated output.
type ExportKeyOpts struct {
	IncludeNested bool `json:"include_nested"`
	AutoAssign    bool `json:"auto_assign"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ExportKey generates a key for generated export code.
func (k *DefaultKeyer) ExportKey(closureHash string, opts ExportKeyOpts) string {
	return hashKey("export", closureHash, opts)
}
