package transfer

import "fmt"

// UnknownTargetGeneError reports a mapped gene id that is absent from
// the gene metadata index. A mapping miss is expected attrition and is
// handled silently; this error means the correspondence map and the
// metadata file disagree on key space, which makes the whole run
// untrustworthy.
type UnknownTargetGeneError struct {
	ID string
}

func (e *UnknownTargetGeneError) Error() string {
	return fmt.Sprintf("mapped gene %s not found in gene metadata index", e.ID)
}
