package dictionary

import (
	"fmt"
)

// VarnameResolutionError reports that no variable name could be derived
// from a result: it carried no usable metadata, was not a labeled
// container with named dimensions, and was not a text sequence.
type VarnameResolutionError struct {
	// Arg describes the failing call argument, typically its Go type.
	Arg string
}

func (e *VarnameResolutionError) Error() string {
	return fmt.Sprintf("cannot determine variable name from %s", e.Arg)
}

// UnknownVariableError reports a resolved variable name with no (or an
// empty) description entry.
type UnknownVariableError struct {
	Varname string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %q is not in the dictionary", e.Varname)
}

// MalformedFlattenedCodeError reports a flattened code entry that does not
// split into a group token and a variable token even though a grouping tag
// was supplied.
type MalformedFlattenedCodeError struct {
	Raw      string
	Varname  string
	GrpbyTag string
}

func (e *MalformedFlattenedCodeError) Error() string {
	return fmt.Sprintf("malformed flattened code %q for %q grouped by %q",
		e.Raw, e.Varname, e.GrpbyTag)
}
