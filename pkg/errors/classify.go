package errors

import (
	"errors"

	"github.com/groupgen/groupgen/pkg/gen"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
	"github.com/groupgen/groupgen/pkg/resolve"
)

// modelErrors are the snapshot validation failures, all of which surface
// as INVALID_GROUP.
var modelErrors = []error{
	model.ErrEmptyGroupName,
	model.ErrInvalidDomain,
	model.ErrEmptyNodeID,
	model.ErrDuplicateNodeID,
	model.ErrUnknownLinkEndpoint,
	model.ErrSocketIndexRange,
	model.ErrFanIn,
	model.ErrLinkedFlagMismatch,
	model.ErrMissingDefault,
	model.ErrValueShape,
	model.ErrMissingRefGroup,
	model.ErrUnexpectedRefGroup,
}

// FromEngine classifies an engine error into a coded Error. Already
// coded errors pass through unchanged; anything unrecognized becomes
// INTERNAL_ERROR so the surface never leaks an unclassified failure.
func FromEngine(err error) *Error {
	var coded *Error
	if errors.As(err, &coded) {
		return coded
	}

	var missing *resolve.MissingReferenceError
	if errors.As(err, &missing) {
		// A missing root is a plain lookup failure; a missing nested
		// reference names the group that points at it.
		if missing.Group == missing.Ref {
			return Wrap(ErrCodeGroupNotFound, err, "group %q not found", missing.Ref)
		}
		return Wrap(ErrCodeMissingReference, err, "group %q references missing group %q", missing.Group, missing.Ref)
	}

	var cycle *resolve.CycleError
	if errors.As(err, &cycle) {
		return Wrap(ErrCodeCyclicDependency, err, "dependency cycle detected")
	}

	var nodeType *gen.UnsupportedNodeTypeError
	if errors.As(err, &nodeType) {
		return Wrap(ErrCodeUnsupportedNodeType, err, "unsupported node type %q", nodeType.TypeTag)
	}

	var prop *gen.UnsupportedPropertyError
	if errors.As(err, &prop) {
		return Wrap(ErrCodeUnsupportedProperty, err, "unsupported property %q on node %q", prop.Property, prop.Node)
	}

	if errors.Is(err, registry.ErrGroupNotFound) {
		return Wrap(ErrCodeGroupNotFound, err, "group not found")
	}

	for _, sentinel := range modelErrors {
		if errors.Is(err, sentinel) {
			return Wrap(ErrCodeInvalidGroup, err, "invalid group snapshot")
		}
	}

	return Wrap(ErrCodeInternal, err, "internal error")
}
