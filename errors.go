package workflow

import "errors"

var (
	ErrDuplicateID = errors.New("workflow: duplicate node id")
	ErrInvalidEdge = errors.New("workflow: invalid edge")

	ErrNodeNotFound = errors.New("workflow: node not found")
	ErrEdgeNotFound = errors.New("workflow: edge not found")

	// Connection rejections.
	ErrUnknownEndpoint     = errors.New("workflow: connection endpoint does not exist")
	ErrSameLabel           = errors.New("workflow: cannot connect nodes with the same label")
	ErrDuplicateConnection = errors.New("workflow: connection already exists")
	ErrCycleDetected       = errors.New("workflow: cycle detected, graph is not acyclic")

	// ErrInvalidWorkflowFormat rejects an import; malformed JSON additionally
	// matches ErrWorkflowParse.
	ErrInvalidWorkflowFormat = errors.New("workflow: invalid workflow format")
	ErrWorkflowParse         = errors.New("workflow: failed to parse workflow")

	ErrEmptyLabel       = errors.New("workflow: template label is empty")
	ErrTemplateNotFound = errors.New("workflow: template not found")
	ErrInvalidChange    = errors.New("workflow: invalid change")
)
