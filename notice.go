package workflow

import "errors"

// Level is the severity of a user-facing notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a short message the UI shows after an operation.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Success notices for completed operations.
var (
	NoticeTemplateAdded   = Notice{LevelSuccess, "Node added to the sidebar!"}
	NoticeTemplateRemoved = Notice{LevelSuccess, "Node deleted from the sidebar!"}
	NoticeNodeDeleted     = Notice{LevelSuccess, "Node deleted!"}
	NoticeEdgeDeleted     = Notice{LevelSuccess, "Connection deleted!"}
	NoticeExported        = Notice{LevelSuccess, "Workflow exported successfully!"}
	NoticeImported        = Notice{LevelSuccess, "Workflow imported successfully!"}
	NoticeReset           = Notice{LevelSuccess, "Workflow has been reset!"}
	NoticeEdgeSelected    = Notice{LevelInfo, "Right-clicked edge"}
)

// NoticeNodeSelected is shown when a node is picked for deletion.
func NoticeNodeSelected(label string) Notice {
	return Notice{LevelInfo, "Right-clicked node: " + label}
}

// NoticeFor maps an operation error to the notice the user sees.
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return Notice{}
	case errors.Is(err, ErrSameLabel):
		return Notice{LevelWarning, "Cannot connect nodes with the same label!"}
	case errors.Is(err, ErrDuplicateConnection):
		return Notice{LevelWarning, "Connection already exists!"}
	case errors.Is(err, ErrCycleDetected) && !errors.Is(err, ErrInvalidWorkflowFormat):
		return Notice{LevelError, "This connection would create a circular dependency!"}
	case errors.Is(err, ErrUnknownEndpoint):
		return Notice{LevelWarning, "Cannot connect to a node that does not exist!"}
	case errors.Is(err, ErrWorkflowParse):
		return Notice{LevelError, "Failed to parse workflow file!"}
	case errors.Is(err, ErrInvalidWorkflowFormat):
		return Notice{LevelError, "Invalid workflow file structure!"}
	case errors.Is(err, ErrEmptyLabel):
		return Notice{LevelWarning, "Please enter a label for the node!"}
	case errors.Is(err, ErrTemplateNotFound):
		return Notice{LevelWarning, "Node not found in the sidebar!"}
	case errors.Is(err, ErrNodeNotFound):
		return Notice{LevelWarning, "Node not found!"}
	case errors.Is(err, ErrEdgeNotFound):
		return Notice{LevelWarning, "Connection not found!"}
	case errors.Is(err, ErrDuplicateID):
		return Notice{LevelError, "A node with this id already exists!"}
	case errors.Is(err, ErrInvalidEdge), errors.Is(err, ErrInvalidChange):
		return Notice{LevelError, "Invalid change to the workflow!"}
	default:
		return Notice{LevelError, "Something went wrong: " + err.Error()}
	}
}
