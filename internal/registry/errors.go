package registry

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("node already exists")
	ErrNotFound      = errors.New("node does not exist")
	ErrProtected     = errors.New("node is protected")
)

// NodeError wraps an error with the node and operation that produced it.
type NodeError struct {
	Node string
	Op   string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
