package session

import "fmt"

// ParseError is a malformed inbound frame. It ends the session.
type ParseError struct {
	Raw []byte
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse inbound message: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError is a failed read or write on the connection. It ends the session.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
