package asm

import "fmt"

// Error is an assemble-time diagnostic tied to a specific source line.
type Error struct {
	File string
	Line int
	Src  string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func newError(file string, line int, src string, format string, args ...interface{}) *Error {
	return &Error{File: file, Line: line, Src: src, Msg: fmt.Sprintf(format, args...)}
}
