package service

import "fmt"

var (
	ErrCannotAppendLog = fmt.Errorf("cannot append log")
	ErrStoreLocked     = fmt.Errorf("log store is locked")
	ErrFileNotFound    = fmt.Errorf("file not found")
)
