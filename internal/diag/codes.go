package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Code generation
	GenInfo            Code = 7000
	GenNotImplemented  Code = 7001
	GenNotAddressable  Code = 7002
	GenUnsupportedDecl Code = 7003
	GenLayout          Code = 7004
)

func (c Code) String() string {
	return fmt.Sprintf("EM%04d", uint16(c))
}
