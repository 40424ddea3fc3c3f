package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Configuration mismatches. The build continues on the supported
	// default after each of these.
	CfgInvalidRuntimeLib Code = 1001
	CfgInvalidCXXStdlib  Code = 1002

	// Link driver findings.
	LnkMissingInput   Code = 2001
	LnkNoInputs       Code = 2002
	LnkLinkerNotFound Code = 2003
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown diagnostic",
	CfgInvalidRuntimeLib: "Invalid runtime library name",
	CfgInvalidCXXStdlib:  "Invalid C++ standard library name",
	LnkMissingInput:      "Link input does not exist",
	LnkNoInputs:          "No link inputs given",
	LnkLinkerNotFound:    "Linker executable not found",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
