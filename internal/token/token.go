package token

import (
	"strconv"
	"strings"
)

type Type string

type Token struct {
	Type  Type
	Text  string
	Value string // Attribute value, unquoted and unescaped
	Start int
	Line  int
}

func (t *Token) String() string {
	s := new(strings.Builder)
	s.WriteString(string(t.Type))
	if t.Text != "" && t.Text != string(t.Type) {
		s.WriteString(":")
		s.WriteString(strconv.Quote(t.Text))
	}
	if t.Type == Attribute {
		s.WriteString("=")
		s.WriteString(strconv.Quote(t.Value))
	}
	return s.String()
}

const (
	EOF   Type = "eof"
	Error Type = "error"

	LessThan         Type = "<"  // <Name
	LessThanSlash    Type = "</" // </Name>
	GreaterThan      Type = ">"  // >
	SlashGreaterThan Type = "/>" // />

	Instruction      Type = "<?" // <?xml
	InstructionClose Type = "?>" // ?>
	Doctype          Type = "<!doctype"

	Attribute Type = "attribute" // name="value"
	Comment   Type = "comment"   // <!-- ... -->
	CData     Type = "cdata"     // <![CDATA[ ... ]]>
	Text      Type = "text"      // Raw text between tags
)
