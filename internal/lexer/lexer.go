package lexer

import (
	"io"
	"strconv"
	"strings"

	"github.com/livebud/layoutc/internal/token"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

func New(input string) *Lexer {
	return &Lexer{
		input: input,
		xl:    xml.NewLexer(parse.NewInputBytes([]byte(input))),
		line:  1,
	}
}

func Lex(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for l.Next() {
		tokens = append(tokens, l.Token)
	}
	return tokens
}

// Print the input as tokens
func Print(input string) string {
	tokens := Lex(input)
	stoken := make([]string, len(tokens))
	for i, token := range tokens {
		stoken[i] = token.String()
	}
	return strings.Join(stoken, " ")
}

type Lexer struct {
	Token token.Token // Current token
	input string      // Input string
	xl    *xml.Lexer  // Underlying XML tokenizer
	pos   int         // Index just past the last matched token
	line  int         // Line number at pos
	done  bool        // Set once EOF or an error was produced

	peaked []token.Token
}

func (l *Lexer) Next() bool {
	if len(l.peaked) > 0 {
		l.Token = l.peaked[0]
		l.peaked = l.peaked[1:]
	} else {
		l.Token = l.nextToken()
	}
	return l.Token.Type != token.EOF
}

func (l *Lexer) Peak(nth int) token.Token {
	if len(l.peaked) >= nth {
		return l.peaked[nth-1]
	}
	for i := len(l.peaked); i < nth; i++ {
		l.peaked = append(l.peaked, l.nextToken())
	}
	return l.peaked[nth-1]
}

func (l *Lexer) Latest() token.Token {
	if len(l.peaked) > 0 {
		return l.peaked[len(l.peaked)-1]
	}
	return l.Token
}

func (l *Lexer) nextToken() token.Token {
	if l.done {
		return token.Token{Type: token.EOF, Start: len(l.input), Line: l.line}
	}
	tt, data := l.xl.Next()
	if tt == xml.ErrorToken {
		l.done = true
		if err := l.xl.Err(); err != nil && err != io.EOF {
			return token.Token{Type: token.Error, Text: err.Error(), Start: l.pos, Line: l.line}
		}
		return token.Token{Type: token.EOF, Start: len(l.input), Line: l.line}
	}
	t := l.locate(string(data))
	switch tt {
	case xml.StartTagToken:
		t.Type = token.LessThan
		t.Text = tagName(string(data), "<", "")
	case xml.StartTagPIToken:
		t.Type = token.Instruction
		t.Text = tagName(string(data), "<?", "")
	case xml.StartTagCloseToken:
		t.Type = token.GreaterThan
		t.Text = ""
	case xml.StartTagCloseVoidToken:
		t.Type = token.SlashGreaterThan
		t.Text = ""
	case xml.StartTagClosePIToken:
		t.Type = token.InstructionClose
		t.Text = ""
	case xml.EndTagToken:
		t.Type = token.LessThanSlash
		t.Text = tagName(string(data), "</", ">")
	case xml.AttributeToken:
		t.Type = token.Attribute
		t.Text = string(l.xl.Text())
		t.Value = Unescape(unquote(string(l.xl.AttrVal())))
	case xml.TextToken:
		t.Type = token.Text
		t.Text = Unescape(string(data))
	case xml.CDATAToken:
		t.Type = token.CData
		text := strings.TrimPrefix(string(data), "<![CDATA[")
		t.Text = strings.TrimSuffix(text, "]]>")
	case xml.CommentToken:
		t.Type = token.Comment
		t.Text = string(data)
	case xml.DOCTYPEToken:
		t.Type = token.Doctype
		t.Text = ""
	default:
		l.done = true
		t.Type = token.Error
		t.Text = "unexpected token " + strconv.Quote(string(data))
	}
	return t
}

// locate finds the raw token data in the input to track offsets and lines
func (l *Lexer) locate(data string) token.Token {
	start := l.pos
	if i := strings.Index(l.input[l.pos:], data); i >= 0 && data != "" {
		start = l.pos + i
	}
	line := l.line + strings.Count(l.input[l.pos:start], "\n")
	end := start + len(data)
	l.line = line + strings.Count(l.input[start:end], "\n")
	l.pos = end
	return token.Token{Start: start, Line: line}
}

func tagName(data, prefix, suffix string) string {
	data = strings.TrimPrefix(data, prefix)
	data = strings.TrimSuffix(data, suffix)
	return strings.TrimSpace(data)
}

func unquote(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		return value[1 : len(value)-1]
	}
	return value
}

var entities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

// Unescape replaces the predefined XML entities and numeric character
// references. Unknown entities are left as they are.
func Unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	out := new(strings.Builder)
	for {
		amp := strings.IndexByte(s, '&')
		if amp < 0 {
			out.WriteString(s)
			return out.String()
		}
		semi := strings.IndexByte(s[amp:], ';')
		if semi < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:amp])
		name := s[amp+1 : amp+semi]
		if replacement, ok := decodeEntity(name); ok {
			out.WriteString(replacement)
		} else {
			out.WriteString(s[amp : amp+semi+1])
		}
		s = s[amp+semi+1:]
	}
}

func decodeEntity(name string) (string, bool) {
	if value, ok := entities[name]; ok {
		return value, true
	}
	if !strings.HasPrefix(name, "#") {
		return "", false
	}
	var code int64
	var err error
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		code, err = strconv.ParseInt(name[2:], 16, 32)
	} else {
		code, err = strconv.ParseInt(name[1:], 10, 32)
	}
	if err != nil || code < 0 {
		return "", false
	}
	return string(rune(code)), true
}
