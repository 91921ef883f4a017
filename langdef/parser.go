package langdef

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/lexer"
	"github.com/ava12/ebnf/source"
)

// ParseString parses grammar description and returns a grammar tree on success.
// Returns nil and ebnf.Error on error.
func ParseString(name, content string) (*ast.Grammar, error) {
	return Parse(source.NewString(name, content))
}

// ParseBytes parses grammar description and returns a grammar tree on success.
// Returns nil and ebnf.Error on error.
func ParseBytes(name string, content []byte) (*ast.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description and returns a grammar tree on success.
// Returns nil and ebnf.Error on error.
func Parse(s *source.Source) (*ast.Grammar, error) {
	c := &parseContext{src: s}
	return c.parseGrammar()
}

const (
	stringTok = "string"
	nameTok   = "name"
	opTok     = "op"
)

const (
	stringTokType = iota + 1
	nameTokType
	opTokType
)

const (
	equTok       = "="
	defineTok    = ":="
	commaTok     = ","
	semicolonTok = ";"
	pipeTok      = "|"
	minusTok     = "-"
	rangeTok     = ".."
	lBraceTok    = "("
	rBraceTok    = ")"
	lSquareTok   = "["
	rSquareTok   = "]"
	lCurlyTok    = "{"
	rCurlyTok    = "}"
)

var closingTokens = map[string]string{
	lBraceTok:  rBraceTok,
	lSquareTok: rSquareTok,
	lCurlyTok:  rCurlyTok,
}

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'\'': {'\'', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

var defLexer = lexer.New(regexp.MustCompile(
	`^(?:\s+|#[^\n]*|\(\*(?s:.*?)\*\)|`+
		`((?:"(?:[^\\"\n]|\\.)*")|(?:'[^'\n]*'))|`+
		`([a-zA-Z_][a-zA-Z_0-9]*)|`+
		`(\(\*.{0,10})|`+
		`(:=|\.\.|[(){}\[\]=|,;-])|`+
		`(['"].{0,10}))`),
	[]lexer.TokenType{
		{Type: stringTokType, TypeName: stringTok},
		{Type: nameTokType, TypeName: nameTok},
		{Type: lexer.ErrorTokenType, TypeName: ""},
		{Type: opTokType, TypeName: opTok},
	})

type parseContext struct {
	src   *source.Source
	pos   int
	saved *lexer.Token
}

type item struct {
	node       ast.Node
	start, end int
}

func (c *parseContext) next() (*lexer.Token, error) {
	if c.saved != nil {
		t := c.saved
		c.saved = nil
		return t, nil
	}

	t, pos, e := defLexer.Next(c.src, c.pos)
	if e != nil {
		return nil, e
	}

	c.pos = pos
	return t, nil
}

func (c *parseContext) put(t *lexer.Token) {
	if c.saved != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.saved.TypeName())
	}

	c.saved = t
}

// fetch returns next token if its type name (or text for operators) is listed in types.
// Otherwise returns an error if strict is set, or puts the token back and returns nil.
func (c *parseContext) fetch(types []string, strict bool) (*lexer.Token, error) {
	t, e := c.next()
	if e != nil {
		return nil, e
	}

	matches := slices.ContainsFunc(types, func(typ string) bool {
		return t.TypeName() == typ || (t.Type() == opTokType && t.Text() == typ)
	})
	if matches {
		return t, nil
	}

	if !strict {
		c.put(t)
		return nil, nil
	}

	if t.IsEof() {
		return nil, eofError(t)
	}

	return nil, unexpectedTokenError(t)
}

func (c *parseContext) fetchOne(typ string, strict bool) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict)
}

func (c *parseContext) parseGrammar() (*ast.Grammar, error) {
	var rules []*ast.Rule
	for {
		t, e := c.fetchOne(nameTok, false)
		if e != nil {
			return nil, e
		}

		if t == nil {
			_, e = c.fetchOne(lexer.EofTokenName, true)
			if e != nil {
				return nil, e
			}
			break
		}

		r, e := c.parseRule(t)
		if e != nil {
			return nil, e
		}

		rules = append(rules, r)
	}

	return ast.NewGrammar(c.src.Text(), rules...)
}

func (c *parseContext) parseRule(nameToken *lexer.Token) (*ast.Rule, error) {
	name, e := ast.NewIdentifier(nameToken.Text(), nameToken.Text())
	if e != nil {
		return nil, e
	}

	_, e = c.fetch([]string{equTok, defineTok}, true)
	if e != nil {
		return nil, e
	}

	expr, e := c.parseAlternative()
	if e != nil {
		return nil, e
	}

	end, e := c.fetchOne(semicolonTok, true)
	if e != nil {
		return nil, e
	}

	return ast.NewRule(c.src.Slice(nameToken.Offset(), end.End()), name, expr.node)
}

func (c *parseContext) parseList(sep string, parseItem func() (item, error), build func(text string, ns ...ast.Node) (ast.Node, error)) (item, error) {
	first, e := parseItem()
	if e != nil {
		return item{}, e
	}

	items := []item{first}
	for {
		t, e := c.fetchOne(sep, false)
		if e != nil {
			return item{}, e
		}

		if t == nil {
			break
		}

		it, e := parseItem()
		if e != nil {
			return item{}, e
		}

		items = append(items, it)
	}

	if len(items) == 1 {
		return first, nil
	}

	nodes := make([]ast.Node, len(items))
	for i, it := range items {
		nodes[i] = it.node
	}
	result := item{start: first.start, end: items[len(items)-1].end}
	result.node, e = build(c.src.Slice(result.start, result.end), nodes...)
	return result, e
}

func (c *parseContext) parseAlternative() (item, error) {
	return c.parseList(pipeTok, c.parseConcatenation, func(text string, ns ...ast.Node) (ast.Node, error) {
		return ast.NewAlternative(text, ns...)
	})
}

func (c *parseContext) parseConcatenation() (item, error) {
	return c.parseList(commaTok, c.parseException, func(text string, ns ...ast.Node) (ast.Node, error) {
		return ast.NewConcatenation(text, ns...)
	})
}

func (c *parseContext) parseException() (item, error) {
	base, e := c.parsePrimary()
	if e != nil {
		return item{}, e
	}

	t, e := c.fetchOne(minusTok, false)
	if e != nil || t == nil {
		return base, e
	}

	excluded, e := c.parsePrimary()
	if e != nil {
		return item{}, e
	}

	result := item{start: base.start, end: excluded.end}
	result.node, e = ast.NewException(c.src.Slice(result.start, result.end), base.node, excluded.node)
	return result, e
}

func (c *parseContext) parsePrimary() (item, error) {
	heads := []string{nameTok, stringTok, lBraceTok, lSquareTok, lCurlyTok}
	t, e := c.fetch(heads, true)
	if e != nil {
		return item{}, e
	}

	result := item{start: t.Offset(), end: t.End()}

	switch t.TypeName() {
	case nameTok:
		result.node, e = ast.NewIdentifier(t.Text(), t.Text())
		return result, e

	case stringTok:
		return c.parseTerminal(t)
	}

	inner, e := c.parseAlternative()
	if e != nil {
		return item{}, e
	}

	end, e := c.fetchOne(closingTokens[t.Text()], true)
	if e != nil {
		return item{}, e
	}

	result.end = end.End()
	text := c.src.Slice(result.start, result.end)
	switch t.Text() {
	case lSquareTok:
		result.node, e = ast.NewOptional(text, inner.node)
	case lCurlyTok:
		result.node, e = ast.NewRepeated(text, inner.node)
	default:
		result.node, e = ast.NewGroup(text, inner.node)
	}
	return result, e
}

func (c *parseContext) parseTerminal(t *lexer.Token) (item, error) {
	begin, e := newTerminal(t)
	if e != nil {
		return item{}, e
	}

	result := item{node: begin, start: t.Offset(), end: t.End()}
	dots, e := c.fetchOne(rangeTok, false)
	if e != nil || dots == nil {
		return result, e
	}

	et, e := c.fetchOne(stringTok, true)
	if e != nil {
		return item{}, e
	}

	end, e := newTerminal(et)
	if e != nil {
		return item{}, e
	}

	result.end = et.End()
	result.node, e = ast.NewRange(c.src.Slice(result.start, result.end), begin, end)
	if e != nil {
		return item{}, rangeError(t, e)
	}

	return result, nil
}

func newTerminal(t *lexer.Token) (*ast.Terminal, error) {
	value, e := unquote(t)
	if e != nil {
		return nil, e
	}

	return ast.NewTerminal(t.Text(), value), nil
}

func unquote(token *lexer.Token) (string, error) {
	text := token.Text()
	content := text[1 : len(text)-1]
	if text[0] != '"' || strings.IndexByte(content, '\\') < 0 {
		return content, nil
	}

	peekRune := func(content string, hexLen int) (rune, error) {
		if len(content) < hexLen+2 {
			return 0, invalidEscapeError(token, content)
		}

		codePoint, e := strconv.ParseUint(content[2:hexLen+2], 16, 32)
		if e != nil {
			return 0, invalidEscapeError(token, content[:hexLen+2])
		}

		if hexLen > 2 && !utf8.ValidRune(rune(codePoint)) {
			return 0, invalidRuneError(token, content[2:hexLen+2])
		}
		return rune(codePoint), nil
	}

	result := make([]byte, 0, len(content))
	for {
		slashPos := strings.IndexByte(content, '\\')
		if slashPos < 0 {
			result = append(result, content...)
			break
		}

		result = append(result, content[:slashPos]...)
		content = content[slashPos:]

		entry, valid := escapeCharMap[content[1]]
		if !valid {
			return "", invalidEscapeError(token, content[:2])
		}

		if entry.hexLen == 0 {
			result = append(result, entry.substitute)
			content = content[2:]
			continue
		}

		r, e := peekRune(content, int(entry.hexLen))
		if e != nil {
			return "", e
		}

		if entry.hexLen == 2 {
			result = append(result, byte(r))
		} else {
			result = utf8.AppendRune(result, r)
		}
		content = content[entry.hexLen+2:]
	}

	return string(result), nil
}
