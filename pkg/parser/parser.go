// Package parser turns LeapDL source text into a validated *datalog.Program.
//
// # Usage
//
//	prog, err := parser.Parse("p(1, 2). q(?x) := p(?x, ?y). ?q(?a).")
//	if err != nil {
//	    // *LexError, *ParseError or *SemanticError
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser for:
//
//	program    → statement { statement }
//	statement  → atom '.'                      (fact)
//	           | VARIABLE tuple '.'            (query)
//	           | atom ':=' atomlist '.'        (rule)
//	atomlist   → atom { ',' atom }
//	atom       → STRING [ACCESSPATTERN] tuple
//	tuple      → '(' term { ',' term } ')'
//	term       → constant | VARIABLE
//	constant   → INTEGER | SIGNEDINTEGER | REALNUMBER | SIGNEDREALNUMBER | QUOTEDSTRING
//
// Every production returns the value it built; the data-model constructors
// run as soon as a term, tuple, atom, rule or query is complete, so an
// invalid construct is reported at the point it is read. Parsing stops at
// the first error and no partial program is returned.
package parser

import (
	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// termStart lists the tokens that may begin a term.
var termStart = []token.TokenType{
	token.VARIABLE,
	token.INTEGER,
	token.SIGNED_INTEGER,
	token.REAL,
	token.SIGNED_REAL,
	token.QUOTED_STRING,
}

// Parser parses one source text. The only state is the token cursor, so a
// Parser must not be shared between goroutines; use one per input.
type Parser struct {
	input  string
	tokens []token.Token
	pos    int
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse tokenizes and parses input into a program.
func Parse(input string) (*datalog.Program, error) {
	return NewParser(input).Parse()
}

// Parse runs the parser. It may be called again and re-reads the input.
func (p *Parser) Parse() (*datalog.Program, error) {
	tokens, err := tokenizeAll(p.input)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.pos = 0

	prog := datalog.NewProgram()
	if p.check(token.EOF) {
		return nil, p.unexpected(token.STRING, token.VARIABLE)
	}
	for !p.check(token.EOF) {
		if err := p.parseStatement(prog); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// ---------- Token Helpers ----------

// cur returns the current token.
func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

// nextToken advances to the next token. The cursor never moves past EOF.
func (p *Parser) nextToken() token.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.cur().Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes and returns the current token if it matches.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	if p.check(t) {
		return p.nextToken(), nil
	}
	return token.Token{}, p.unexpected(t)
}

// unexpected builds a ParseError for the current token.
func (p *Parser) unexpected(expected ...token.TokenType) *ParseError {
	tok := p.cur()
	return &ParseError{
		Pos:      tok.Pos,
		Found:    tok.Type,
		Literal:  tok.Literal,
		Expected: expected,
	}
}

func semantic(pos token.Position, err error) error {
	return &SemanticError{Pos: pos, Err: err}
}

// ---------- Productions ----------

// parseStatement parses one fact, rule or query and adds it to prog.
func (p *Parser) parseStatement(prog *datalog.Program) error {
	switch p.cur().Type {
	case token.VARIABLE:
		q, err := p.parseQuery()
		if err != nil {
			return err
		}
		prog.AddQuery(q)
		return nil

	case token.STRING:
		head, err := p.parseAtom()
		if err != nil {
			return err
		}
		switch {
		case p.match(token.PERIOD):
			prog.AddFact(head)
			return nil
		case p.match(token.IMPLIES):
			rule, err := p.parseRuleBody(head)
			if err != nil {
				return err
			}
			prog.AddRule(rule)
			return nil
		default:
			return p.unexpected(token.PERIOD, token.IMPLIES)
		}

	default:
		return p.unexpected(token.STRING, token.VARIABLE)
	}
}

// parseRuleBody parses atomlist '.' after ':=' and builds the rule.
func (p *Parser) parseRuleBody(head datalog.Atom) (*datalog.Rule, error) {
	body, err := p.parseAtomList()
	if err != nil {
		return nil, err
	}
	if !p.match(token.PERIOD) {
		return nil, p.unexpected(token.COMMA, token.PERIOD)
	}
	rule, err := datalog.NewRule(head, body)
	if err != nil {
		return nil, semantic(head.Pos(), err)
	}
	return rule, nil
}

// parseQuery parses VARIABLE tuple '.'.
func (p *Parser) parseQuery() (datalog.Query, error) {
	tok := p.nextToken()
	tuple, err := p.parseTuple()
	if err != nil {
		return datalog.Query{}, err
	}
	if _, err := p.expect(token.PERIOD); err != nil {
		return datalog.Query{}, err
	}
	q, err := datalog.NewQuery(tok.Value.(string), tuple)
	if err != nil {
		return datalog.Query{}, semantic(tok.Pos, err)
	}
	return q.At(tok.Pos), nil
}

// parseAtomList parses atom { ',' atom }.
func (p *Parser) parseAtomList() ([]datalog.Atom, error) {
	var atoms []datalog.Atom
	for {
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
		if !p.match(token.COMMA) {
			return atoms, nil
		}
	}
}

// parseAtom parses STRING [ACCESSPATTERN] tuple.
func (p *Parser) parseAtom() (datalog.Atom, error) {
	name, err := p.expect(token.STRING)
	if err != nil {
		return datalog.Atom{}, err
	}

	var pattern string
	if p.check(token.ACCESS_PATTERN) {
		pattern = p.nextToken().Literal
	}

	tuple, err := p.parseTuple()
	if err != nil {
		return datalog.Atom{}, err
	}

	var atom datalog.Atom
	if pattern != "" {
		atom, err = datalog.NewAtomWithPattern(name.Literal, tuple, pattern)
	} else {
		atom, err = datalog.NewAtom(name.Literal, tuple)
	}
	if err != nil {
		return datalog.Atom{}, semantic(name.Pos, err)
	}
	return atom.At(name.Pos), nil
}

// parseTuple parses '(' term { ',' term } ')'.
func (p *Parser) parseTuple() (datalog.Tuple, error) {
	open, err := p.expect(token.LPAREN)
	if err != nil {
		return datalog.Tuple{}, err
	}

	var terms []datalog.Term
	for {
		term, err := p.parseTerm()
		if err != nil {
			return datalog.Tuple{}, err
		}
		terms = append(terms, term)
		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return datalog.Tuple{}, p.unexpected(token.COMMA, token.RPAREN)
		}
		break
	}

	tuple, err := datalog.NewTuple(terms...)
	if err != nil {
		return datalog.Tuple{}, semantic(open.Pos, err)
	}
	return tuple, nil
}

// parseTerm parses a constant or a variable.
func (p *Parser) parseTerm() (datalog.Term, error) {
	tok := p.cur()

	var (
		term datalog.Term
		err  error
	)
	switch tok.Type {
	case token.VARIABLE:
		term, err = datalog.NewVariable(tok.Value.(string))
	case token.INTEGER, token.SIGNED_INTEGER:
		term = datalog.IntConstant(tok.Value.(int64))
	case token.REAL, token.SIGNED_REAL:
		term, err = datalog.RealConstant(tok.Value.(float64))
	case token.QUOTED_STRING:
		term, err = datalog.StringConstant(tok.Value.(string))
	default:
		return nil, p.unexpected(termStart...)
	}
	if err != nil {
		return nil, semantic(tok.Pos, err)
	}
	p.nextToken()
	return term, nil
}
