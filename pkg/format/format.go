package format

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// MaxWidth is the longest rule, in characters, kept on a single line.
const MaxWidth = 80

// Program formats every statement of prog in source order, one per line.
// A blank line separates runs of different statement kinds.
func Program(prog *datalog.Program) string {
	p := newPrinter()
	var prev string
	for i, stmt := range prog.Statements() {
		kind := statementKind(stmt)
		if i > 0 && kind != prev {
			p.writeln()
		}
		prev = kind
		p.formatStatement(stmt)
		p.writeln()
	}
	return p.String()
}

// Statement formats a single statement including its final period, without
// a trailing newline.
func Statement(stmt datalog.Statement) string {
	p := newPrinter()
	p.formatStatement(stmt)
	return p.output.String()
}

func statementKind(stmt datalog.Statement) string {
	switch stmt.(type) {
	case *datalog.Rule:
		return "rule"
	case datalog.Query:
		return "query"
	default:
		return "fact"
	}
}

func (p *Printer) formatStatement(stmt datalog.Statement) {
	switch s := stmt.(type) {
	case *datalog.Rule:
		p.formatRule(s)
	case datalog.Query:
		p.write(string(token.VariableMarker) + s.Relation())
		p.formatTuple(s.Tuple())
		p.write(".")
	case datalog.Atom:
		p.formatAtom(s)
		p.write(".")
	}
}

func (p *Printer) formatRule(r *datalog.Rule) {
	body := r.Body()
	multiline := utf8.RuneCountInString(r.String())+1 > MaxWidth

	p.formatAtom(r.Head())
	p.space()
	p.write(token.IMPLIES.String())
	sep := ", "
	if multiline {
		sep = ","
		p.writeln()
		p.indent()
	} else {
		p.space()
	}
	p.formatList(len(body), func(i int) {
		p.formatAtom(body[i])
	}, sep, multiline)
	p.write(".")
	if multiline {
		p.dedent()
	}
}

func (p *Printer) formatAtom(a datalog.Atom) {
	p.write(a.Relation())
	if ap, ok := a.AccessPattern(); ok {
		p.write(ap.String())
	}
	p.formatTuple(a.Tuple())
}

func (p *Printer) formatTuple(t datalog.Tuple) {
	terms := t.Terms()
	p.write("(")
	p.formatList(len(terms), func(i int) {
		p.write(terms[i].String())
	}, ", ", false)
	p.write(")")
}
