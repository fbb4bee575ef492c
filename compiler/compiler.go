// Package compiler implements the single-pass Pratt parser that both
// parses Nilan source and emits bytecode directly into a chunk.Chunk,
// with no intermediate AST.
package compiler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"nilan/chunk"
	"nilan/lexer"
	"nilan/token"
	"nilan/value"
)

// Compiler drives one compilation: it owns the lexer, the chunk it emits
// into, and the two-token lookahead (previous/current) the Pratt parser
// reads from. Compile-time errors accumulate in errs rather than
// aborting the pass, so a single call reports every syntax error found.
type Compiler struct {
	lex *lexer.Lexer
	ch  *chunk.Chunk

	previous token.Token
	current  token.Token

	errs *multierror.Error
	log  *logrus.Logger
}

// Compile runs the lexer and Pratt compiler over source, emitting
// bytecode into a fresh chunk built around the shared interner. It always
// returns the chunk it built; the caller decides whether to execute it —
// per the driver contract, only when the returned error is nil.
func Compile(source string, interner *value.Interner, log *logrus.Logger) (*chunk.Chunk, error) {
	c := &Compiler{
		lex: lexer.New(source),
		ch:  chunk.New(interner),
		log: log,
	}
	sentinel := token.New(token.Eof, "", 0)
	c.previous, c.current = sentinel, sentinel

	c.advance()
	for !c.isDone() {
		c.declaration()
	}
	c.emitOp(chunk.OpReturn)
	if err := c.consume(token.Eof, "Expect end of expression."); err != nil {
		c.errs = multierror.Append(c.errs, err)
	}

	if log != nil {
		log.WithField("bytes", c.ch.Len()).Debug("compiled chunk")
	}
	return c.ch, c.errs.ErrorOrNil()
}

func (c *Compiler) isDone() bool {
	return c.lex.AtEnd()
}

// advance scans tokens until it gets a clean one, reporting every scanner
// error it passes over along the way, then moves current into previous
// and installs the clean token as the new current.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		tok, err := c.lex.ScanToken()
		if err != nil {
			c.reportScanError(err)
			continue
		}
		c.current = tok
		return
	}
}

func (c *Compiler) reportScanError(err error) {
	line := 0
	switch e := err.(type) {
	case lexer.UnexpectedEofError:
		line = e.Line
	case lexer.UnsupportedCharError:
		line = e.Line
	case lexer.InvalidNumberError:
		line = e.Line
	}
	c.errs = multierror.Append(c.errs, ScanError{errorContext{line: line}, err.Error()})
}

func (c *Compiler) consume(kind token.Kind, msg string) error {
	if c.current.Kind == kind {
		c.advance()
		return nil
	}
	return UnexpectedTokenError{newContext(c.current), msg}
}

func (c *Compiler) matchToken(kind token.Kind) bool {
	if c.current.Kind != kind {
		return false
	}
	c.advance()
	return true
}

// declaration is the top-level production: var declarations or plain
// statements, with error-recovery synchronization on failure.
func (c *Compiler) declaration() {
	var err error
	if c.matchToken(token.Var) {
		err = c.varDeclaration()
	} else {
		err = c.statement()
	}
	if err != nil {
		c.errs = multierror.Append(c.errs, err)
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() error {
	if err := c.consume(token.Identifier, "Expect variable name."); err != nil {
		return err
	}
	idx, err := c.parseVariable()
	if err != nil {
		return err
	}
	if c.matchToken(token.Equal) {
		if err := c.expression(); err != nil {
			return err
		}
	} else {
		c.emitOp(chunk.OpNil)
	}
	if err := c.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return err
	}
	c.emitConstantOp(chunk.OpDefineGlobal, idx)
	return nil
}

func (c *Compiler) statement() error {
	if c.matchToken(token.Print) {
		return c.printStatement()
	}
	return c.expressionStatement()
}

func (c *Compiler) printStatement() error {
	if err := c.expression(); err != nil {
		return err
	}
	if err := c.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return err
	}
	c.emitOp(chunk.OpPrint)
	return nil
}

func (c *Compiler) expressionStatement() error {
	if err := c.expression(); err != nil {
		return err
	}
	if err := c.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return err
	}
	c.emitOp(chunk.OpPop)
	return nil
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(precAssignment)
}

// parsePrecedence is the Pratt parser's core loop: parse a prefix
// expression, then keep folding in infix operators whose precedence is
// at least p.
func (c *Compiler) parsePrecedence(p precedence) error {
	c.advance()
	rule := ruleFor(c.previous.Kind)
	if rule.prefix == nil {
		return ExpectExpressionError{newContext(c.previous)}
	}

	canAssign := p <= precAssignment
	if err := rule.prefix(c, canAssign); err != nil {
		return err
	}

	for p <= ruleFor(c.current.Kind).precedence {
		c.advance()
		infix := ruleFor(c.previous.Kind).infix
		if infix == nil {
			return InternalError{newContext(c.previous), "no infix parser rule"}
		}
		if err := infix(c, canAssign); err != nil {
			return err
		}
	}

	if canAssign && c.matchToken(token.Equal) {
		return InvalidAssignmentError{newContext(c.previous)}
	}
	return nil
}

func (c *Compiler) grouping(_ bool) error {
	if err := c.expression(); err != nil {
		return err
	}
	return c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) error {
	opType := c.previous.Kind
	if err := c.parsePrecedence(precUnary); err != nil {
		return err
	}
	switch opType {
	case token.Bang:
		c.emitOp(chunk.OpNot)
	case token.Minus:
		c.emitOp(chunk.OpNegate)
	default:
		return InternalError{newContext(c.previous), fmt.Sprintf("invalid unary operator %q", c.previous.Lexeme)}
	}
	return nil
}

func (c *Compiler) binary(_ bool) error {
	opType := c.previous.Kind
	rule := ruleFor(opType)
	if err := c.parsePrecedence(rule.precedence.higher()); err != nil {
		return err
	}
	switch opType {
	case token.BangEqual:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.EqualEqual:
		c.emitOp(chunk.OpEqual)
	case token.Greater:
		c.emitOp(chunk.OpGreater)
	case token.GreaterEqual:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.Less:
		c.emitOp(chunk.OpLess)
	case token.LessEqual:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	case token.Plus:
		c.emitOp(chunk.OpAdd)
	case token.Minus:
		c.emitOp(chunk.OpSubtract)
	case token.Star:
		c.emitOp(chunk.OpMultiply)
	case token.Slash:
		c.emitOp(chunk.OpDivide)
	default:
		return InternalError{newContext(c.previous), fmt.Sprintf("invalid binary operator %q", c.previous.Lexeme)}
	}
	return nil
}

func (c *Compiler) literal(_ bool) error {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(chunk.OpFalse)
	case token.Nil:
		c.emitOp(chunk.OpNil)
	case token.True:
		c.emitOp(chunk.OpTrue)
	default:
		return InternalError{newContext(c.previous), fmt.Sprintf("invalid literal %q", c.previous.Lexeme)}
	}
	return nil
}

func (c *Compiler) number(_ bool) error {
	n, _ := c.previous.Literal.(float64)
	return c.emitConstant(chunk.NumberConstant(n))
}

func (c *Compiler) string(_ bool) error {
	s, _ := c.previous.Literal.(string)
	return c.emitConstant(chunk.StringConstant(s))
}

func (c *Compiler) variable(canAssign bool) error {
	return c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) error {
	idx, ok := c.ch.AddConstant(chunk.StringConstant(name.Lexeme))
	if !ok {
		return TooManyConstantsError{newContext(name)}
	}
	if canAssign && c.matchToken(token.Equal) {
		if err := c.expression(); err != nil {
			return err
		}
		c.emitConstantOp(chunk.OpSetGlobal, idx)
		return nil
	}
	c.emitConstantOp(chunk.OpGetGlobal, idx)
	return nil
}

// parseVariable interns the just-consumed identifier lexeme as a String
// constant and returns its constant-pool index.
func (c *Compiler) parseVariable() (byte, error) {
	idx, ok := c.ch.AddConstant(chunk.StringConstant(c.previous.Lexeme))
	if !ok {
		return 0, TooManyConstantsError{newContext(c.previous)}
	}
	return idx, nil
}

// synchronize consumes tokens until a plausible statement boundary, so
// a single syntax error does not abort the rest of the compilation.
func (c *Compiler) synchronize() {
	for c.current.Kind != token.Eof {
		if c.previous.Kind == token.Semicolon {
			return
		}
		switch c.current.Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

func (c *Compiler) emitByte(b byte) {
	c.ch.Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitConstantOp(op chunk.OpCode, idx byte) {
	c.emitOp(op)
	c.emitByte(idx)
}

func (c *Compiler) emitConstant(con chunk.Constant) error {
	idx, ok := c.ch.AddConstant(con)
	if !ok {
		return TooManyConstantsError{newContext(c.previous)}
	}
	c.emitConstantOp(chunk.OpConstant, idx)
	return nil
}
