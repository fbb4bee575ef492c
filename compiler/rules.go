package compiler

import "nilan/token"

// precedence is the Pratt parser's precedence ladder, ascending.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

// higher returns the next precedence level up, saturating at precPrimary.
func (p precedence) higher() precedence {
	if p >= precPrimary {
		return precPrimary
	}
	return p + 1
}

// parseFn is a prefix or infix parsing rule; canAssign is only meaningful
// to prefix rules (variable) that may be assignment targets.
type parseFn func(c *Compiler, canAssign bool) error

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is a dense array keyed by token.Kind ordinal, per the design note
// preferring array dispatch over a map for the hot parsing path. Entries
// left zero-valued have no prefix/infix rule and precNone precedence.
var rules [token.KindCount]parseRule

func init() {
	rules[token.LeftParen] = parseRule{prefix: (*Compiler).grouping, precedence: precNone}
	rules[token.Minus] = parseRule{prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm}
	rules[token.Plus] = parseRule{infix: (*Compiler).binary, precedence: precTerm}
	rules[token.Slash] = parseRule{infix: (*Compiler).binary, precedence: precFactor}
	rules[token.Star] = parseRule{infix: (*Compiler).binary, precedence: precFactor}
	rules[token.Bang] = parseRule{prefix: (*Compiler).unary, precedence: precNone}
	rules[token.BangEqual] = parseRule{infix: (*Compiler).binary, precedence: precEquality}
	rules[token.EqualEqual] = parseRule{infix: (*Compiler).binary, precedence: precEquality}
	rules[token.Greater] = parseRule{infix: (*Compiler).binary, precedence: precComparison}
	rules[token.GreaterEqual] = parseRule{infix: (*Compiler).binary, precedence: precComparison}
	rules[token.Less] = parseRule{infix: (*Compiler).binary, precedence: precComparison}
	rules[token.LessEqual] = parseRule{infix: (*Compiler).binary, precedence: precComparison}
	rules[token.Number] = parseRule{prefix: (*Compiler).number, precedence: precNone}
	rules[token.String] = parseRule{prefix: (*Compiler).string, precedence: precNone}
	rules[token.Identifier] = parseRule{prefix: (*Compiler).variable, precedence: precNone}
	rules[token.False] = parseRule{prefix: (*Compiler).literal, precedence: precNone}
	rules[token.Nil] = parseRule{prefix: (*Compiler).literal, precedence: precNone}
	rules[token.True] = parseRule{prefix: (*Compiler).literal, precedence: precNone}
}

func ruleFor(kind token.Kind) parseRule {
	return rules[kind]
}
