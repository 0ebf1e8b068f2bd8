package parser

import (
	"fmt"

	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/mofmt/mofmt/runtime/token"
)

// This file is the grammar proper: one method per nonterminal, each wrapping
// its body in enter/exit so the flat event stream mirrors the recursive
// descent exactly. Kept deliberately mechanical — the interesting behaviour
// lives in the core primitives in parser.go and in the formatter that walks
// the tree these productions build.

var classPrefs = []token.Kind{
	token.Class, token.Model, token.Block, token.Type,
	token.Package, token.Record, token.Connector, token.Function,
	token.Expandable, token.Operator, token.Pure, token.Impure,
}

// A.2.1/A.2.2 Class definitions

func (p *parser) storedDefinition() {
	p.enter()
	if p.consume(token.Within) {
		if !p.at(token.Semicolon) {
			p.name()
		}
		p.expect(token.Semicolon)
	}
	for !p.atEOF() {
		p.consume(token.Final)
		p.classDefinition()
		p.expect(token.Semicolon)
	}
	p.exit(syntax.StoredDefinition)
}

func (p *parser) classDefinition() {
	p.enter()
	p.consume(token.Encapsulated)
	p.classPrefixes()
	p.classSpecifier()
	p.exit(syntax.ClassDefinition)
}

func (p *parser) classPrefixes() {
	p.enter()
	p.consume(token.Partial)
	switch p.nth(0) {
	case token.Class, token.Model, token.Block, token.Type,
		token.Package, token.Record, token.Connector, token.Function:
		p.advance()
	case token.Expandable:
		p.advance()
		p.expect(token.Connector)
	case token.Operator:
		p.advance()
		if !p.consume(token.Record) {
			p.consume(token.Function)
		}
	case token.Pure, token.Impure:
		p.advance()
		p.consume(token.Operator)
		p.expect(token.Function)
	default:
		p.advanceWithError(fmt.Sprintf("unexpected token '%s' used as a class prefix", p.nth(0)))
	}
	p.exit(syntax.ClassPrefixes)
}

func (p *parser) classSpecifier() {
	p.enter()
	switch {
	case p.at(token.Extends):
		p.longClassSpecifier()
	case p.at(token.Identifier):
		switch {
		case p.nth(1) != token.Equal:
			p.longClassSpecifier()
		case p.nth(2) == token.Der:
			p.derClassSpecifier()
		default:
			p.shortClassSpecifier()
		}
	default:
		p.advanceWithError(fmt.Sprintf("unexpected token '%s': doesn't match any type of class specifier", p.nth(0)))
	}
	p.exit(syntax.ClassSpecifier)
}

func (p *parser) longClassSpecifier() {
	p.enter()
	if p.consume(token.Extends) {
		p.expect(token.Identifier)
		if p.at(token.LParen) {
			p.classModification()
		}
	} else {
		p.expect(token.Identifier)
	}
	p.descriptionString()
	p.composition()
	p.expect(token.End)
	p.expect(token.Identifier)
	p.exit(syntax.LongClassSpecifier)
}

func (p *parser) shortClassSpecifier() {
	p.enter()
	p.expect(token.Identifier)
	p.expect(token.Equal)
	if p.consume(token.Enumeration) {
		p.expect(token.LParen)
		if !p.consume(token.Colon) && p.at(token.Identifier) {
			p.enumList()
		}
		p.expect(token.RParen)
	} else {
		p.basePrefix()
		p.typeSpecifier()
		if p.at(token.LBracket) {
			p.arraySubscripts()
		}
		if p.at(token.LParen) {
			p.classModification()
		}
	}
	p.description()
	p.exit(syntax.ShortClassSpecifier)
}

func (p *parser) derClassSpecifier() {
	p.enter()
	p.expect(token.Identifier)
	p.expect(token.Equal)
	p.expect(token.Der)
	p.expect(token.LParen)
	p.typeSpecifier()
	p.expect(token.Comma)
	p.expect(token.Identifier)
	for p.consume(token.Comma) && !p.atEOF() {
		p.expect(token.Identifier)
	}
	p.expect(token.RParen)
	p.description()
	p.exit(syntax.DerClassSpecifier)
}

func (p *parser) basePrefix() {
	p.enter()
	if !p.consume(token.Input) {
		p.consume(token.Output)
	}
	p.exit(syntax.BasePrefix)
}

func (p *parser) enumList() {
	p.enter()
	p.enumerationLiteral()
	for p.consume(token.Comma) && !p.atEOF() {
		p.enumerationLiteral()
	}
	p.exit(syntax.EnumList)
}

func (p *parser) enumerationLiteral() {
	p.enter()
	p.expect(token.Identifier)
	p.description()
	p.exit(syntax.EnumerationLiteral)
}

func (p *parser) composition() {
	p.enter()
	p.elementList()
	for !p.atAny(token.External, token.Annotation, token.End) && !p.atEOF() {
		switch p.nth(0) {
		case token.Public, token.Protected:
			p.advance()
			p.elementList()
		case token.Initial:
			switch p.nth(1) {
			case token.Equation:
				p.equationSection()
			case token.Algorithm:
				p.algorithmSection()
			default:
				p.advanceWithError(fmt.Sprintf("unexpected token '%s' following 'initial'. Expected 'equation' or 'algorithm'", p.nth(1)))
			}
		case token.Equation:
			p.equationSection()
		case token.Algorithm:
			p.algorithmSection()
		default:
			p.advanceWithError(fmt.Sprintf(
				"unexpected token '%s' after element list inside composition. Expected 'protected', 'public', 'initial', 'equation', 'algorithm', 'external', 'annotation' or 'end'.",
				p.nth(0)))
		}
	}
	if p.consume(token.External) {
		if p.at(token.String) {
			p.languageSpecification()
		}
		if p.atAny(token.Dot, token.Identifier) {
			p.externalFunctionCall()
		}
		if p.at(token.Annotation) {
			p.annotationClause()
		}
		p.expect(token.Semicolon)
	}
	if p.at(token.Annotation) {
		p.annotationClause()
		p.expect(token.Semicolon)
	}
	p.exit(syntax.Composition)
}

func (p *parser) languageSpecification() {
	p.enter()
	p.expect(token.String)
	p.exit(syntax.LanguageSpecification)
}

func (p *parser) externalFunctionCall() {
	p.enter()
	if p.nth(1) != token.LParen {
		p.componentReference()
		p.expect(token.Equal)
	}
	p.expect(token.Identifier)
	p.expect(token.LParen)
	if !p.at(token.RParen) {
		p.expressionList()
	}
	p.expect(token.RParen)
	p.exit(syntax.ExternalFunctionCall)
}

func (p *parser) elementList() {
	p.enter()
	for !p.isSectionBreaker() && !p.atEOF() {
		p.element()
		p.expect(token.Semicolon)
	}
	p.exit(syntax.ElementList)
}

func (p *parser) element() {
	p.enter()
	switch {
	case p.at(token.Import):
		p.importClause()
	case p.at(token.Extends):
		p.extendsClause()
	default:
		p.consume(token.Redeclare)
		p.consume(token.Final)
		p.consume(token.Inner)
		p.consume(token.Outer)
		if p.consume(token.Replaceable) {
			if p.atAny(classPrefs...) || p.at(token.Encapsulated) {
				p.classDefinition()
			} else {
				p.componentClause()
			}
			if p.at(token.Constrainedby) {
				p.constrainingClause()
				p.description()
			}
		} else if p.atAny(classPrefs...) || p.at(token.Encapsulated) {
			p.classDefinition()
		} else {
			p.componentClause()
		}
	}
	p.exit(syntax.Element)
}

func (p *parser) importClause() {
	p.enter()
	p.expect(token.Import)
	if p.nth(1) == token.Equal {
		p.expect(token.Identifier)
		p.advance()
		p.name()
	} else {
		p.name()
		if !p.consume(token.DotStar) && p.consume(token.Dot) {
			p.expect(token.LCurly)
			p.importList()
			p.expect(token.RCurly)
		}
	}
	p.description()
	p.exit(syntax.ImportClause)
}

func (p *parser) importList() {
	p.enter()
	p.expect(token.Identifier)
	for p.consume(token.Comma) && !p.atEOF() {
		p.expect(token.Identifier)
	}
	p.exit(syntax.ImportList)
}

// A.2.3 Extends

func (p *parser) extendsClause() {
	p.enter()
	p.expect(token.Extends)
	p.typeSpecifier()
	if p.at(token.LParen) {
		p.classOrInheritanceModification()
	}
	if p.at(token.Annotation) {
		p.annotationClause()
	}
	p.exit(syntax.ExtendsClause)
}

func (p *parser) constrainingClause() {
	p.enter()
	p.expect(token.Constrainedby)
	p.typeSpecifier()
	if p.at(token.LParen) {
		p.classModification()
	}
	p.exit(syntax.ConstrainingClause)
}

func (p *parser) classOrInheritanceModification() {
	p.enter()
	p.expect(token.LParen)
	if !p.consume(token.RParen) {
		p.argumentOrInheritanceModificationList()
		p.expect(token.RParen)
	}
	p.exit(syntax.ClassOrInheritanceModification)
}

func (p *parser) argumentOrInheritanceModificationList() {
	p.enter()
	if p.at(token.Break) {
		p.inheritanceModification()
	} else {
		p.argument()
	}
	for p.consume(token.Comma) && !p.atEOF() {
		if p.at(token.Break) {
			p.inheritanceModification()
		} else {
			p.argument()
		}
	}
	p.exit(syntax.ArgumentOrInheritanceModificationList)
}

func (p *parser) inheritanceModification() {
	p.enter()
	p.expect(token.Break)
	if p.at(token.Connect) {
		p.connectEquation()
	} else {
		p.expect(token.Identifier)
	}
	p.exit(syntax.InheritanceModification)
}

// A.2.4 Component clause

func (p *parser) componentClause() {
	p.enter()
	p.typePrefix()
	p.typeSpecifier()
	if p.at(token.LBracket) {
		p.arraySubscripts()
	}
	p.componentList()
	p.exit(syntax.ComponentClause)
}

func (p *parser) typePrefix() {
	p.enter()
	if !p.consume(token.Flow) {
		p.consume(token.Stream)
	}
	if !p.consume(token.Discrete) && !p.consume(token.Parameter) {
		p.consume(token.Constant)
	}
	if !p.consume(token.Input) {
		p.consume(token.Output)
	}
	p.exit(syntax.TypePrefix)
}

func (p *parser) componentList() {
	p.enter()
	p.componentDeclaration()
	for p.consume(token.Comma) && !p.atEOF() {
		p.componentDeclaration()
	}
	p.exit(syntax.ComponentList)
}

func (p *parser) componentDeclaration() {
	p.enter()
	p.declaration()
	if p.at(token.If) {
		p.conditionAttribute()
	}
	p.description()
	p.exit(syntax.ComponentDeclaration)
}

func (p *parser) conditionAttribute() {
	p.enter()
	p.expect(token.If)
	p.expression()
	p.exit(syntax.ConditionAttribute)
}

func (p *parser) declaration() {
	p.enter()
	p.expect(token.Identifier)
	if p.at(token.LBracket) {
		p.arraySubscripts()
	}
	if p.atAny(token.LParen, token.Equal, token.Assign) {
		p.modification()
	}
	p.exit(syntax.Declaration)
}

// A.2.5 Modification

func (p *parser) modification() {
	p.enter()
	if p.atAny(token.Equal, token.Assign) {
		p.advance()
		p.modificationExpression()
	} else {
		p.classModification()
		if p.consume(token.Equal) {
			p.modificationExpression()
		}
	}
	p.exit(syntax.Modification)
}

func (p *parser) modificationExpression() {
	p.enter()
	if !p.consume(token.Break) {
		p.expression()
	}
	p.exit(syntax.ModificationExpression)
}

func (p *parser) classModification() {
	p.enter()
	p.expect(token.LParen)
	if !p.consume(token.RParen) {
		p.argumentList()
		p.expect(token.RParen)
	}
	p.exit(syntax.ClassModification)
}

func (p *parser) argumentList() {
	p.enter()
	p.argument()
	for p.consume(token.Comma) && !p.atEOF() {
		p.argument()
	}
	p.exit(syntax.ArgumentList)
}

func (p *parser) argument() {
	p.enter()
	if p.at(token.Redeclare) {
		p.elementRedeclaration()
	} else {
		p.elementModificationOrReplaceable()
	}
	p.exit(syntax.Argument)
}

func (p *parser) elementModificationOrReplaceable() {
	p.enter()
	p.consume(token.Each)
	p.consume(token.Final)
	if p.at(token.Replaceable) {
		p.elementReplaceable()
	} else {
		p.elementModification()
	}
	p.exit(syntax.ElementModificationOrReplaceable)
}

func (p *parser) elementModification() {
	p.enter()
	p.name()
	if p.atAny(token.LParen, token.Equal, token.Assign) {
		p.modification()
	}
	p.descriptionString()
	p.exit(syntax.ElementModification)
}

func (p *parser) elementRedeclaration() {
	p.enter()
	p.expect(token.Redeclare)
	p.consume(token.Each)
	p.consume(token.Final)
	switch {
	case p.atAny(classPrefs...):
		p.shortClassDefinition()
	case p.at(token.Replaceable):
		p.elementReplaceable()
	default:
		p.componentClause1()
	}
	p.exit(syntax.ElementRedeclaration)
}

func (p *parser) elementReplaceable() {
	p.enter()
	p.expect(token.Replaceable)
	if p.atAny(classPrefs...) {
		p.shortClassDefinition()
	} else {
		p.componentClause1()
	}
	if p.at(token.Constrainedby) {
		p.constrainingClause()
	}
	p.exit(syntax.ElementReplaceable)
}

func (p *parser) componentClause1() {
	p.enter()
	p.typePrefix()
	p.typeSpecifier()
	p.componentDeclaration1()
	p.exit(syntax.ComponentClause1)
}

func (p *parser) componentDeclaration1() {
	p.enter()
	p.declaration()
	p.description()
	p.exit(syntax.ComponentDeclaration1)
}

func (p *parser) shortClassDefinition() {
	p.enter()
	p.classPrefixes()
	p.shortClassSpecifier()
	p.exit(syntax.ShortClassDefinition)
}

// A.2.6 Equations

func (p *parser) equationSection() {
	p.enter()
	p.consume(token.Initial)
	p.expect(token.Equation)
	for !p.isSectionBreaker() && !p.atEOF() {
		p.equation()
		p.expect(token.Semicolon)
	}
	p.exit(syntax.EquationSection)
}

func (p *parser) algorithmSection() {
	p.enter()
	p.consume(token.Initial)
	p.expect(token.Algorithm)
	for !p.isSectionBreaker() && !p.atEOF() {
		p.statement()
		p.expect(token.Semicolon)
	}
	p.exit(syntax.AlgorithmSection)
}

func (p *parser) equation() {
	p.enter()
	switch p.nth(0) {
	case token.If:
		p.ifEquation()
	case token.For:
		p.forEquation()
	case token.When:
		p.whenEquation()
	case token.Connect:
		p.connectEquation()
	default:
		// Simplified: the grammar only allows `component-reference
		// func-call-args` here, not every simple-expression, but
		// disambiguating that requires more lookahead than is worth it.
		p.simpleExpression()
		if p.consume(token.Equal) {
			p.expression()
		}
	}
	p.description()
	p.exit(syntax.Equation)
}

func (p *parser) statement() {
	p.enter()
	switch p.nth(0) {
	case token.If:
		p.ifStatement()
	case token.For:
		p.forStatement()
	case token.While:
		p.whileStatement()
	case token.When:
		p.whenStatement()
	case token.Break, token.Return:
		p.advance()
	case token.LParen:
		p.advance()
		p.outputExpressionList()
		p.expect(token.RParen)
		p.expect(token.Assign)
		p.componentReference()
		p.functionCallArgs()
	default:
		p.componentReference()
		if p.consume(token.Assign) {
			p.expression()
		} else {
			p.functionCallArgs()
		}
	}
	p.description()
	p.exit(syntax.Statement)
}

func (p *parser) ifEquation() {
	p.enter()
	p.expect(token.If)
	p.expression()
	p.expect(token.Then)
	for !p.atAny(token.ElseIf, token.Else, token.End) && !p.atEOF() {
		p.equation()
		p.expect(token.Semicolon)
	}
	for !p.atAny(token.Else, token.End) && !p.atEOF() {
		p.expect(token.ElseIf)
		p.expression()
		p.expect(token.Then)
		for !p.atAny(token.ElseIf, token.Else, token.End) && !p.atEOF() {
			p.equation()
			p.expect(token.Semicolon)
		}
	}
	if p.consume(token.Else) {
		for !p.at(token.End) && !p.atEOF() {
			p.equation()
			p.expect(token.Semicolon)
		}
	}
	p.expect(token.End)
	p.expect(token.If)
	p.exit(syntax.IfEquation)
}

func (p *parser) ifStatement() {
	p.enter()
	p.expect(token.If)
	p.expression()
	p.expect(token.Then)
	for !p.atAny(token.ElseIf, token.Else, token.End) && !p.atEOF() {
		p.statement()
		p.expect(token.Semicolon)
	}
	for !p.atAny(token.Else, token.End) && !p.atEOF() {
		p.expect(token.ElseIf)
		p.expression()
		p.expect(token.Then)
		for !p.atAny(token.ElseIf, token.Else, token.End) && !p.atEOF() {
			p.statement()
			p.expect(token.Semicolon)
		}
	}
	if p.consume(token.Else) {
		for !p.at(token.End) && !p.atEOF() {
			p.statement()
			p.expect(token.Semicolon)
		}
	}
	p.expect(token.End)
	p.expect(token.If)
	p.exit(syntax.IfStatement)
}

func (p *parser) forEquation() {
	p.enter()
	p.expect(token.For)
	p.forIndices()
	p.expect(token.Loop)
	for !p.at(token.End) && !p.atEOF() {
		p.equation()
		p.expect(token.Semicolon)
	}
	p.expect(token.End)
	p.expect(token.For)
	p.exit(syntax.ForEquation)
}

func (p *parser) forStatement() {
	p.enter()
	p.expect(token.For)
	p.forIndices()
	p.expect(token.Loop)
	for !p.at(token.End) && !p.atEOF() {
		p.statement()
		p.expect(token.Semicolon)
	}
	p.expect(token.End)
	p.expect(token.For)
	p.exit(syntax.ForStatement)
}

func (p *parser) forIndices() {
	p.enter()
	p.forIndex()
	for p.consume(token.Comma) && !p.atEOF() {
		p.forIndex()
	}
	p.exit(syntax.ForIndices)
}

func (p *parser) forIndex() {
	p.enter()
	p.expect(token.Identifier)
	if p.consume(token.In) {
		p.expression()
	}
	p.exit(syntax.ForIndex)
}

func (p *parser) whileStatement() {
	p.enter()
	p.expect(token.While)
	p.expression()
	p.expect(token.Loop)
	for !p.at(token.End) && !p.atEOF() {
		p.statement()
		p.expect(token.Semicolon)
	}
	p.expect(token.End)
	p.expect(token.While)
	p.exit(syntax.WhileStatement)
}

func (p *parser) whenEquation() {
	p.enter()
	p.expect(token.When)
	p.expression()
	p.expect(token.Then)
	for !p.atAny(token.ElseWhen, token.End) && !p.atEOF() {
		p.equation()
		p.expect(token.Semicolon)
	}
	for !p.at(token.End) && !p.atEOF() {
		p.expect(token.ElseWhen)
		p.expression()
		p.expect(token.Then)
		for !p.atAny(token.ElseWhen, token.End) && !p.atEOF() {
			p.equation()
			p.expect(token.Semicolon)
		}
	}
	p.expect(token.End)
	p.expect(token.When)
	p.exit(syntax.WhenEquation)
}

func (p *parser) whenStatement() {
	p.enter()
	p.expect(token.When)
	p.expression()
	p.expect(token.Then)
	for !p.atAny(token.ElseWhen, token.End) && !p.atEOF() {
		p.statement()
		p.expect(token.Semicolon)
	}
	for !p.at(token.End) && !p.atEOF() {
		p.expect(token.ElseWhen)
		p.expression()
		p.expect(token.Then)
		for !p.atAny(token.ElseWhen, token.End) && !p.atEOF() {
			p.statement()
			p.expect(token.Semicolon)
		}
	}
	p.expect(token.End)
	p.expect(token.When)
	p.exit(syntax.WhenStatement)
}

func (p *parser) connectEquation() {
	p.enter()
	p.expect(token.Connect)
	p.expect(token.LParen)
	p.componentReference()
	p.expect(token.Comma)
	p.componentReference()
	p.expect(token.RParen)
	p.exit(syntax.ConnectEquation)
}

// A.2.7 Expressions

func (p *parser) expression() {
	p.enter()
	if p.at(token.If) {
		p.advance()
		p.expression()
		p.expect(token.Then)
		p.expression()
		for !p.at(token.Else) && !p.atEOF() {
			p.expect(token.ElseIf)
			p.expression()
			p.expect(token.Then)
			p.expression()
		}
		p.expect(token.Else)
		p.expression()
	} else {
		p.simpleExpression()
	}
	p.exit(syntax.Expression)
}

func (p *parser) simpleExpression() {
	p.enter()
	p.logicalExpression()
	if p.consume(token.Colon) {
		p.logicalExpression()
		if p.consume(token.Colon) {
			p.logicalExpression()
		}
	}
	p.exit(syntax.SimpleExpression)
}

func (p *parser) logicalExpression() {
	p.enter()
	p.logicalTerm()
	for p.consume(token.Or) && !p.atEOF() {
		p.logicalTerm()
	}
	p.exit(syntax.LogicalExpression)
}

func (p *parser) logicalTerm() {
	p.enter()
	p.logicalFactor()
	for p.consume(token.And) && !p.atEOF() {
		p.logicalFactor()
	}
	p.exit(syntax.LogicalTerm)
}

func (p *parser) logicalFactor() {
	p.enter()
	p.consume(token.Not)
	p.relation()
	p.exit(syntax.LogicalFactor)
}

var relationalOperators = []token.Kind{token.Les, token.Leq, token.Gre, token.Geq, token.Eq, token.Neq}

func (p *parser) relation() {
	p.enter()
	p.arithmeticExpression()
	if p.atAny(relationalOperators...) {
		p.relationalOperator()
		p.arithmeticExpression()
	}
	p.exit(syntax.Relation)
}

func (p *parser) relationalOperator() {
	p.enter()
	p.advance() // relation already confirmed the current token is a relop
	p.exit(syntax.RelationalOperator)
}

var addOperators = []token.Kind{token.Plus, token.DotPlus, token.Minus, token.DotMinus}

func (p *parser) arithmeticExpression() {
	p.enter()
	if p.atAny(addOperators...) {
		p.addOperator()
	}
	p.term()
	for p.atAny(addOperators...) && !p.atEOF() {
		p.addOperator()
		p.term()
	}
	p.exit(syntax.ArithmeticExpression)
}

func (p *parser) addOperator() {
	p.enter()
	p.advance() // arithmeticExpression already confirmed the current token is an addop
	p.exit(syntax.AddOperator)
}

var mulOperators = []token.Kind{token.Star, token.DotStar, token.Slash, token.DotSlash}

func (p *parser) term() {
	p.enter()
	p.factor()
	for p.atAny(mulOperators...) && !p.atEOF() {
		p.mulOperator()
		p.factor()
	}
	p.exit(syntax.Term)
}

func (p *parser) mulOperator() {
	p.enter()
	p.advance() // term already confirmed the current token is a mulop
	p.exit(syntax.MulOperator)
}

func (p *parser) factor() {
	p.enter()
	p.primary()
	if p.atAny(token.Flex, token.DotFlex) {
		p.advance()
		p.primary()
	}
	p.exit(syntax.Factor)
}

func (p *parser) primary() {
	p.enter()
	switch p.nth(0) {
	case token.UReal, token.UInt, token.String, token.Bool, token.End:
		p.advance()
	case token.LParen:
		p.advance()
		p.outputExpressionList()
		p.expect(token.RParen)
		if p.at(token.LBracket) {
			p.arraySubscripts()
		}
	case token.LBracket:
		p.advance()
		p.expressionList()
		for p.consume(token.Semicolon) && !p.atEOF() {
			p.expressionList()
		}
		p.expect(token.RBracket)
	case token.LCurly:
		p.advance()
		p.arrayArguments()
		p.expect(token.RCurly)
	case token.Der, token.Initial, token.Pure:
		p.advance()
		p.functionCallArgs()
	default:
		p.componentReference()
		if p.at(token.LParen) {
			p.functionCallArgs()
		}
	}
	p.exit(syntax.Primary)
}

func (p *parser) typeSpecifier() {
	p.enter()
	p.consume(token.Dot)
	p.name()
	p.exit(syntax.TypeSpecifier)
}

func (p *parser) name() {
	p.enter()
	p.expect(token.Identifier)
dotLoop:
	for p.at(token.Dot) && !p.atEOF() {
		switch p.nth(1) {
		case token.Identifier:
			p.advance()
			p.advance()
		case token.LCurly:
			break dotLoop
		default:
			p.advanceWithError(fmt.Sprintf("unexpected token '%s' after '.'. Expected identifier or '{'", p.nth(1)))
		}
	}
	p.exit(syntax.Name)
}

func (p *parser) componentReference() {
	p.enter()
	p.consume(token.Dot)
	p.expect(token.Identifier)
	if p.at(token.LBracket) {
		p.arraySubscripts()
	}
	for p.consume(token.Dot) && !p.atEOF() {
		p.expect(token.Identifier)
		if p.at(token.LBracket) {
			p.arraySubscripts()
		}
	}
	p.exit(syntax.ComponentReference)
}

// resultReference is unused by any production reachable from
// storedDefinition in the published grammar, but kept for parity with the
// grammar's algorithm-section result-reference rule (der(x, n) for when
// equations inside functions); retained here rather than dropped silently.
func (p *parser) resultReference() {
	p.enter()
	if p.consume(token.Der) {
		p.expect(token.LParen)
		p.componentReference()
		if p.consume(token.Comma) {
			p.expect(token.UInt)
		}
		p.expect(token.RParen)
	} else {
		p.componentReference()
	}
	p.exit(syntax.ResultReference)
}

func (p *parser) functionCallArgs() {
	p.enter()
	p.expect(token.LParen)
	if !p.consume(token.RParen) {
		p.functionArguments()
		p.expect(token.RParen)
	}
	p.exit(syntax.FunctionCallArgs)
}

func (p *parser) functionArguments() {
	p.enter()
	switch {
	case p.nth(1) == token.Equal:
		p.namedArguments()
	case !p.at(token.Function):
		p.expression()
		if p.consume(token.Comma) {
			p.functionArgumentsNonFirst()
		} else if p.consume(token.For) {
			p.forIndices()
		}
	default:
		p.functionPartialApplication()
		if p.consume(token.Comma) {
			p.functionArgumentsNonFirst()
		}
	}
	p.exit(syntax.FunctionArguments)
}

func (p *parser) functionArgumentsNonFirst() {
	p.enter()
	if p.nth(1) == token.Equal {
		p.namedArguments()
	} else {
		p.functionArgument()
		if p.consume(token.Comma) {
			p.functionArgumentsNonFirst()
		}
	}
	p.exit(syntax.FunctionArgumentsNonFirst)
}

func (p *parser) arrayArguments() {
	p.enter()
	p.expression()
	if p.consume(token.Comma) {
		p.arrayArgumentsNonFirst()
	} else if p.consume(token.For) {
		p.forIndices()
	}
	p.exit(syntax.ArrayArguments)
}

func (p *parser) arrayArgumentsNonFirst() {
	p.enter()
	p.expression()
	if p.consume(token.Comma) {
		p.arrayArgumentsNonFirst()
	}
	p.exit(syntax.ArrayArgumentsNonFirst)
}

func (p *parser) namedArguments() {
	p.enter()
	p.namedArgument()
	if p.consume(token.Comma) {
		p.namedArguments()
	}
	p.exit(syntax.NamedArguments)
}

func (p *parser) namedArgument() {
	p.enter()
	p.expect(token.Identifier)
	p.expect(token.Equal)
	p.functionArgument()
	p.exit(syntax.NamedArgument)
}

func (p *parser) functionArgument() {
	p.enter()
	if p.at(token.Function) {
		p.functionPartialApplication()
	} else {
		p.expression()
	}
	p.exit(syntax.FunctionArgument)
}

func (p *parser) functionPartialApplication() {
	p.enter()
	p.expect(token.Function)
	p.typeSpecifier()
	p.expect(token.LParen)
	if p.at(token.Identifier) {
		p.namedArguments()
	}
	p.expect(token.RParen)
	p.exit(syntax.FunctionPartialApplication)
}

func (p *parser) outputExpressionList() {
	p.enter()
	// Only ever called just after '(', so scanning for ')' disambiguates
	// an empty list from a real expression list.
	if !p.at(token.RParen) {
		if !p.atAny(token.RParen, token.Comma) {
			p.expression()
		}
		for p.consume(token.Comma) && !p.atEOF() {
			if !p.atAny(token.RParen, token.Comma) {
				p.expression()
			}
		}
	}
	p.exit(syntax.OutputExpressionList)
}

func (p *parser) expressionList() {
	p.enter()
	p.expression()
	for p.consume(token.Comma) && !p.atEOF() {
		p.expression()
	}
	p.exit(syntax.ExpressionList)
}

func (p *parser) arraySubscripts() {
	p.enter()
	p.expect(token.LBracket)
	p.subscript()
	for p.consume(token.Comma) && !p.atEOF() {
		p.subscript()
	}
	p.expect(token.RBracket)
	p.exit(syntax.ArraySubscripts)
}

func (p *parser) subscript() {
	p.enter()
	if !p.consume(token.Colon) {
		p.expression()
	}
	p.exit(syntax.Subscript)
}

func (p *parser) description() {
	p.enter()
	p.descriptionString()
	if p.at(token.Annotation) {
		p.annotationClause()
	}
	p.exit(syntax.Description)
}

func (p *parser) descriptionString() {
	p.enter()
	if p.consume(token.String) {
		for p.consume(token.Plus) && !p.atEOF() {
			p.expect(token.String)
		}
	}
	p.exit(syntax.DescriptionString)
}

func (p *parser) annotationClause() {
	p.enter()
	p.expect(token.Annotation)
	p.classModification()
	p.exit(syntax.AnnotationClause)
}
