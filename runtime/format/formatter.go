package format

import (
	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/mofmt/mofmt/runtime/token"
)

// Format walks tree from its root and returns the marker stream describing
// its layout.
func Format(tree *syntax.Tree) []Marker {
	f := newFormatter(tree)
	root := tree.Root()
	switch tree.Kind(root) {
	case syntax.StoredDefinition:
		f.storedDefinition(root)
	case syntax.ClassDefinition:
		f.classDefinition(root)
	case syntax.ClassPrefixes:
		f.classPrefixes(root)
	case syntax.ClassSpecifier:
		f.classSpecifier(root)
	case syntax.LongClassSpecifier:
		f.longClassSpecifier(root)
	case syntax.ShortClassSpecifier:
		f.shortClassSpecifier(root)
	case syntax.DerClassSpecifier:
		f.derClassSpecifier(root)
	case syntax.BasePrefix:
		f.basePrefix(root)
	case syntax.EnumList:
		f.enumList(root, false)
	case syntax.EnumerationLiteral:
		f.enumerationLiteral(root)
	case syntax.Composition:
		f.composition(root)
	case syntax.LanguageSpecification:
		f.languageSpecification(root)
	case syntax.ExternalFunctionCall:
		f.externalFunctionCall(root)
	case syntax.ElementList:
		f.elementList(root)
	case syntax.Element:
		f.element(root)
	case syntax.ImportClause:
		f.importClause(root)
	case syntax.ImportList:
		f.importList(root, false)
	case syntax.ExtendsClause:
		f.extendsClause(root)
	case syntax.ConstrainingClause:
		f.constrainingClause(root)
	case syntax.ClassOrInheritanceModification:
		f.classOrInheritanceModification(root)
	case syntax.ArgumentOrInheritanceModificationList:
		f.argumentOrInheritanceModificationList(root, false)
	case syntax.InheritanceModification:
		f.inheritanceModification(root)
	case syntax.ComponentClause:
		f.componentClause(root)
	case syntax.TypePrefix:
		f.typePrefix(root)
	case syntax.ComponentList:
		f.componentList(root)
	case syntax.ComponentDeclaration:
		f.componentDeclaration(root)
	case syntax.ConditionAttribute:
		f.conditionAttribute(root)
	case syntax.Declaration:
		f.declaration(root)
	case syntax.Modification:
		f.modification(root)
	case syntax.ModificationExpression:
		f.modificationExpression(root)
	case syntax.ClassModification:
		f.classModification(root)
	case syntax.ArgumentList:
		f.argumentList(root, false)
	case syntax.Argument:
		f.argument(root)
	case syntax.ElementModificationOrReplaceable:
		f.elementModificationOrReplaceable(root)
	case syntax.ElementModification:
		f.elementModification(root)
	case syntax.ElementRedeclaration:
		f.elementRedeclaration(root)
	case syntax.ElementReplaceable:
		f.elementReplaceable(root)
	case syntax.ComponentClause1:
		f.componentClause1(root)
	case syntax.ComponentDeclaration1:
		f.componentDeclaration1(root)
	case syntax.ShortClassDefinition:
		f.shortClassDefinition(root)
	case syntax.EquationSection:
		f.equationSection(root)
	case syntax.AlgorithmSection:
		f.algorithmSection(root)
	case syntax.Equation:
		f.equation(root)
	case syntax.Statement:
		f.statement(root)
	case syntax.IfEquation:
		f.ifEquation(root)
	case syntax.IfStatement:
		f.ifStatement(root)
	case syntax.ForEquation:
		f.forEquation(root)
	case syntax.ForStatement:
		f.forStatement(root)
	case syntax.ForIndices:
		f.forIndices(root)
	case syntax.ForIndex:
		f.forIndex(root)
	case syntax.WhileStatement:
		f.whileStatement(root)
	case syntax.WhenEquation:
		f.whenEquation(root)
	case syntax.WhenStatement:
		f.whenStatement(root)
	case syntax.ConnectEquation:
		f.connectEquation(root)
	case syntax.Expression:
		f.expression(root, false, false)
	case syntax.SimpleExpression:
		f.simpleExpression(root, false)
	case syntax.LogicalExpression:
		f.logicalExpression(root, false)
	case syntax.LogicalTerm:
		f.logicalTerm(root, false)
	case syntax.LogicalFactor:
		f.logicalFactor(root, false)
	case syntax.Relation:
		f.relation(root, false)
	case syntax.RelationalOperator:
		f.relationalOperator(root)
	case syntax.ArithmeticExpression:
		f.arithmeticExpression(root, false)
	case syntax.AddOperator:
		f.addOperator(root)
	case syntax.Term:
		f.term(root, false)
	case syntax.MulOperator:
		f.mulOperator(root)
	case syntax.Factor:
		f.factor(root, false)
	case syntax.Primary:
		f.primary(root, false)
	case syntax.TypeSpecifier:
		f.typeSpecifier(root)
	case syntax.Name:
		f.name(root)
	case syntax.ComponentReference:
		f.componentReference(root)
	case syntax.ResultReference:
		f.resultReference(root)
	case syntax.FunctionCallArgs:
		f.functionCallArgs(root)
	case syntax.FunctionArguments:
		f.functionArguments(root, false)
	case syntax.FunctionArgumentsNonFirst:
		f.functionArgumentsNonFirst(root, false)
	case syntax.ArrayArguments:
		f.arrayArguments(root, false)
	case syntax.ArrayArgumentsNonFirst:
		f.arrayArgumentsNonFirst(root, false)
	case syntax.NamedArguments:
		f.namedArguments(root, false)
	case syntax.NamedArgument:
		f.namedArgument(root)
	case syntax.FunctionArgument:
		f.functionArgument(root)
	case syntax.FunctionPartialApplication:
		f.functionPartialApplication(root)
	case syntax.OutputExpressionList:
		f.outputExpressionList(root, false)
	case syntax.ExpressionList:
		f.expressionList(root, false)
	case syntax.ArraySubscripts:
		f.arraySubscripts(root)
	case syntax.Subscript:
		f.subscript(root)
	case syntax.Description:
		f.description(root)
	case syntax.DescriptionString:
		f.descriptionString(root)
	case syntax.AnnotationClause:
		f.annotationClause(root)
	case syntax.Error:
		// No layout for an unrecoverable parse.
	}
	return f.markers
}

// formatter is the walker's mutable state: the marker stream under
// construction, a forward-only cursor over the comment tokens, and enough
// of the previously emitted token to decide blank-line and break placement.
type formatter struct {
	tree     *syntax.Tree
	markers  []Marker
	comments []token.ID
	cpos     int
	prevKind token.Kind
	prevLine int
	prevTok  token.ID
}

func newFormatter(tree *syntax.Tree) *formatter {
	return &formatter{
		tree:     tree,
		comments: tree.Tokens().Comments(),
		prevKind: token.EOF,
		prevLine: 1,
		prevTok:  tree.Tokens().First(),
	}
}

func (f *formatter) push(k MarkerKind)             { f.markers = append(f.markers, Marker{Kind: k}) }
func (f *formatter) pushToken(tok token.ID)         { f.markers = append(f.markers, Marker{Kind: Token, Tok: tok}) }

// breakOrSpace inserts a single space when isMultiline is false, or a
// blankIllegal break before tok (subject to comment re-attachment) when it
// is true. The caller decides isMultiline; no source lines are compared here.
func (f *formatter) breakOrSpace(isMultiline bool, tok token.ID) {
	if isMultiline {
		f.handleBreak(tok, blankIllegal)
	} else {
		f.push(Space)
	}
}

// handleBreak re-attaches any comments lying between the previously emitted
// token and tok, then inserts the break/blank marker appropriate for
// policy. Inline comments (on the previous line) are emitted immediately
// after a Space; comments on their own line get a Break/Blank ahead of them
// matching the source's existing vertical gap.
func (f *formatter) handleBreak(tok token.ID, policy blank) {
	inlines, comments := f.commentsBefore(tok)
	for _, c := range inlines {
		if len(f.markers) > 0 {
			f.push(Space)
		}
		f.pushToken(c)
	}
	if policy == blankRequired {
		f.push(Blank)
	}
	line := f.prevLine
	for _, c := range comments {
		switch {
		case policy == blankRequired:
			if line > f.prevLine {
				if f.tree.Tokens().Start(c).Line-line > 1 {
					f.push(Blank)
				} else {
					f.push(Break)
				}
			}
		case f.tree.Tokens().Start(c).Line-line > 1:
			f.push(Blank)
		default:
			f.push(Break)
		}
		f.pushToken(c)
		line = f.tree.Tokens().End(c).Line
	}
	switch policy {
	case blankLegal:
		if f.tree.Tokens().Start(tok).Line-line > 1 {
			f.push(Blank)
		} else {
			f.push(Break)
		}
	case blankIllegal:
		f.push(Break)
	default:
		if line > f.prevLine {
			if f.tree.Tokens().Start(tok).Line-line > 1 {
				f.push(Blank)
			} else {
				f.push(Break)
			}
		}
	}
}

// commentsBefore drains every comment token preceding tok from the cursor,
// splitting them into those sharing the previous token's line (inline) and
// those that start their own line.
func (f *formatter) commentsBefore(tok token.ID) (inlines, comments []token.ID) {
	for f.cpos < len(f.comments) {
		c := f.comments[f.cpos]
		if c >= tok {
			break
		}
		if f.tree.Tokens().Start(c).Line == f.prevLine {
			inlines = append(inlines, c)
		} else {
			comments = append(comments, c)
		}
		f.cpos++
	}
	return inlines, comments
}

// handleToken discards any comments before tok (handleBreak is the only
// place comments may surface) and emits the token itself, updating the
// trailing-context fields every other helper reads.
func (f *formatter) handleToken(tok token.ID) {
	f.commentsBefore(tok)
	f.prevLine = f.tree.Tokens().End(tok).Line
	f.prevKind = f.tree.Tokens().Kind(tok)
	f.prevTok = tok
	f.pushToken(tok)
}

// formatErrorSubtree passes an Error subtree through with neutral spacing
// instead of applying whatever production was expected at that position,
// so a recovered parse error never loses its token.
func (f *formatter) formatErrorSubtree(id syntax.TreeID) {
	for i, c := range f.tree.Children(id) {
		if i > 0 {
			f.push(Space)
		}
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			f.formatErrorSubtree(c.Tree())
		}
	}
}

// parenMultiline reports whether the closing token of kind close that
// follows the first token of kind open among children starts on a later
// line — the pattern used to decide whether a delimited, comma-separated
// construct should be laid out one entry per line.
func parenMultiline(tree *syntax.Tree, children []syntax.Child, open, close token.Kind) bool {
	openIdx := -1
	for i, c := range children {
		if !c.IsToken() {
			continue
		}
		k := tree.Tokens().Kind(c.Token())
		if openIdx < 0 {
			if k == open {
				openIdx = i
			}
			continue
		}
		if k == close {
			return tree.Tokens().Start(c.Token()).Line > tree.Tokens().Start(children[openIdx].Token()).Line
		}
	}
	return false
}

