package format

import (
	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/mofmt/mofmt/runtime/token"
)

// Each function below lays out one grammar production. They mirror the
// shape of the tree walked by runtime/parser's productions: read children
// in order, emit Token/Space/Break/Blank/Indent/Dedent markers, recurse into
// subtrees. The expression tower (expression down to primary) also threads
// a wrapped bool bottom-up: once a binary operator's right operand starts
// on a later source line, the tower opens an Indent that its caller is
// responsible for closing.

func (f *formatter) storedDefinition(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch kind {
			case token.Final:
				f.handleBreak(tok, blankLegal)
			case token.Within:
				if tok > f.tree.Tokens().First() {
					f.handleBreak(tok, blankIllegal)
				}
			}
			f.handleToken(tok)
			if kind == token.Final || kind == token.Within {
				f.push(Space)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Name:
				f.name(sub)
			case syntax.ClassDefinition:
				if f.prevKind == token.Semicolon {
					f.handleBreak(f.tree.Start(sub), blankLegal)
				}
				f.classDefinition(sub)
			}
		}
	}
}

func (f *formatter) classDefinition(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ClassPrefixes:
				f.classPrefixes(sub)
			case syntax.ClassSpecifier:
				f.push(Space)
				f.classSpecifier(sub)
			}
		}
	}
}

func (f *formatter) classPrefixes(id syntax.TreeID) {
	for i, c := range f.tree.Children(id) {
		if i > 0 {
			f.push(Space)
		}
		if c.IsToken() {
			f.handleToken(c.Token())
		} else if f.tree.Kind(c.Tree()) == syntax.Error {
			f.formatErrorSubtree(c.Tree())
		}
	}
}

func (f *formatter) classSpecifier(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.LongClassSpecifier:
			f.longClassSpecifier(sub)
		case syntax.ShortClassSpecifier:
			f.shortClassSpecifier(sub)
		case syntax.DerClassSpecifier:
			f.derClassSpecifier(sub)
		case syntax.Error:
			f.formatErrorSubtree(sub)
		}
	}
}

func (f *formatter) longClassSpecifier(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.End {
				f.handleBreak(tok, blankRequired)
			}
			f.handleToken(tok)
			if kind == token.End || kind == token.Extends {
				f.push(Space)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.DescriptionString:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.descriptionString(sub)
				f.push(Dedent)
			case syntax.ClassModification:
				f.classModification(sub)
			case syntax.Composition:
				f.composition(sub)
			}
		}
	}
}

func (f *formatter) shortClassSpecifier(id syntax.TreeID) {
	children := f.tree.Children(id)
	isMultiline := parenMultiline(f.tree, children, token.LParen, token.RParen)
	for _, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.Equal {
				f.push(Space)
			}
			f.handleToken(tok)
			if kind == token.Equal {
				f.push(Space)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.BasePrefix:
				empty := f.tree.IsEmpty(sub)
				f.basePrefix(sub)
				if !empty {
					f.push(Space)
				}
			case syntax.TypeSpecifier:
				f.typeSpecifier(sub)
			case syntax.ArraySubscripts:
				f.arraySubscripts(sub)
			case syntax.ClassModification:
				f.classModification(sub)
			case syntax.EnumList:
				ml := isMultiline || f.tree.Contains(sub, syntax.Description)
				if ml {
					f.push(Indent)
					f.handleBreak(f.tree.Start(sub), blankIllegal)
				}
				f.enumList(sub, ml)
				if ml {
					f.push(Dedent)
				}
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) derClassSpecifier(id syntax.TreeID) {
	children := f.tree.Children(id)
	isMultiline := parenMultiline(f.tree, children, token.LParen, token.RParen)
	for _, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.Equal:
				f.push(Space)
			case kind == token.Identifier && f.prevKind == token.Comma:
				f.breakOrSpace(isMultiline, tok)
			}
			f.handleToken(tok)
			switch kind {
			case token.Equal:
				f.push(Space)
			case token.LParen:
				f.push(Indent)
			case token.RParen:
				f.push(Dedent)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.TypeSpecifier:
				if isMultiline {
					f.handleBreak(f.tree.Start(sub), blankIllegal)
				}
				f.typeSpecifier(sub)
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) basePrefix(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) enumList(id syntax.TreeID, isMultiline bool) {
	if !isMultiline {
		isMultiline = f.tree.IsMultiline(id)
	}
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			f.handleToken(c.Token())
			if n, ok := nextTree(children, i); ok {
				f.breakOrSpace(isMultiline, f.tree.Start(n))
			}
		} else {
			f.enumerationLiteral(c.Tree())
		}
	}
}

func (f *formatter) enumerationLiteral(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			f.push(Indent)
			f.handleBreak(f.tree.Start(sub), blankIllegal)
			f.description(sub)
			f.push(Dedent)
		}
	}
}

func (f *formatter) composition(id syntax.TreeID) {
	prevRule := syntax.Error
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.Protected || kind == token.Public || kind == token.External {
				f.handleBreak(tok, blankRequired)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			kind := f.tree.Kind(sub)
			switch kind {
			case syntax.ElementList:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankRequired)
				f.elementList(sub)
				f.push(Dedent)
			case syntax.EquationSection:
				f.handleBreak(f.tree.Start(sub), blankRequired)
				f.equationSection(sub)
			case syntax.AlgorithmSection:
				f.handleBreak(f.tree.Start(sub), blankRequired)
				f.algorithmSection(sub)
			case syntax.LanguageSpecification:
				f.push(Space)
				f.languageSpecification(sub)
			case syntax.ExternalFunctionCall:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankRequired)
				f.externalFunctionCall(sub)
				f.push(Dedent)
			case syntax.AnnotationClause:
				externElementAnnotation := f.prevKind == token.External ||
					((prevRule == syntax.LanguageSpecification || prevRule == syntax.ExternalFunctionCall) &&
						f.prevKind != token.Semicolon)
				f.push(Indent)
				if externElementAnnotation {
					f.push(Indent)
				}
				policy := blankRequired
				if externElementAnnotation {
					policy = blankIllegal
				}
				f.handleBreak(f.tree.Start(sub), policy)
				f.annotationClause(sub)
				f.push(Dedent)
				if externElementAnnotation {
					f.push(Dedent)
				}
			case syntax.Error:
				f.formatErrorSubtree(sub)
			}
			prevRule = kind
		}
	}
}

func (f *formatter) languageSpecification(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) externalFunctionCall(id syntax.TreeID) {
	children := f.tree.Children(id)
	isMultiline := parenMultiline(f.tree, children, token.LParen, token.RParen)
	f.push(Indent)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.Equal {
				f.push(Space)
			}
			f.handleToken(tok)
			switch {
			case kind == token.Equal:
				f.push(Space)
			case kind == token.LParen && isMultiline:
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ComponentReference:
				f.componentReference(sub)
			case syntax.ExpressionList:
				f.expressionList(sub, isMultiline)
			}
		}
	}
	f.push(Dedent)
}

func (f *formatter) elementList(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			if f.prevKind == token.Semicolon {
				f.handleBreak(f.tree.Start(sub), blankLegal)
			}
			f.element(sub)
		}
	}
}

func (f *formatter) element(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ImportClause:
				f.importClause(sub)
			case syntax.ExtendsClause:
				f.extendsClause(sub)
			case syntax.ClassDefinition:
				f.classDefinition(sub)
			case syntax.ComponentClause:
				f.componentClause(sub)
			case syntax.ConstrainingClause:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.constrainingClause(sub)
				f.push(Dedent)
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) importClause(id syntax.TreeID) {
	children := f.tree.Children(id)
	isMultiline := parenMultiline(f.tree, children, token.LCurly, token.RCurly)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.Equal {
				f.push(Space)
			}
			f.handleToken(tok)
			switch {
			case kind == token.Import || kind == token.Equal:
				f.push(Space)
			case kind == token.LCurly && isMultiline:
				f.push(Indent)
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			case kind == token.RCurly && isMultiline:
				f.push(Dedent)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Name:
				f.name(sub)
			case syntax.ImportList:
				f.importList(sub, isMultiline)
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) importList(id syntax.TreeID, isMultiline bool) {
	if !isMultiline {
		isMultiline = f.tree.IsMultiline(id)
	}
	for idx, c := range f.tree.Children(id) {
		if !c.IsToken() {
			continue
		}
		tok := c.Token()
		if f.tree.Tokens().Kind(tok) == token.Identifier && idx > 1 {
			f.breakOrSpace(isMultiline, tok)
		}
		f.handleToken(tok)
	}
}

func (f *formatter) extendsClause(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.TypeSpecifier:
				f.typeSpecifier(sub)
			case syntax.ClassOrInheritanceModification:
				f.classOrInheritanceModification(sub)
			case syntax.AnnotationClause:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.annotationClause(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) constrainingClause(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.TypeSpecifier:
				f.typeSpecifier(sub)
			case syntax.ClassModification:
				f.classModification(sub)
			}
		}
	}
}

func (f *formatter) classOrInheritanceModification(id syntax.TreeID) {
	f.push(Indent)
	children := f.tree.Children(id)
	isMultiline := f.tree.IsMultiline(id) && len(children) > 2
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.LParen && isMultiline {
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			}
		} else {
			f.argumentOrInheritanceModificationList(c.Tree(), isMultiline)
		}
	}
	f.push(Dedent)
}

func (f *formatter) argumentOrInheritanceModificationList(id syntax.TreeID, isMultiline bool) {
	if !isMultiline {
		isMultiline = f.tree.IsMultiline(id)
	}
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			f.handleToken(c.Token())
			if n, ok := nextTree(children, i); ok {
				f.breakOrSpace(isMultiline, f.tree.Start(n))
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Argument:
				f.argument(sub)
			case syntax.InheritanceModification:
				f.inheritanceModification(sub)
			}
		}
	}
}

func (f *formatter) inheritanceModification(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.Break {
				f.push(Space)
			}
		} else {
			f.connectEquation(c.Tree())
		}
	}
}

func (f *formatter) componentClause(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.TypePrefix:
			empty := f.tree.IsEmpty(sub)
			f.typePrefix(sub)
			if !empty {
				f.push(Space)
			}
		case syntax.TypeSpecifier:
			f.typeSpecifier(sub)
		case syntax.ArraySubscripts:
			f.arraySubscripts(sub)
		case syntax.ComponentList:
			f.componentList(sub)
		}
	}
}

func (f *formatter) typePrefix(id syntax.TreeID) {
	for i, c := range f.tree.Children(id) {
		if c.IsToken() {
			if i > 0 {
				f.push(Space)
			}
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) componentList(id syntax.TreeID) {
	children := f.tree.Children(id)
	wrap := f.tree.IsMultiline(id) && len(children) > 1
	if wrap {
		f.push(Indent)
	}
	for _, c := range children {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			f.breakOrSpace(wrap, f.tree.Start(sub))
			f.componentDeclaration(sub)
		}
	}
	if wrap {
		f.push(Dedent)
	}
}

func (f *formatter) componentDeclaration(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.Declaration:
			f.declaration(sub)
		case syntax.ConditionAttribute:
			f.push(Space)
			f.conditionAttribute(sub)
		case syntax.Description:
			f.push(Indent)
			f.handleBreak(f.tree.Start(sub), blankIllegal)
			f.description(sub)
			f.push(Dedent)
		}
	}
}

func (f *formatter) conditionAttribute(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			f.expression(c.Tree(), false, false)
		}
	}
}

func (f *formatter) declaration(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ArraySubscripts:
				f.arraySubscripts(sub)
			case syntax.Modification:
				f.modification(sub)
			}
		}
	}
}

func (f *formatter) modification(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.push(Space)
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ClassModification:
				f.classModification(sub)
			case syntax.ModificationExpression:
				wrapIf := f.tree.IsMultiline(sub) && f.tree.Tokens().Kind(f.tree.Start(sub)) == token.If
				if wrapIf {
					f.push(Indent)
				}
				f.breakOrSpace(wrapIf, f.tree.Start(sub))
				f.modificationExpression(sub)
				if wrapIf {
					f.push(Dedent)
				}
			}
		}
	}
}

func (f *formatter) modificationExpression(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			f.expression(c.Tree(), false, false)
		}
	}
}

func (f *formatter) classModification(id syntax.TreeID) {
	f.push(Indent)
	isMultiline := f.tree.IsMultiline(id) ||
		f.tree.Contains(id, syntax.DescriptionString) ||
		f.tree.Contains(id, syntax.Description)
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.LParen && isMultiline {
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			}
		} else {
			f.argumentList(c.Tree(), isMultiline)
		}
	}
	f.push(Dedent)
}

func (f *formatter) argumentList(id syntax.TreeID, isMultiline bool) {
	if !isMultiline {
		isMultiline = f.tree.IsMultiline(id)
	}
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			f.handleToken(c.Token())
			if n, ok := nextTree(children, i); ok {
				f.breakOrSpace(isMultiline, f.tree.Start(n))
			}
		} else {
			f.argument(c.Tree())
		}
	}
}

func (f *formatter) argument(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.ElementModificationOrReplaceable:
			f.elementModificationOrReplaceable(sub)
		case syntax.ElementRedeclaration:
			f.elementRedeclaration(sub)
		}
	}
}

func (f *formatter) elementModificationOrReplaceable(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ElementModification:
				f.elementModification(sub)
			case syntax.ElementReplaceable:
				f.elementReplaceable(sub)
			}
		}
	}
}

func (f *formatter) elementModification(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.Name:
			f.name(sub)
		case syntax.Modification:
			f.modification(sub)
		case syntax.DescriptionString:
			f.push(Indent)
			f.handleBreak(f.tree.Start(sub), blankIllegal)
			f.descriptionString(sub)
			f.push(Dedent)
		}
	}
}

func (f *formatter) elementRedeclaration(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ShortClassDefinition:
				f.shortClassDefinition(sub)
			case syntax.ComponentClause1:
				f.componentClause1(sub)
			case syntax.ElementReplaceable:
				f.elementReplaceable(sub)
			}
		}
	}
}

func (f *formatter) elementReplaceable(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ShortClassDefinition:
				f.shortClassDefinition(sub)
			case syntax.ComponentClause1:
				f.componentClause1(sub)
			case syntax.ConstrainingClause:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.constrainingClause(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) componentClause1(id syntax.TreeID) {
	children := f.tree.Children(id)
	n := len(children)
	for _, c := range children {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.TypePrefix:
			f.typePrefix(sub)
		case syntax.TypeSpecifier:
			if n > 2 {
				f.push(Space)
			}
			f.typeSpecifier(sub)
		case syntax.ComponentDeclaration1:
			f.push(Space)
			f.componentDeclaration1(sub)
		}
	}
}

func (f *formatter) componentDeclaration1(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.Declaration:
			f.declaration(sub)
		case syntax.Description:
			f.push(Indent)
			f.handleBreak(f.tree.Start(sub), blankIllegal)
			f.description(sub)
			f.push(Dedent)
		}
	}
}

func (f *formatter) shortClassDefinition(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.ClassPrefixes:
			f.classPrefixes(sub)
		case syntax.ShortClassSpecifier:
			f.push(Space)
			f.shortClassSpecifier(sub)
		}
	}
}

func (f *formatter) equationSection(id syntax.TreeID) {
	f.push(Indent)
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.Initial {
				f.push(Space)
			}
		} else {
			sub := c.Tree()
			policy := blankLegal
			if f.prevKind == token.Equation {
				policy = blankRequired
			}
			f.handleBreak(f.tree.Start(sub), policy)
			f.equation(sub)
		}
	}
	f.push(Dedent)
}

func (f *formatter) algorithmSection(id syntax.TreeID) {
	f.push(Indent)
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.Initial {
				f.push(Space)
			}
		} else {
			sub := c.Tree()
			policy := blankLegal
			if f.prevKind == token.Algorithm {
				policy = blankRequired
			}
			f.handleBreak(f.tree.Start(sub), policy)
			f.statement(sub)
		}
	}
	f.push(Dedent)
}

func (f *formatter) equation(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			if f.tree.Tokens().Kind(tok) == token.Equal {
				f.push(Space)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.SimpleExpression:
				f.simpleExpression(sub, false)
			case syntax.Expression:
				f.wrapIfExpression(sub)
			case syntax.IfEquation:
				f.ifEquation(sub)
			case syntax.ForEquation:
				f.forEquation(sub)
			case syntax.ConnectEquation:
				f.connectEquation(sub)
			case syntax.WhenEquation:
				f.whenEquation(sub)
			case syntax.ComponentReference:
				f.componentReference(sub)
			case syntax.FunctionCallArgs:
				f.functionCallArgs(sub)
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) statement(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			if f.tree.Tokens().Kind(tok) == token.Assign {
				f.push(Space)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ComponentReference:
				if f.prevKind == token.Assign {
					f.push(Space)
				}
				f.componentReference(sub)
			case syntax.Expression:
				f.wrapIfExpression(sub)
			case syntax.FunctionCallArgs:
				f.functionCallArgs(sub)
			case syntax.OutputExpressionList:
				f.outputExpressionList(sub, false)
			case syntax.IfStatement:
				f.ifStatement(sub)
			case syntax.ForStatement:
				f.forStatement(sub)
			case syntax.WhileStatement:
				f.whileStatement(sub)
			case syntax.WhenStatement:
				f.whenStatement(sub)
			case syntax.Description:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankIllegal)
				f.description(sub)
				f.push(Dedent)
			}
		}
	}
}

// wrapIfExpression lays out an Expression child shared by equation and
// statement: an if-expression that spans multiple lines gets its own
// Indent/Dedent around the break that precedes it.
func (f *formatter) wrapIfExpression(sub syntax.TreeID) {
	wrapIf := f.tree.IsMultiline(sub) && f.tree.Tokens().Kind(f.tree.Start(sub)) == token.If
	if wrapIf {
		f.push(Indent)
	}
	f.breakOrSpace(wrapIf, f.tree.Start(sub))
	f.expression(sub, false, false)
	if wrapIf {
		f.push(Dedent)
	}
}

func (f *formatter) ifEquation(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.If && f.prevKind == token.End:
				f.push(Space)
			case kind == token.ElseIf || kind == token.Else || kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.push(Space)
				f.expression(sub, false, false)
				f.push(Space)
			case syntax.Equation:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.equation(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) ifStatement(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.If && f.prevKind == token.End:
				f.push(Space)
			case kind == token.ElseIf || kind == token.Else || kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.push(Space)
				f.expression(sub, false, false)
				f.push(Space)
			case syntax.Statement:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.statement(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) forEquation(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.For && f.prevKind == token.End:
				f.push(Space)
			case kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ForIndices:
				f.push(Space)
				f.forIndices(sub)
				f.push(Space)
			case syntax.Equation:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.equation(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) forStatement(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.For && f.prevKind == token.End:
				f.push(Space)
			case kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ForIndices:
				f.push(Space)
				f.forIndices(sub)
				f.push(Space)
			case syntax.Statement:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.statement(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) forIndices(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			f.forIndex(c.Tree())
		}
	}
}

func (f *formatter) forIndex(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			if kind == token.In {
				f.push(Space)
			}
			f.handleToken(tok)
			if kind == token.In {
				f.push(Space)
			}
		} else {
			f.expression(c.Tree(), false, false)
		}
	}
}

func (f *formatter) whileStatement(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.While && f.prevKind == token.End:
				f.push(Space)
			case kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.push(Space)
				f.expression(sub, false, false)
				f.push(Space)
			case syntax.Statement:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.statement(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) whenEquation(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.When && f.prevKind == token.End:
				f.push(Space)
			case kind == token.ElseWhen || kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.push(Space)
				f.expression(sub, false, false)
				f.push(Space)
			case syntax.Equation:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.equation(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) whenStatement(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			switch {
			case kind == token.When && f.prevKind == token.End:
				f.push(Space)
			case kind == token.ElseWhen || kind == token.End:
				f.handleBreak(tok, blankLegal)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.push(Space)
				f.expression(sub, false, false)
				f.push(Space)
			case syntax.Statement:
				f.push(Indent)
				f.handleBreak(f.tree.Start(sub), blankLegal)
				f.statement(sub)
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) connectEquation(id syntax.TreeID) {
	isMultiline := f.tree.IsMultiline(id)
	f.push(Indent)
	for idx, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			continue
		}
		sub := c.Tree()
		if idx == 2 {
			if isMultiline {
				f.handleBreak(f.tree.Start(sub), blankIllegal)
			}
		} else {
			f.breakOrSpace(isMultiline, f.tree.Start(sub))
		}
		f.componentReference(sub)
	}
	f.push(Dedent)
}

// --- expression tower: each level threads wrapped through and returns it ---

func (f *formatter) expression(id syntax.TreeID, wrapped, inOEL bool) bool {
	isMultiline := f.tree.IsMultiline(id)
	conditional := false
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.Then || kind == token.Else {
				conditional = true
				f.push(Indent)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				if conditional {
					f.breakOrSpace(isMultiline, f.tree.Start(sub))
				} else {
					f.push(Space)
				}
				f.expression(sub, false, false)
				if conditional {
					f.push(Dedent)
					if i+1 < len(children) && children[i+1].IsToken() {
						f.breakOrSpace(isMultiline, children[i+1].Token())
					}
				} else {
					f.push(Space)
				}
				conditional = false
			case syntax.SimpleExpression:
				wrapped = f.simpleExpression(sub, wrapped)
			}
		}
	}
	if wrapped && !inOEL {
		f.push(Dedent)
	}
	return wrapped
}

func (f *formatter) simpleExpression(id syntax.TreeID, wrapped bool) bool {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.push(Space)
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			wrapped = f.logicalExpression(c.Tree(), wrapped)
		}
	}
	return wrapped
}

func (f *formatter) logicalExpression(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			wrapped = f.wrapBinaryOp(children, i, c.Token(), wrapped)
			f.push(Space)
		} else {
			wrapped = f.logicalTerm(c.Tree(), wrapped)
		}
	}
	return wrapped
}

func (f *formatter) logicalTerm(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			wrapped = f.wrapBinaryOp(children, i, c.Token(), wrapped)
			f.push(Space)
		} else {
			wrapped = f.logicalFactor(c.Tree(), wrapped)
		}
	}
	return wrapped
}

func (f *formatter) logicalFactor(id syntax.TreeID, wrapped bool) bool {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			wrapped = f.relation(c.Tree(), wrapped)
		}
	}
	return wrapped
}

func (f *formatter) relation(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		if f.tree.Kind(sub) != syntax.RelationalOperator {
			wrapped = f.arithmeticExpression(sub, wrapped)
			continue
		}
		if n, ok := nextTree(children, i); ok {
			isMultiline := f.lineAfterPrev(n)
			if isMultiline && !wrapped {
				f.push(Indent)
			}
			if !wrapped {
				wrapped = isMultiline
			}
			f.breakOrSpace(isMultiline, f.tree.Start(sub))
		}
		f.relationalOperator(sub)
		f.push(Space)
	}
	return wrapped
}

func (f *formatter) relationalOperator(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) arithmeticExpression(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		if f.tree.Kind(sub) != syntax.AddOperator {
			wrapped = f.term(sub, wrapped)
			continue
		}
		if i > 0 {
			wrapped = f.wrapBinaryOpTree(children, i, sub, wrapped)
		}
		f.addOperator(sub)
		if i > 0 {
			f.push(Space)
		}
	}
	return wrapped
}

func (f *formatter) addOperator(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) term(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		if f.tree.Kind(sub) != syntax.MulOperator {
			wrapped = f.factor(sub, wrapped)
			continue
		}
		wrapped = f.wrapBinaryOpTree(children, i, sub, wrapped)
		f.mulOperator(sub)
		f.push(Space)
	}
	return wrapped
}

func (f *formatter) mulOperator(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		}
	}
}

func (f *formatter) factor(id syntax.TreeID, wrapped bool) bool {
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			wrapped = f.wrapBinaryOp(children, i, c.Token(), wrapped)
			f.push(Space)
		} else {
			wrapped = f.primary(c.Tree(), wrapped)
		}
	}
	return wrapped
}

func (f *formatter) primary(id syntax.TreeID, wrapped bool) bool {
	isMultiline := f.tree.IsMultiline(id)
	children := f.tree.Children(id)
	n := len(children)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			switch f.tree.Tokens().Kind(tok) {
			case token.UInt, token.UReal, token.String, token.Bool,
				token.Der, token.Initial, token.Pure, token.End:
				f.handleToken(tok)
			case token.Semicolon:
				f.handleToken(tok)
				if t, ok := nextTree(children, i); ok {
					f.breakOrSpace(isMultiline, f.tree.Start(t))
				}
			case token.LCurly, token.LBracket:
				f.handleToken(tok)
				f.push(Indent)
				if isMultiline {
					if t, ok := nextTree(children, i); ok {
						f.handleBreak(f.tree.Start(t), blankIllegal)
					}
				}
			case token.RCurly, token.RBracket:
				f.push(Dedent)
				f.handleToken(tok)
			case token.LParen, token.RParen:
				f.handleToken(tok)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.ComponentReference:
				f.componentReference(sub)
			case syntax.FunctionCallArgs:
				f.functionCallArgs(sub)
			case syntax.ArraySubscripts:
				f.arraySubscripts(sub)
			case syntax.ArrayArguments:
				f.arrayArguments(sub, isMultiline)
			case syntax.ExpressionList:
				f.expressionList(sub, isMultiline && n == 3)
			case syntax.OutputExpressionList:
				wrapped = f.outputExpressionList(sub, wrapped)
			}
		}
	}
	return wrapped
}

// wrapBinaryOp implements the repeated logical/relational/factor wrap check:
// if the operand following a token-form operator starts on a later line
// than the previous token, open an Indent (once) and break instead of
// spacing before the operator.
func (f *formatter) wrapBinaryOp(children []syntax.Child, i int, opTok token.ID, wrapped bool) bool {
	next, ok := nextTree(children, i)
	if !ok {
		f.handleToken(opTok)
		return wrapped
	}
	isMultiline := f.lineAfterPrev(next)
	if isMultiline && !wrapped {
		f.push(Indent)
	}
	if !wrapped {
		wrapped = isMultiline
	}
	f.breakOrSpace(isMultiline, opTok)
	f.handleToken(opTok)
	return wrapped
}

// wrapBinaryOpTree is wrapBinaryOp for an operator reified as its own
// subtree (add_operator/mul_operator), where the break/space must be
// emitted before the caller recurses into that subtree.
func (f *formatter) wrapBinaryOpTree(children []syntax.Child, i int, opTree syntax.TreeID, wrapped bool) bool {
	next, ok := nextTree(children, i)
	if !ok {
		return wrapped
	}
	isMultiline := f.lineAfterPrev(next)
	if isMultiline && !wrapped {
		f.push(Indent)
	}
	if !wrapped {
		wrapped = isMultiline
	}
	f.breakOrSpace(isMultiline, f.tree.Start(opTree))
	return wrapped
}

// lineAfterPrev reports whether n's first leaf token starts on a later
// source line than the most recently emitted token.
func (f *formatter) lineAfterPrev(n syntax.TreeID) bool {
	return f.tree.Tokens().Start(f.tree.Start(n)).Line > f.prevLine
}

// nextTree returns children[i+1] as a tree ID, if it exists and is not a
// token child.
func nextTree(children []syntax.Child, i int) (syntax.TreeID, bool) {
	if i+1 >= len(children) {
		return 0, false
	}
	c := children[i+1]
	if c.IsToken() {
		return 0, false
	}
	return c.Tree(), true
}

func (f *formatter) typeSpecifier(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			f.name(c.Tree())
		}
	}
}

func (f *formatter) name(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else if f.tree.Kind(c.Tree()) == syntax.Error {
			f.formatErrorSubtree(c.Tree())
		}
	}
}

func (f *formatter) componentReference(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			f.arraySubscripts(c.Tree())
		}
	}
}

func (f *formatter) resultReference(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.Comma {
				f.push(Space)
			}
		} else {
			f.componentReference(c.Tree())
		}
	}
}

func (f *formatter) functionCallArgs(id syntax.TreeID) {
	isMultiline := f.tree.IsMultiline(id)
	children := f.tree.Children(id)
	f.push(Indent)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.LParen && isMultiline {
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			}
		} else {
			f.functionArguments(c.Tree(), isMultiline)
		}
	}
	f.push(Dedent)
}

func (f *formatter) functionArguments(id syntax.TreeID, isMultiline bool) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			if f.tree.Tokens().Kind(tok) == token.For {
				f.breakOrSpace(isMultiline, tok)
				f.handleToken(tok)
				f.push(Space)
			} else {
				f.handleToken(tok)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.expression(sub, false, false)
			case syntax.FunctionPartialApplication:
				f.functionPartialApplication(sub)
			case syntax.ForIndices:
				f.forIndices(sub)
			case syntax.FunctionArgumentsNonFirst:
				f.breakOrSpace(isMultiline, f.tree.Start(sub))
				f.functionArgumentsNonFirst(sub, isMultiline)
			case syntax.NamedArguments:
				f.namedArguments(sub, isMultiline)
			}
		}
	}
}

func (f *formatter) functionArgumentsNonFirst(id syntax.TreeID, isMultiline bool) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.FunctionArgument:
				f.functionArgument(sub)
			case syntax.FunctionArgumentsNonFirst:
				f.breakOrSpace(isMultiline, f.tree.Start(sub))
				f.functionArgumentsNonFirst(sub, isMultiline)
			case syntax.NamedArguments:
				f.namedArguments(sub, isMultiline)
			}
		}
	}
}

func (f *formatter) arrayArguments(id syntax.TreeID, isMultiline bool) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			if f.tree.Tokens().Kind(tok) == token.For {
				f.breakOrSpace(isMultiline, tok)
				f.handleToken(tok)
				f.push(Space)
			} else {
				f.handleToken(tok)
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.expression(sub, false, false)
			case syntax.ArrayArgumentsNonFirst:
				f.breakOrSpace(isMultiline, f.tree.Start(sub))
				f.arrayArgumentsNonFirst(sub, isMultiline)
			case syntax.ForIndices:
				f.forIndices(sub)
			}
		}
	}
}

func (f *formatter) arrayArgumentsNonFirst(id syntax.TreeID, isMultiline bool) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.Expression:
				f.expression(sub, false, false)
			case syntax.ArrayArgumentsNonFirst:
				f.breakOrSpace(isMultiline, f.tree.Start(sub))
				f.arrayArgumentsNonFirst(sub, isMultiline)
			}
		}
	}
}

func (f *formatter) namedArguments(id syntax.TreeID, isMultiline bool) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.NamedArgument:
				f.namedArgument(sub)
			case syntax.NamedArguments:
				f.breakOrSpace(isMultiline, f.tree.Start(sub))
				f.namedArguments(sub, isMultiline)
			}
		}
	}
}

func (f *formatter) namedArgument(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			tok := c.Token()
			if f.tree.Tokens().Kind(tok) == token.Equal {
				f.push(Space)
			}
			f.handleToken(tok)
		} else {
			sub := c.Tree()
			wrapIf := f.tree.IsMultiline(sub) && f.tree.Tokens().Kind(f.tree.Start(sub)) == token.If
			if wrapIf {
				f.push(Indent)
			}
			f.breakOrSpace(wrapIf, f.tree.Start(sub))
			f.functionArgument(sub)
			if wrapIf {
				f.push(Dedent)
			}
		}
	}
}

func (f *formatter) functionArgument(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.FunctionPartialApplication:
			f.functionPartialApplication(sub)
		case syntax.Expression:
			f.expression(sub, false, false)
		}
	}
}

func (f *formatter) functionPartialApplication(id syntax.TreeID) {
	children := f.tree.Children(id)
	isMultiline := parenMultiline(f.tree, children, token.LParen, token.RParen)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			if kind == token.LParen && isMultiline {
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			}
		} else {
			sub := c.Tree()
			switch f.tree.Kind(sub) {
			case syntax.TypeSpecifier:
				f.push(Space)
				f.typeSpecifier(sub)
			case syntax.NamedArguments:
				f.namedArguments(sub, isMultiline)
			}
		}
	}
}

func (f *formatter) outputExpressionList(id syntax.TreeID, wrapped bool) bool {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			if f.prevKind == token.LParen {
				f.push(Space)
			}
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			wrapped = f.expression(c.Tree(), wrapped, true)
		}
	}
	return wrapped
}

func (f *formatter) expressionList(id syntax.TreeID, isMultiline bool) {
	if !isMultiline {
		isMultiline = f.tree.IsMultiline(id)
	}
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			f.handleToken(c.Token())
			if n, ok := nextTree(children, i); ok {
				f.breakOrSpace(isMultiline, f.tree.Start(n))
			}
		} else {
			f.expression(c.Tree(), false, false)
		}
	}
}

func (f *formatter) arraySubscripts(id syntax.TreeID) {
	f.push(Indent)
	isMultiline := f.tree.IsMultiline(id)
	children := f.tree.Children(id)
	for i, c := range children {
		if c.IsToken() {
			tok := c.Token()
			kind := f.tree.Tokens().Kind(tok)
			f.handleToken(tok)
			switch {
			case kind == token.LBracket && isMultiline:
				if n, ok := nextTree(children, i); ok {
					f.handleBreak(f.tree.Start(n), blankIllegal)
				}
			case kind == token.Comma:
				if n, ok := nextTree(children, i); ok {
					f.breakOrSpace(isMultiline, f.tree.Start(n))
				}
			}
		} else {
			f.subscript(c.Tree())
		}
	}
	f.push(Dedent)
}

func (f *formatter) subscript(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
		} else {
			f.expression(c.Tree(), false, false)
		}
	}
}

func (f *formatter) description(id syntax.TreeID) {
	for i, c := range f.tree.Children(id) {
		if c.IsToken() {
			continue
		}
		sub := c.Tree()
		switch f.tree.Kind(sub) {
		case syntax.DescriptionString:
			f.descriptionString(sub)
		case syntax.AnnotationClause:
			if i > 0 {
				f.handleBreak(f.tree.Start(sub), blankIllegal)
			}
			f.annotationClause(sub)
		}
	}
}

func (f *formatter) descriptionString(id syntax.TreeID) {
	isMultiline := f.tree.IsMultiline(id)
	f.push(Indent)
	for _, c := range f.tree.Children(id) {
		if !c.IsToken() {
			continue
		}
		tok := c.Token()
		switch f.tree.Tokens().Kind(tok) {
		case token.Plus:
			f.breakOrSpace(isMultiline, tok)
			f.handleToken(tok)
			f.push(Space)
		case token.String:
			f.handleToken(tok)
		}
	}
	f.push(Dedent)
}

func (f *formatter) annotationClause(id syntax.TreeID) {
	for _, c := range f.tree.Children(id) {
		if c.IsToken() {
			f.handleToken(c.Token())
			f.push(Space)
		} else {
			f.classModification(c.Tree())
		}
	}
}
