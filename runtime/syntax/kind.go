// Package syntax defines the concrete syntax tree: an arena of nodes keyed
// by dense TreeIDs, each holding an ordered list of token and subtree
// children.
package syntax

// Kind identifies a grammar nonterminal, or Error for a recovered subtree.
type Kind uint8

const (
	Error Kind = iota
	StoredDefinition
	ClassDefinition
	ClassPrefixes
	ClassSpecifier
	LongClassSpecifier
	ShortClassSpecifier
	DerClassSpecifier
	BasePrefix
	EnumList
	EnumerationLiteral
	Composition
	LanguageSpecification
	ExternalFunctionCall
	ElementList
	Element
	ImportClause
	ImportList
	ExtendsClause
	ConstrainingClause
	ClassOrInheritanceModification
	ArgumentOrInheritanceModificationList
	InheritanceModification
	ComponentClause
	TypePrefix
	ComponentList
	ComponentDeclaration
	ConditionAttribute
	Declaration
	Modification
	ModificationExpression
	ClassModification
	ArgumentList
	Argument
	ElementModificationOrReplaceable
	ElementModification
	ElementRedeclaration
	ElementReplaceable
	ComponentClause1
	ComponentDeclaration1
	ShortClassDefinition
	EquationSection
	AlgorithmSection
	Equation
	Statement
	IfEquation
	IfStatement
	ForEquation
	ForStatement
	ForIndices
	ForIndex
	WhileStatement
	WhenEquation
	WhenStatement
	ConnectEquation
	Expression
	SimpleExpression
	LogicalExpression
	LogicalTerm
	LogicalFactor
	Relation
	RelationalOperator
	ArithmeticExpression
	AddOperator
	Term
	MulOperator
	Factor
	Primary
	TypeSpecifier
	Name
	ComponentReference
	ResultReference
	FunctionCallArgs
	FunctionArguments
	FunctionArgumentsNonFirst
	ArrayArguments
	ArrayArgumentsNonFirst
	NamedArguments
	NamedArgument
	FunctionArgument
	FunctionPartialApplication
	OutputExpressionList
	ExpressionList
	ArraySubscripts
	Subscript
	Description
	DescriptionString
	AnnotationClause
)

var kindNames = [...]string{
	Error:                           "Error",
	StoredDefinition:                "StoredDefinition",
	ClassDefinition:                 "ClassDefinition",
	ClassPrefixes:                   "ClassPrefixes",
	ClassSpecifier:                  "ClassSpecifier",
	LongClassSpecifier:              "LongClassSpecifier",
	ShortClassSpecifier:             "ShortClassSpecifier",
	DerClassSpecifier:               "DerClassSpecifier",
	BasePrefix:                      "BasePrefix",
	EnumList:                        "EnumList",
	EnumerationLiteral:              "EnumerationLiteral",
	Composition:                     "Composition",
	LanguageSpecification:           "LanguageSpecification",
	ExternalFunctionCall:            "ExternalFunctionCall",
	ElementList:                     "ElementList",
	Element:                         "Element",
	ImportClause:                    "ImportClause",
	ImportList:                      "ImportList",
	ExtendsClause:                   "ExtendsClause",
	ConstrainingClause:              "ConstrainingClause",
	ClassOrInheritanceModification:  "ClassOrInheritanceModification",
	ArgumentOrInheritanceModificationList: "ArgumentOrInheritanceModificationList",
	InheritanceModification:         "InheritanceModification",
	ComponentClause:                 "ComponentClause",
	TypePrefix:                      "TypePrefix",
	ComponentList:                   "ComponentList",
	ComponentDeclaration:            "ComponentDeclaration",
	ConditionAttribute:              "ConditionAttribute",
	Declaration:                     "Declaration",
	Modification:                    "Modification",
	ModificationExpression:          "ModificationExpression",
	ClassModification:               "ClassModification",
	ArgumentList:                    "ArgumentList",
	Argument:                        "Argument",
	ElementModificationOrReplaceable: "ElementModificationOrReplaceable",
	ElementModification:             "ElementModification",
	ElementRedeclaration:            "ElementRedeclaration",
	ElementReplaceable:              "ElementReplaceable",
	ComponentClause1:                "ComponentClause1",
	ComponentDeclaration1:           "ComponentDeclaration1",
	ShortClassDefinition:            "ShortClassDefinition",
	EquationSection:                 "EquationSection",
	AlgorithmSection:                "AlgorithmSection",
	Equation:                        "Equation",
	Statement:                       "Statement",
	IfEquation:                      "IfEquation",
	IfStatement:                     "IfStatement",
	ForEquation:                     "ForEquation",
	ForStatement:                    "ForStatement",
	ForIndices:                      "ForIndices",
	ForIndex:                        "ForIndex",
	WhileStatement:                  "WhileStatement",
	WhenEquation:                    "WhenEquation",
	WhenStatement:                   "WhenStatement",
	ConnectEquation:                 "ConnectEquation",
	Expression:                      "Expression",
	SimpleExpression:                "SimpleExpression",
	LogicalExpression:               "LogicalExpression",
	LogicalTerm:                     "LogicalTerm",
	LogicalFactor:                   "LogicalFactor",
	Relation:                        "Relation",
	RelationalOperator:              "RelationalOperator",
	ArithmeticExpression:            "ArithmeticExpression",
	AddOperator:                     "AddOperator",
	Term:                            "Term",
	MulOperator:                     "MulOperator",
	Factor:                          "Factor",
	Primary:                         "Primary",
	TypeSpecifier:                   "TypeSpecifier",
	Name:                            "Name",
	ComponentReference:              "ComponentReference",
	ResultReference:                 "ResultReference",
	FunctionCallArgs:                "FunctionCallArgs",
	FunctionArguments:               "FunctionArguments",
	FunctionArgumentsNonFirst:       "FunctionArgumentsNonFirst",
	ArrayArguments:                  "ArrayArguments",
	ArrayArgumentsNonFirst:          "ArrayArgumentsNonFirst",
	NamedArguments:                  "NamedArguments",
	NamedArgument:                   "NamedArgument",
	FunctionArgument:                "FunctionArgument",
	FunctionPartialApplication:      "FunctionPartialApplication",
	OutputExpressionList:            "OutputExpressionList",
	ExpressionList:                  "ExpressionList",
	ArraySubscripts:                 "ArraySubscripts",
	Subscript:                       "Subscript",
	Description:                     "Description",
	DescriptionString:               "DescriptionString",
	AnnotationClause:                "AnnotationClause",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
