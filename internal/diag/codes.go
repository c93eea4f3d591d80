package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynUnclosedBrace    Code = 2006
	SynUnclosedBracket  Code = 2007
	SynUnclosedParen    Code = 2008
	SynExpectString     Code = 2009

	// Семантические
	SemaInfo                    Code = 3000
	SemaDuplicateSymbol         Code = 3001 // Redefinition
	SemaUnresolvedSymbol        Code = 3002 // UndefinedIdentifier
	SemaInvalidBinaryOperands   Code = 3003 // OperatorNotPermitted
	SemaInvalidUnaryOperand     Code = 3004 // OperatorNotPermitted
	SemaArrayElementMismatch    Code = 3005
	SemaEmptyArray              Code = 3006
	SemaMissingReturnAnnotation Code = 3007
	SemaReturnTypeMismatch      Code = 3008
	SemaUnknownMember           Code = 3009
	SemaNonAggregateMember      Code = 3010
	SemaNonCallable             Code = 3011
	SemaArgumentTypeMismatch    Code = 3012
	SemaExternalResolution      Code = 3013
	SemaNotAType                Code = 3014
	SemaNotAssignable           Code = 3015
	SemaCannotInferVariable     Code = 3016
	SemaLoopControlOutsideLoop  Code = 3017
	SemaNeverReturns            Code = 3018

	// Внутренние
	FatalInternal Code = 9000
)

var codeName = map[Code]string{
	UnknownCode:                 "E0000",
	LexInfo:                     "LEX1000",
	LexUnknownChar:              "LEX1001",
	LexUnterminatedString:       "LEX1002",
	LexBadNumber:                "LEX1003",
	SynInfo:                     "SYN2000",
	SynUnexpectedToken:          "SYN2001",
	SynExpectSemicolon:          "SYN2002",
	SynExpectIdentifier:         "SYN2003",
	SynExpectType:               "SYN2004",
	SynExpectExpression:         "SYN2005",
	SynUnclosedBrace:            "SYN2006",
	SynUnclosedBracket:          "SYN2007",
	SynUnclosedParen:            "SYN2008",
	SynExpectString:             "SYN2009",
	SemaInfo:                    "SEM3000",
	SemaDuplicateSymbol:         "SEM3001",
	SemaUnresolvedSymbol:        "SEM3002",
	SemaInvalidBinaryOperands:   "SEM3003",
	SemaInvalidUnaryOperand:     "SEM3004",
	SemaArrayElementMismatch:    "SEM3005",
	SemaEmptyArray:              "SEM3006",
	SemaMissingReturnAnnotation: "SEM3007",
	SemaReturnTypeMismatch:      "SEM3008",
	SemaUnknownMember:           "SEM3009",
	SemaNonAggregateMember:      "SEM3010",
	SemaNonCallable:             "SEM3011",
	SemaArgumentTypeMismatch:    "SEM3012",
	SemaExternalResolution:      "SEM3013",
	SemaNotAType:                "SEM3014",
	SemaNotAssignable:           "SEM3015",
	SemaCannotInferVariable:     "SEM3016",
	SemaLoopControlOutsideLoop:  "SEM3017",
	SemaNeverReturns:            "SEM3018",
	FatalInternal:               "INT9000",
}

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexBadNumber:                "Malformed number literal",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynUnclosedBrace:            "Unclosed '{'",
	SynUnclosedBracket:          "Unclosed '['",
	SynUnclosedParen:            "Unclosed '('",
	SynExpectString:             "Expected string literal",
	SemaDuplicateSymbol:         "Redefinition",
	SemaUnresolvedSymbol:        "Undefined identifier",
	SemaInvalidBinaryOperands:   "Operator not permitted",
	SemaInvalidUnaryOperand:     "Unary operator not permitted",
	SemaArrayElementMismatch:    "Array element type mismatch",
	SemaEmptyArray:              "Cannot infer type of empty array",
	SemaMissingReturnAnnotation: "Missing return annotation or body",
	SemaReturnTypeMismatch:      "Return type mismatch",
	SemaUnknownMember:           "Unknown member",
	SemaNonAggregateMember:      "Member access on non-hive value",
	SemaNonCallable:             "Value is not callable",
	SemaArgumentTypeMismatch:    "Argument type mismatch",
	SemaExternalResolution:      "External module resolution failed",
	SemaNotAType:                "Not a type",
	SemaNotAssignable:           "Left operand is not assignable",
	SemaCannotInferVariable:     "Cannot infer variable type",
	SemaLoopControlOutsideLoop:  "Loop control outside of loop",
	SemaNeverReturns:            "Blok never returns",
	FatalInternal:               "Internal compiler error",
}

func (c Code) ID() string {
	if name, ok := codeName[c]; ok {
		return name
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
