package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node,
// suitable for `--emit=ast` and for golden snapshot tests. It omits
// instance-specific metadata (byte offsets, SIDs) so two structurally
// identical trees print identically regardless of where they came from.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Compact is Print without indentation, for single-line diagnostics.
func Compact(node Node) string {
	data, err := json.Marshal(simplify(node))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintProgram prints a *Program, which does not itself implement Node.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(prog), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := map[string]interface{}{"type": "Program"}
		if n.File != nil {
			m["file"] = simplify(n.File)
		}
		return m

	case *File:
		m := map[string]interface{}{"type": "File", "path": "test://unit"}
		if n.Module != nil {
			m["module"] = simplify(n.Module)
		}
		if len(n.Imports) > 0 {
			m["imports"] = simplifySlice(n.Imports)
		}
		if len(n.Types) > 0 {
			m["types"] = simplifySlice(n.Types)
		}
		if len(n.Traits) > 0 {
			m["traits"] = simplifySlice(n.Traits)
		}
		if len(n.Impls) > 0 {
			m["impls"] = simplifySlice(n.Impls)
		}
		if len(n.Funcs) > 0 {
			m["funcs"] = simplifySlice(n.Funcs)
		}
		return m

	case *ModuleDecl:
		return map[string]interface{}{"type": "ModuleDecl", "path": n.Path}

	case *ImportDecl:
		m := map[string]interface{}{"type": "ImportDecl", "path": n.Path}
		if len(n.Symbols) > 0 {
			m["symbols"] = n.Symbols
		}
		return m

	case *ExportDecl:
		return map[string]interface{}{"type": "ExportDecl", "names": n.Names}

	case *Ident:
		return map[string]interface{}{"type": "Ident", "name": n.Name}

	case *Literal:
		m := map[string]interface{}{"type": "Literal", "kind": literalKindString(n.Kind)}
		if n.Value != nil {
			m["value"] = n.Value
		}
		return m

	case *BinaryExpr:
		return map[string]interface{}{"type": "BinaryExpr", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}

	case *UnaryExpr:
		return map[string]interface{}{"type": "UnaryExpr", "op": n.Op, "expr": simplify(n.Expr)}

	case *Grouping:
		return map[string]interface{}{"type": "Grouping", "inner": simplify(n.Inner)}

	case *AssignExpr:
		return map[string]interface{}{"type": "AssignExpr", "target": simplify(n.Target), "value": simplify(n.Value)}

	case *CallExpr:
		m := map[string]interface{}{"type": "CallExpr", "callee": simplify(n.Callee)}
		if len(n.Args) > 0 {
			m["args"] = simplifyExprSlice(n.Args)
		}
		if len(n.TypeArgs) > 0 {
			m["typeArgs"] = simplifyTypeSlice(n.TypeArgs)
		}
		return m

	case *GetExpr:
		return map[string]interface{}{"type": "GetExpr", "target": simplify(n.Target), "name": n.Name}

	case *SetExpr:
		return map[string]interface{}{"type": "SetExpr", "target": simplify(n.Target), "name": n.Name, "value": simplify(n.Value)}

	case *IndexExpr:
		return map[string]interface{}{"type": "IndexExpr", "target": simplify(n.Target), "index": simplify(n.Index)}

	case *ListLit:
		m := map[string]interface{}{"type": "ListLit"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyExprSlice(n.Elements)
		}
		return m

	case *DictLit:
		entries := make([]interface{}, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = map[string]interface{}{"key": simplify(e.Key), "value": simplify(e.Value)}
		}
		return map[string]interface{}{"type": "DictLit", "entries": entries}

	case *TupleLit:
		m := map[string]interface{}{"type": "TupleLit"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyExprSlice(n.Elements)
		}
		return m

	case *Lambda:
		m := map[string]interface{}{"type": "Lambda", "body": simplify(n.Body), "isAsync": n.IsAsync}
		if len(n.Params) > 0 {
			m["params"] = simplifySlice(n.Params)
		}
		if len(n.Effects) > 0 {
			m["effects"] = n.Effects
		}
		return m

	case *Await:
		return map[string]interface{}{"type": "Await", "value": simplify(n.Value)}

	case *Send:
		return map[string]interface{}{"type": "Send", "channel": simplify(n.Channel), "value": simplify(n.Value)}

	case *Recv:
		return map[string]interface{}{"type": "Recv", "channel": simplify(n.Channel)}

	case *MoveExpr:
		return map[string]interface{}{"type": "MoveExpr", "value": simplify(n.Value)}

	case *NewExpr:
		m := map[string]interface{}{"type": "NewExpr", "typeArg": simplify(n.Type)}
		if len(n.Args) > 0 {
			m["args"] = simplifyExprSlice(n.Args)
		}
		return m

	case *DeleteExpr:
		return map[string]interface{}{"type": "DeleteExpr", "value": simplify(n.Value)}

	case *StringInterp:
		parts := make([]interface{}, len(n.Parts))
		for i, p := range n.Parts {
			if p.Expr != nil {
				parts[i] = map[string]interface{}{"expr": simplify(p.Expr)}
			} else {
				parts[i] = map[string]interface{}{"literal": p.Literal}
			}
		}
		return map[string]interface{}{"type": "StringInterp", "parts": parts}

	case *BlockExpr:
		m := map[string]interface{}{"type": "BlockExpr"}
		if len(n.Stmts) > 0 {
			m["stmts"] = simplifyStmtSlice(n.Stmts)
		}
		if n.Result != nil {
			m["result"] = simplify(n.Result)
		}
		return m

	case *IfExpr:
		return map[string]interface{}{"type": "IfExpr", "cond": simplify(n.Cond), "then": simplify(n.Then), "else": simplify(n.Else)}

	case *MatchExpr:
		m := map[string]interface{}{"type": "MatchExpr", "scrutinee": simplify(n.Scrutinee)}
		if len(n.Arms) > 0 {
			arms := make([]interface{}, len(n.Arms))
			for i, a := range n.Arms {
				arm := map[string]interface{}{"pattern": simplify(a.Pattern), "body": simplify(a.Body)}
				if a.Guard != nil {
					arm["guard"] = simplify(a.Guard)
				}
				arms[i] = arm
			}
			m["arms"] = arms
		}
		return m

	case *ErrorExpr:
		return map[string]interface{}{"type": "ErrorExpr", "msg": n.Msg}

	case *BlockStmt:
		m := map[string]interface{}{"type": "BlockStmt"}
		if len(n.Stmts) > 0 {
			m["stmts"] = simplifyStmtSlice(n.Stmts)
		}
		return m

	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "expr": simplify(n.Expr)}

	case *VarDecl:
		m := map[string]interface{}{"type": "VarDecl", "name": n.Name, "mutable": n.Mutable, "movedIn": n.MovedIn, "value": simplify(n.Value)}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	case *ReturnStmt:
		m := map[string]interface{}{"type": "ReturnStmt"}
		if n.Value != nil {
			m["value"] = simplify(n.Value)
		}
		return m

	case *IfStmt:
		m := map[string]interface{}{"type": "IfStmt", "cond": simplify(n.Cond), "then": simplify(n.Then)}
		if n.Else != nil {
			m["else"] = simplify(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{"type": "WhileStmt", "cond": simplify(n.Cond), "body": simplify(n.Body)}

	case *ForInStmt:
		return map[string]interface{}{"type": "ForInStmt", "var": n.Var, "iterable": simplify(n.Iterable), "body": simplify(n.Body)}

	case *MatchStmt:
		return map[string]interface{}{"type": "MatchStmt", "match": simplify(n.Match)}

	case *BreakStmt:
		return map[string]interface{}{"type": "BreakStmt"}

	case *ContinueStmt:
		return map[string]interface{}{"type": "ContinueStmt"}

	case *GoStmt:
		return map[string]interface{}{"type": "GoStmt", "call": simplify(n.Call)}

	case *DeferStmt:
		return map[string]interface{}{"type": "DeferStmt", "call": simplify(n.Call)}

	case *PropertyDecl:
		m := map[string]interface{}{"type": "PropertyDecl", "name": n.Name}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	case *FuncDecl:
		m := map[string]interface{}{"type": "FuncDecl", "name": n.Name, "isAsync": n.IsAsync, "isPure": n.IsPure, "isExport": n.IsExport}
		if len(n.Params) > 0 {
			m["params"] = simplifySlice(n.Params)
		}
		if n.ReturnType != nil {
			m["returnType"] = simplify(n.ReturnType)
		}
		if n.Body != nil {
			m["body"] = simplify(n.Body)
		}
		return m

	case *TypeDecl:
		m := map[string]interface{}{"type": "TypeDecl", "name": n.Name, "exported": n.Exported}
		if len(n.TypeParams) > 0 {
			m["typeParams"] = n.TypeParams
		}
		if n.Def != nil {
			m["def"] = simplifyTypeDef(n.Def)
		}
		return m

	case *TraitDecl:
		return map[string]interface{}{"type": "TraitDecl", "name": n.Name}

	case *ImplDecl:
		return map[string]interface{}{"type": "ImplDecl", "trait": n.Trait, "target": simplify(n.Target)}

	case *ExtensionDecl:
		return map[string]interface{}{"type": "ExtensionDecl", "target": simplify(n.Target)}

	// Patterns
	case *WildcardPattern:
		return map[string]interface{}{"type": "WildcardPattern"}

	case *LiteralPattern:
		return map[string]interface{}{"type": "LiteralPattern", "value": n.Value}

	case *VarPattern:
		return map[string]interface{}{"type": "VarPattern", "name": n.Name}

	case *ConstructorPattern:
		m := map[string]interface{}{"type": "ConstructorPattern", "name": n.Name}
		if len(n.Patterns) > 0 {
			m["patterns"] = simplifyPatternSlice(n.Patterns)
		}
		return m

	case *TuplePattern:
		m := map[string]interface{}{"type": "TuplePattern"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyPatternSlice(n.Elements)
		}
		return m

	case *ListPattern:
		m := map[string]interface{}{"type": "ListPattern"}
		if len(n.Elements) > 0 {
			m["elements"] = simplifyPatternSlice(n.Elements)
		}
		if n.Rest != nil {
			m["rest"] = simplify(n.Rest)
		}
		return m

	case *StructPattern:
		m := map[string]interface{}{"type": "StructPattern", "rest": n.Rest, "typeName": n.TypeName}
		if len(n.Fields) > 0 {
			fields := make([]interface{}, len(n.Fields))
			for i, f := range n.Fields {
				fields[i] = map[string]interface{}{"name": f.Name, "pattern": simplify(f.Pattern)}
			}
			m["fields"] = fields
		}
		return m

	case *OrPattern:
		return map[string]interface{}{"type": "OrPattern", "left": simplify(n.Left), "right": simplify(n.Right)}

	// Types
	case *SimpleType:
		return map[string]interface{}{"type": "SimpleType", "name": n.Name}

	case *GenericType:
		return map[string]interface{}{"type": "GenericType", "name": n.Name, "args": simplifyTypeSlice(n.Args)}

	case *FuncType:
		m := map[string]interface{}{"type": "FuncType", "isAsync": n.IsAsync}
		if len(n.Params) > 0 {
			m["params"] = simplifyTypeSlice(n.Params)
		}
		if n.Return != nil {
			m["return"] = simplify(n.Return)
		}
		return m

	case *UnionType:
		return map[string]interface{}{"type": "UnionType", "members": simplifyTypeSlice(n.Members)}

	case *TupleType:
		return map[string]interface{}{"type": "TupleType", "elements": simplifyTypeSlice(n.Elements)}

	case *RValueRefType:
		return map[string]interface{}{"type": "RValueRefType", "inner": simplify(n.Inner)}

	case *Param:
		m := map[string]interface{}{"type": "Param", "name": n.Name}
		if n.Type != nil {
			m["typeAnnotation"] = simplify(n.Type)
		}
		return m

	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", node), "_note": "not yet handled by printer"}
	}
}

func simplifyExprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = simplify(e)
	}
	return result
}

func simplifyStmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = simplify(s)
	}
	return result
}

func simplifyTypeSlice(types []Type) []interface{} {
	result := make([]interface{}, len(types))
	for i, t := range types {
		result[i] = simplify(t)
	}
	return result
}

func simplifyPatternSlice(patterns []Pattern) []interface{} {
	result := make([]interface{}, len(patterns))
	for i, p := range patterns {
		result[i] = simplify(p)
	}
	return result
}

func simplifySlice(items interface{}) []interface{} {
	switch items := items.(type) {
	case []*ImportDecl:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	case []*TypeDecl:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	case []*TraitDecl:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	case []*ImplDecl:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	case []*FuncDecl:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	case []*Param:
		return mapSimplify(len(items), func(i int) interface{} { return items[i] })
	default:
		return []interface{}{fmt.Sprintf("unhandled slice type: %T", items)}
	}
}

func mapSimplify(n int, at func(int) interface{}) []interface{} {
	result := make([]interface{}, n)
	for i := 0; i < n; i++ {
		result[i] = simplify(at(i))
	}
	return result
}

func simplifyTypeDef(def TypeDef) interface{} {
	switch d := def.(type) {
	case *AlgebraicType:
		ctors := make([]interface{}, len(d.Constructors))
		for i, c := range d.Constructors {
			ctors[i] = map[string]interface{}{"name": c.Name, "fields": simplifyTypeSlice(c.Fields)}
		}
		return map[string]interface{}{"type": "AlgebraicType", "constructors": ctors}
	case *RecordTypeDef:
		fields := make([]interface{}, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = map[string]interface{}{"name": f.Name, "type": simplify(f.Type)}
		}
		return map[string]interface{}{"type": "RecordTypeDef", "fields": fields}
	case *TypeAliasDef:
		return map[string]interface{}{"type": "TypeAliasDef", "target": simplify(d.Target)}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", def)}
	}
}

func literalKindString(kind LiteralKind) string {
	switch kind {
	case IntLit:
		return "Int"
	case FloatLit:
		return "Float"
	case StringLit:
		return "String"
	case BoolLit:
		return "Bool"
	case NilLit:
		return "Nil"
	default:
		return "Unknown"
	}
}
