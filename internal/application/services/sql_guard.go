package services

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // ValueExpr implementation
)

// SQLGuard parses admin analytics SQL and rejects anything that is not a
// single SELECT over allowlisted tables. Queries never reach the database
// without passing the guard.
type SQLGuard struct {
	parser        *parser.Parser
	allowedTables map[string]bool
}

// NewSQLGuard creates a guard restricted to the given tables.
func NewSQLGuard(allowedTables ...string) *SQLGuard {
	allowed := make(map[string]bool, len(allowedTables))
	for _, table := range allowedTables {
		allowed[strings.ToLower(table)] = true
	}
	return &SQLGuard{
		parser:        parser.New(),
		allowedTables: allowed,
	}
}

// Validate returns an error unless sql is exactly one SELECT statement whose
// table references are all allowlisted.
func (g *SQLGuard) Validate(sql string) error {
	stmtNodes, _, err := g.parser.Parse(sql, "", "")
	if err != nil {
		return fmt.Errorf("SQL parse error: %v", err)
	}

	if len(stmtNodes) != 1 {
		return fmt.Errorf("only single SQL statements are allowed")
	}

	if _, ok := stmtNodes[0].(*ast.SelectStmt); !ok {
		return fmt.Errorf("only SELECT statements are allowed in analytics")
	}

	visitor := &tableAllowlistVisitor{allowed: g.allowedTables}
	stmtNodes[0].Accept(visitor)
	return visitor.err
}

// tableAllowlistVisitor walks the AST collecting table name references,
// including those inside subqueries and joins.
type tableAllowlistVisitor struct {
	allowed map[string]bool
	err     error
}

func (v *tableAllowlistVisitor) Enter(in ast.Node) (ast.Node, bool) {
	if v.err != nil {
		return in, true
	}
	if tableName, ok := in.(*ast.TableName); ok {
		name := strings.ToLower(tableName.Name.L)
		if !v.allowed[name] {
			v.err = fmt.Errorf("table %q is not allowed in analytics queries", tableName.Name.O)
			return in, true
		}
	}
	return in, false
}

func (v *tableAllowlistVisitor) Leave(in ast.Node) (ast.Node, bool) {
	return in, v.err == nil
}
