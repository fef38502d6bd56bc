package sqlagent

import (
	"regexp"
	"strings"
)

var (
	sqlCommentRE = regexp.MustCompile(`(?s)--.*?(?:\n|$)|/\*.*?\*/`)
	unaccentRE   = regexp.MustCompile(`(?i)\bunaccent\s*\(([^()]+)\)`)
)

// stripSQLComments removes line and block comments so keyword checks
// cannot be hidden behind them.
func stripSQLComments(sql string) string {
	return sqlCommentRE.ReplaceAllString(sql, "")
}

// isSafeSQL allows only SELECT statements and CTEs (WITH ... SELECT) and
// blocks any DML/DDL keyword.
func isSafeSQL(sql string) bool {
	clean := strings.ToLower(strings.TrimSpace(stripSQLComments(sql)))
	if !strings.HasPrefix(clean, "select") && !strings.HasPrefix(clean, "with") {
		return false
	}
	unsafe := []string{"insert ", "update ", "delete ", "drop ", "alter ", "create ", "truncate "}
	for _, kw := range unsafe {
		if strings.Contains(clean, kw) {
			return false
		}
	}
	return true
}

// targetsAllowedRelation accepts queries that mention the registros table
// or the v_contacto view.
func targetsAllowedRelation(sql string) bool {
	up := strings.ToUpper(stripSQLComments(sql))
	return strings.Contains(up, "REGISTROS") || strings.Contains(up, "V_CONTACTO")
}

// stripUnaccent rewrites unaccent(expr) to expr, the fallback used when
// the postgres extension is not installed.
func stripUnaccent(sql string) string {
	return unaccentRE.ReplaceAllString(sql, "$1")
}
