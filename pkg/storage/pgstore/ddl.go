package pgstore

import (
	"fmt"
	"strings"

	"github.com/tangibleinc/dataview/pkg/schema"
)

// ddl renders the CREATE TABLE statement for the store's column set.
func (s *Store) ddl() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quoteIdent(s.table))
	b.WriteString("    \"id\" BIGSERIAL PRIMARY KEY")
	for _, column := range s.fields {
		fmt.Fprintf(&b, ",\n    %s %s", quoteIdent(column.Name), columnDDL(column.Spec))
	}
	b.WriteString("\n)")
	return b.String()
}

// columnDDL maps a generic column spec onto a Postgres column definition.
func columnDDL(spec schema.ColumnSpec) string {
	sqlType := pgType(spec)
	if spec.Default == nil {
		return sqlType
	}
	return sqlType + " DEFAULT " + defaultLiteral(spec)
}

func pgType(spec schema.ColumnSpec) string {
	switch spec.Type {
	case "varchar":
		length := spec.Length
		if length <= 0 {
			length = 255
		}
		return fmt.Sprintf("VARCHAR(%d)", length)
	case "text", "longtext":
		return "TEXT"
	case "bigint":
		return "BIGINT"
	case "int", "integer":
		return "INTEGER"
	case "tinyint":
		return "BOOLEAN"
	case "date":
		return "DATE"
	case "datetime":
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func defaultLiteral(spec schema.ColumnSpec) string {
	switch v := spec.Default.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case nil:
		return "NULL"
	default:
		if spec.Type == "tinyint" {
			if fmt.Sprint(v) == "0" {
				return "FALSE"
			}
			return "TRUE"
		}
		return fmt.Sprint(v)
	}
}
