package stormsql

import (
	"fmt"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/bucketlist/pkg/structs"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// A SelectClause contains all the parsed SQL data.
type SelectClause struct {
	SelectedFields  []string
	Count           bool
	Tablename       string
	Matcher         q.Matcher
	Skip            int
	Limit           int
	OrderBy         []string
	OrderByReversed bool

	table Table
}

// ParseSelect parses the given SELECT statement against the schema.
func ParseSelect(schema Schema, sql string) (*SelectClause, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse SQL")
	}

	s, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, errors.New("not a select statement")
	}

	var sc SelectClause

	// FROM bucketlists
	if len(s.From) != 1 {
		return nil, errors.New("only one table can be selected")
	}
	from, ok := s.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.New("unsupported table expression")
	}
	sc.Tablename = sqlparser.GetTableName(from.Expr).String()
	if sc.table, err = schema.Table(sc.Tablename); err != nil {
		return nil, err
	}

	// SELECT * ...
	// SELECT owner_id,name ...
	for _, se := range s.SelectExprs {
		switch v := se.(type) {
		case *sqlparser.StarExpr:
			sc.SelectedFields = []string{}
		case *sqlparser.AliasedExpr:
			switch v := v.Expr.(type) {
			case *sqlparser.ColName:
				field, err := sc.table.Field(v.Name.String())
				if err != nil {
					return nil, err
				}
				sc.SelectedFields = append(sc.SelectedFields, field)
			case *sqlparser.FuncExpr:
				if !v.Name.EqualString("count") {
					return nil, errors.Errorf("unsupported function: %s", v.Name.String())
				}
				sc.SelectedFields = []string{}
				sc.Count = true
			default:
				return nil, errors.New("unsupported select expression")
			}
		default:
			return nil, errors.New("unsupported select expression")
		}
	}

	// WHERE
	sc.Matcher = q.And()
	if s.Where != nil {
		if sc.Matcher, err = sc.parseWhereExpr(s.Where.Expr); err != nil {
			return nil, err
		}
	}

	// LIMIT 5
	// LIMIT 2,5
	if s.Limit != nil {
		if s.Limit.Offset != nil {
			if sc.Skip, err = parseInt(s.Limit.Offset); err != nil {
				return nil, err
			}
		}
		if sc.Limit, err = parseInt(s.Limit.Rowcount); err != nil {
			return nil, err
		}
	}

	// ORDER BY updated_at
	// ORDER BY updated_at DESC
	// ORDER BY updated_at DESC, created_at ASC     => All will be DESC due to storm limitation
	for _, ob := range s.OrderBy {
		if ob.Direction == sqlparser.DescScr {
			sc.OrderByReversed = true
		}
		col, ok := ob.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported order by expression")
		}
		field, err := sc.table.Field(col.Name.String())
		if err != nil {
			return nil, err
		}
		sc.OrderBy = append(sc.OrderBy, field)
	}

	return &sc, nil
}

// Execute runs the clause on the given node.
// It returns the number of matching records for a count, otherwise the matching records.
func (sc *SelectClause) Execute(node storm.Node) (any, error) {
	query := node.Select(sc.Matcher)
	if sc.Skip > 0 {
		query = query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query = query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query = query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query = query.Reverse()
		}
	}

	if sc.Count {
		n, err := query.Count(sc.table.New())
		if err != nil && err != storm.ErrNotFound {
			return nil, errors.Wrap(err, "could not perform query")
		}
		return n, nil
	}

	records := sc.table.NewSlice()
	err := query.Find(records)
	if err != nil && err != storm.ErrNotFound {
		return nil, errors.Wrap(err, "could not perform query")
	}

	if len(sc.SelectedFields) == 0 {
		return records, nil
	}
	return sc.project(records), nil
}

// project keeps only the selected fields of each record.
func (sc *SelectClause) project(records any) []map[string]any {
	var rows []map[string]any
	structs.Each(records, func(record any) {
		row := make(map[string]any, len(sc.SelectedFields))
		for _, field := range sc.SelectedFields {
			row[field] = structs.GetField(record, field)
		}
		rows = append(rows, row)
	})
	return rows
}

func (sc *SelectClause) parseWhereExpr(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	case *sqlparser.ComparisonExpr:
		col, ok := v.Left.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("left operand must be a column")
		}
		field, err := sc.table.Field(col.Name.String())
		if err != nil {
			return nil, err
		}

		var value any
		switch sqlvalue := v.Right.(type) {
		case sqlparser.BoolVal:
			value = bool(sqlvalue)
		case sqlparser.ValTuple:
			var tuple []any
			for _, t := range sqlvalue {
				val, err := parseValue(t)
				if err != nil {
					return nil, err
				}
				tuple = append(tuple, val)
			}
			value = tuple
		case *sqlparser.SQLVal:
			if value, err = parseSQLVal(sqlvalue); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Errorf("unsupported value: %s", sqlparser.String(v.Right))
		}

		switch v.Operator {
		case sqlparser.EqualStr:
			return q.Eq(field, value), nil
		case sqlparser.NotEqualStr:
			return q.Not(q.Eq(field, value)), nil
		case sqlparser.GreaterThanStr:
			return q.Gt(field, value), nil
		case sqlparser.GreaterEqualStr:
			return q.Gte(field, value), nil
		case sqlparser.InStr:
			return q.In(field, value), nil
		case sqlparser.LessThanStr:
			return q.Lt(field, value), nil
		case sqlparser.LessEqualStr:
			return q.Lte(field, value), nil
		case sqlparser.LikeStr:
			return q.Re(field, fmt.Sprintf("%v", value)), nil
		default:
			return nil, errors.Errorf("unsupported operator: %s", v.Operator)
		}
	case *sqlparser.IsExpr:
		col, ok := v.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("IS operand must be a column")
		}
		field, err := sc.table.Field(col.Name.String())
		if err != nil {
			return nil, err
		}

		switch v.Operator {
		case sqlparser.IsTrueStr:
			return q.Eq(field, true), nil
		case sqlparser.IsFalseStr:
			return q.Eq(field, false), nil
		default:
			return nil, errors.Errorf("unsupported operator: %s", v.Operator)
		}
	case *sqlparser.AndExpr:
		left, err := sc.parseWhereExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := sc.parseWhereExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return q.And(left, right), nil
	case *sqlparser.OrExpr:
		left, err := sc.parseWhereExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := sc.parseWhereExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return q.Or(left, right), nil
	case *sqlparser.ParenExpr:
		return sc.parseWhereExpr(v.Expr)
	default:
		return nil, errors.Errorf("unsupported where expression: %s", sqlparser.String(expr))
	}
}

func parseValue(expr sqlparser.Expr) (any, error) {
	v, ok := expr.(*sqlparser.SQLVal)
	if !ok {
		return nil, errors.Errorf("unsupported value: %s", sqlparser.String(expr))
	}
	return parseSQLVal(v)
}

func parseInt(expr sqlparser.Expr) (int, error) {
	v, err := parseValue(expr)
	if err != nil {
		return 0, err
	}

	n, ok := v.(int)
	if !ok {
		return 0, errors.Errorf("not an integer: %s", sqlparser.String(expr))
	}
	return n, nil
}

func parseSQLVal(v *sqlparser.SQLVal) (value any, err error) {
	switch v.Type {
	case sqlparser.StrVal:
		value = string(v.Val)

		// Try to convert to time.Time if possible
		if t, err := dateparse.ParseAny(string(v.Val)); err == nil {
			value = t.UTC()
		}
	case sqlparser.IntVal:
		value, err = strconv.Atoi(string(v.Val))
	case sqlparser.FloatVal:
		value, err = strconv.ParseFloat(string(v.Val), 64)
	case sqlparser.HexNum:
		value, err = strconv.ParseInt(string(v.Val[2:]), 16, 64)
	case sqlparser.HexVal:
		value, err = v.HexDecode()
	case sqlparser.BitVal:
		value = v.Val[0] == '1'
	default:
		return nil, errors.New("unsupported placeholder value")
	}

	return value, errors.Wrap(err, "could not parse value")
}
