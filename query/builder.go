package query

import "strings"

// Statement is a matched pair of SQL texts sharing one positional argument
// list: a count statement returning a single scalar and a windowed select.
// Single-row lookups carry no count statement.
type Statement struct {
	CountSQL  string
	SelectSQL string
	Args      []any
}

// Spec describes one queryable resource: its table, the columns visible to
// the any-field filter, and the ordering applied when the client supplies
// no sort expression.
type Spec struct {
	Table        string
	Fields       []string
	DefaultOrder string
}

// Join describes reaching a resource through a linking table, e.g. persons
// through authorship rows naming a publication.
type Join struct {
	Table string // linking table
	On    string // linking column equal to the resource id
	Where string // linking column compared to the supplied id
}

// Related describes the two-branch union lookup: rows linked to a person
// through a linking table, plus rows matched only on a denormalized
// free-text name column.
type Related struct {
	LinkTable  string // linking table
	LinkColumn string // linking column equal to the resource id
	NameColumn string // free-text column holding author/signatory names
}

// predicate builds the any-field filter expression, lowercasing the filter
// term so matching is case-insensitive regardless of dialect collation.
// Returns the empty string when no filter is supplied.
func (s Spec) predicate(filter string) (string, []any) {
	if filter == "" {
		return "", nil
	}
	expr := "LOWER(CONCAT_WS('|', " + strings.Join(s.Fields, ", ") + ")) LIKE ?"
	return expr, []any{"%" + strings.ToLower(filter) + "%"}
}

// ByID looks up a single row by primary key. No count statement.
func (s Spec) ByID(id int) Statement {
	return Statement{
		SelectSQL: "SELECT * FROM " + s.Table + " WHERE id=?",
		Args:      []any{id},
	}
}

// FindAll lists the whole table, optionally narrowed by the any-field
// filter. orderBy is an already-validated ORDER BY clause from OrderBy.
func (s Spec) FindAll(filter, orderBy string) Statement {
	where := ""
	pred, args := s.predicate(filter)
	if pred != "" {
		where = " WHERE " + pred
	}
	return Statement{
		CountSQL:  "SELECT COUNT(*) FROM " + s.Table + where,
		SelectSQL: "SELECT * FROM " + s.Table + where + orderBy,
		Args:      args,
	}
}

// FindByLink lists rows joined through a linking table, e.g. the persons
// linked to one publication. The count and select share the join predicate
// and argument order.
func (s Spec) FindByLink(j Join, id int, filter, orderBy string) Statement {
	join := " FROM " + s.Table +
		" JOIN " + j.Table + " ON " + j.Table + "." + j.On + " = " + s.Table + ".id" +
		" WHERE " + j.Table + "." + j.Where + "=?"
	args := []any{id}
	pred, predArgs := s.predicate(filter)
	if pred != "" {
		join += " AND " + pred
		args = append(args, predArgs...)
	}
	return Statement{
		CountSQL:  "SELECT COUNT(*)" + join,
		SelectSQL: "SELECT " + s.Table + ".*" + join + orderBy,
		Args:      args,
	}
}

// FindByRelated builds the two-branch union: rows linked to the person via
// the linking table are tagged TRUE AS linked; when a last name is supplied,
// rows matching the free-text name column with no linking row (the NOT
// EXISTS anti-join prevents double counting) are unioned in, tagged FALSE.
// Branch counts are summed so the total stays consistent with the union.
func (s Spec) FindByRelated(r Related, personID int, lastName, filter, orderBy string) Statement {
	fields := strings.Join(s.Fields, ", ")
	pred, predArgs := s.predicate(filter)
	and := ""
	if pred != "" {
		and = " AND " + pred
	}

	linked := " FROM " + s.Table +
		" JOIN " + r.LinkTable + " ON " + r.LinkTable + "." + r.LinkColumn + " = " + s.Table + ".id" +
		" WHERE " + r.LinkTable + ".person_id=?" + and
	countSQL := "SELECT (SELECT COUNT(*)" + linked + ")"
	selectSQL := "SELECT " + fields + ", TRUE AS linked" + linked
	args := append([]any{personID}, predArgs...)

	if lastName != "" {
		antiJoin := " AND NOT EXISTS (SELECT 0 FROM " + r.LinkTable +
			" WHERE " + r.LinkTable + "." + r.LinkColumn + " = " + s.Table + ".id" +
			" AND " + r.LinkTable + ".person_id = ?)"
		unlinked := " FROM " + s.Table +
			" WHERE " + r.NameColumn + " LIKE ?" + and + antiJoin
		countSQL += " + (SELECT COUNT(*)" + unlinked + ")"
		selectSQL += " UNION SELECT " + fields + ", FALSE AS linked" + unlinked
		args = append(args, "%"+lastName+"%")
		args = append(args, predArgs...)
		args = append(args, personID)
	}

	return Statement{
		CountSQL:  countSQL,
		SelectSQL: selectSQL + orderBy,
		Args:      args,
	}
}

// FindByOwner is the union variant for resources carrying a direct nullable
// person foreign key instead of a linking table (quotations). Unlinked rows
// are those whose owner column IS NULL, so the count degenerates to a single
// COUNT over an OR of the two branch predicates.
func (s Spec) FindByOwner(ownerColumn, nameColumn string, personID int, lastName, filter, orderBy string) Statement {
	fields := strings.Join(s.Fields, ", ")
	pred, predArgs := s.predicate(filter)
	and := ""
	if pred != "" {
		and = " AND " + pred
	}

	linkedWhere := ownerColumn + "=?" + and
	countSQL := "SELECT COUNT(*) FROM " + s.Table + " WHERE " + linkedWhere
	selectSQL := "SELECT " + fields + ", TRUE AS linked FROM " + s.Table + " WHERE " + linkedWhere
	args := append([]any{personID}, predArgs...)

	if lastName != "" {
		unlinkedWhere := nameColumn + " LIKE ? AND " + ownerColumn + " IS NULL" + and
		countSQL = "SELECT COUNT(*) FROM " + s.Table +
			" WHERE (" + linkedWhere + ") OR (" + unlinkedWhere + ")"
		selectSQL += " UNION SELECT " + fields + ", FALSE AS linked FROM " + s.Table +
			" WHERE " + unlinkedWhere
		args = append(args, "%"+lastName+"%")
		args = append(args, predArgs...)
	}

	return Statement{
		CountSQL:  countSQL,
		SelectSQL: selectSQL + orderBy,
		Args:      args,
	}
}

// LinkSpec describes one linking table for the idempotent write path. Left
// is always the person column; Right names the other side.
type LinkSpec struct {
	Table string
	Left  string
	Right string
}

// Count returns the existence pre-check for one link row.
func (l LinkSpec) Count(left, right int) Statement {
	return Statement{
		SelectSQL: "SELECT COUNT(*) AS count FROM " + l.Table +
			" WHERE " + l.Left + "=? AND " + l.Right + "=?",
		Args: []any{left, right},
	}
}

// Insert returns the link creation statement.
func (l LinkSpec) Insert(left, right int) (string, []any) {
	return "INSERT INTO " + l.Table + " (" + l.Left + ", " + l.Right + ") VALUES (?, ?)",
		[]any{left, right}
}

// Delete returns the link removal statement.
func (l LinkSpec) Delete(left, right int) (string, []any) {
	return "DELETE FROM " + l.Table + " WHERE " + l.Left + "=? AND " + l.Right + "=?",
		[]any{left, right}
}
