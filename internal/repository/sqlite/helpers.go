package sqlite

import (
	"database/sql"
	"fmt"

	"tb16pix/internal/graph"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Triple Row Scanner
// ============================================================================

// tripleRow holds all columns from a triple query for scanning
type tripleRow struct {
	SubjectKind int
	Subject     string
	Predicate   string
	ObjectKind  int
	Object      string
	Datatype    sql.NullString
	Lang        sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match tripleColumns order exactly:
// subject_kind, subject, predicate, object_kind, object, datatype, lang
func (r *tripleRow) scanArgs() []interface{} {
	return []interface{}{
		&r.SubjectKind, // 1
		&r.Subject,     // 2
		&r.Predicate,   // 3
		&r.ObjectKind,  // 4
		&r.Object,      // 5
		&r.Datatype,    // 6
		&r.Lang,        // 7
	}
}

// toGraph converts the scanned row to a graph.Triple
func (r *tripleRow) toGraph() (graph.Triple, error) {
	subj := graph.Term{Kind: graph.TermKind(r.SubjectKind), Value: r.Subject}
	if subj.IsLiteral() {
		return graph.Triple{}, fmt.Errorf("cached triple has literal subject %q", r.Subject)
	}
	obj := graph.Term{
		Kind:     graph.TermKind(r.ObjectKind),
		Value:    r.Object,
		Datatype: nullToString(r.Datatype),
		Lang:     nullToString(r.Lang),
	}
	if obj.Kind > graph.KindLiteral || obj.Kind < graph.KindIRI {
		return graph.Triple{}, fmt.Errorf("cached triple has unknown object kind %d", r.ObjectKind)
	}
	return graph.T(subj, graph.IRI(r.Predicate), obj), nil
}

// tripleColumns returns the SELECT column list for triple queries
const tripleColumns = `subject_kind, subject, predicate, object_kind, object, datatype, lang`

// tripleInsertArgs prepares arguments for triple INSERT
// Returns: seq, subject_kind, subject, predicate, object_kind, object, datatype, lang
func tripleInsertArgs(seq int, tr graph.Triple) []interface{} {
	return []interface{}{
		seq,
		int(tr.Subject.Kind),
		tr.Subject.Value,
		tr.Predicate.Value,
		int(tr.Object.Kind),
		tr.Object.Value,
		stringToNull(tr.Object.Datatype),
		stringToNull(tr.Object.Lang),
	}
}
