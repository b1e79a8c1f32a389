// File: internal/car/filter.go
package car

import (
	"roadsuite_backend/internal/common"

	"github.com/google/uuid"
)

// Predicate is one WHERE condition with its arguments.
type Predicate struct {
	Expr string
	Args []interface{}
}

// FilterSpec is the explicit query plan for a car search: a conjunction of
// predicates plus an ordered list of sort clauses. It is produced by pure
// functions and applied to the database by the repository, so the visibility
// rules can be tested without a live store.
type FilterSpec struct {
	Predicates []Predicate
	Sort       []string
}

// Criteria holds the caller-supplied filter parameters.
type Criteria struct {
	Make       string
	CategoryID *uuid.UUID
	Status     *Status
	SortOrder  string
}

const ownershipExpr = "cars.dealer_profile_id IN (SELECT id FROM dealer_profiles WHERE user_id = ?)"

// BuildFilter produces the query plan for the public marketplace listing.
//
// Precedence: the not-deleted base predicate always applies; visibility then
// narrows by caller classification; optional filters layer on top. A status
// filter from a non-privileged caller is ignored rather than allowed to widen
// the approved-only restriction.
func BuildFilter(caller common.Caller, criteria Criteria) FilterSpec {
	spec := FilterSpec{
		Predicates: []Predicate{
			{Expr: "cars.is_deleted = ?", Args: []interface{}{false}},
		},
		Sort: sortClauses(criteria.SortOrder),
	}

	switch {
	case caller.IsModeratorOrAbove():
		// Unrestricted; an explicit status filter may narrow below.
	case caller.IsAuthenticated() && caller.HasRole(common.RoleDealer):
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: "(cars.status = ? OR " + ownershipExpr + ")",
			Args: []interface{}{StatusApproved, caller.UserID},
		})
	default:
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: "cars.status = ?",
			Args: []interface{}{StatusApproved},
		})
	}

	spec.Predicates = append(spec.Predicates, optionalPredicates(criteria)...)

	if criteria.Status != nil && caller.IsModeratorOrAbove() {
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: "cars.status = ?",
			Args: []interface{}{*criteria.Status},
		})
	}

	return spec
}

// BuildOwnerFilter produces the query plan for the my-cars view: the caller's
// own listings in every status, soft-deleted rows still excluded.
func BuildOwnerFilter(caller common.Caller, criteria Criteria) FilterSpec {
	spec := FilterSpec{
		Predicates: []Predicate{
			{Expr: "cars.is_deleted = ?", Args: []interface{}{false}},
			{Expr: ownershipExpr, Args: []interface{}{caller.UserID}},
		},
		Sort: sortClauses(criteria.SortOrder),
	}

	spec.Predicates = append(spec.Predicates, optionalPredicates(criteria)...)

	if criteria.Status != nil {
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: "cars.status = ?",
			Args: []interface{}{*criteria.Status},
		})
	}

	return spec
}

func optionalPredicates(criteria Criteria) []Predicate {
	var preds []Predicate
	if criteria.Make != "" {
		// Contains match, case-sensitive.
		preds = append(preds, Predicate{
			Expr: "cars.make LIKE ?",
			Args: []interface{}{"%" + criteria.Make + "%"},
		})
	}
	if criteria.CategoryID != nil && *criteria.CategoryID != uuid.Nil {
		preds = append(preds, Predicate{
			Expr: "cars.category_id = ?",
			Args: []interface{}{*criteria.CategoryID},
		})
	}
	return preds
}

// sortClauses maps a sort key to ORDER BY clauses. Make sorts carry model as
// a secondary key; unrecognized keys fall back to newest first.
func sortClauses(sortOrder string) []string {
	switch sortOrder {
	case "make":
		return []string{"cars.make ASC", "cars.model ASC"}
	case "make_desc":
		return []string{"cars.make DESC", "cars.model DESC"}
	case "price":
		return []string{"cars.price ASC"}
	case "price_desc":
		return []string{"cars.price DESC"}
	case "year":
		return []string{"cars.year ASC"}
	case "year_desc":
		return []string{"cars.year DESC"}
	case "created":
		return []string{"cars.created_utc ASC"}
	default:
		return []string{"cars.created_utc DESC"}
	}
}
