// Package ownership is the single authorization rule for user-generated
// content: a record may be mutated only by the account that created it.
package ownership

import (
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
)

// Authorize allows a mutation only when the requester is the record's
// owner. Roles grant no bypass here: an admin editing someone else's post
// is forbidden just like anyone else. Callers must resolve the record
// first so that "not found" and "forbidden" stay distinct outcomes.
func Authorize(requester, owner id.UserID) error {
	if requester.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "requester identity required")
	}
	if requester != owner {
		return dErrors.New(dErrors.CodeForbidden, "only the owner may modify this resource")
	}
	return nil
}
