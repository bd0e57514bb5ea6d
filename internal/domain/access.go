package domain

// Access predicates. Pure decision logic over state the caller already
// fetched; every service path goes through these two functions so the
// visibility rule cannot drift between read and write paths. Only accepted
// invitations grant membership.

// CanSee reports whether the actor may view the vacation: it is published,
// the actor owns it, or the actor holds an accepted invitation for it.
func CanSee(v *Vacation, actorID string, accepted []*Invitation) bool {
	if v.Published {
		return true
	}
	return CanModify(v, actorID, accepted)
}

// CanModify reports whether the actor may mutate the vacation's contents.
// Publication never grants modification rights to non-owners.
func CanModify(v *Vacation, actorID string, accepted []*Invitation) bool {
	if v.OwnerID == actorID {
		return true
	}
	for _, inv := range accepted {
		if inv.VacationID == v.ID && inv.UserID == actorID && inv.Accepted {
			return true
		}
	}
	return false
}
