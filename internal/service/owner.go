package service

// verifyOwner checks that a resource belongs to the requesting user.
// Ownership is checked after existence, so a caller probing another user's
// resource learns that it exists but not anything about its contents.
func verifyOwner(resourceUserID, requesterID int64) error {
	if resourceUserID != requesterID {
		return ErrNotOwned
	}
	return nil
}
