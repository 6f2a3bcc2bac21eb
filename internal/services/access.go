package services

import "campusevents/internal/domain"

// requireCollegeAccess allows superadmins everywhere and admins within
// their own college.
func requireCollegeAccess(actor *domain.User, collegeID string) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	switch actor.Role {
	case domain.RoleSuperadmin:
		return nil
	case domain.RoleAdmin:
		if actor.CollegeID != nil && *actor.CollegeID == collegeID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// requireSuperadmin allows superadmins only.
func requireSuperadmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.RoleSuperadmin {
		return domain.ErrForbidden
	}
	return nil
}

// requireStaff allows admins and superadmins.
func requireStaff(actor *domain.User) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSuperadmin {
		return domain.ErrForbidden
	}
	return nil
}
