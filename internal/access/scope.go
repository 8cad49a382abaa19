// Package access decides which records an authenticated caller may see.
package access

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleDoctor   = "doctor"
	RoleCustomer = "customer"
)

// StaffRoles are the roles that sign in to the dashboard.
var StaffRoles = []string{RoleAdmin, RoleStaff, RoleDoctor}

// Scope is the caller identity as far as row visibility is concerned.
type Scope struct {
	Role     string
	UserID   int64
	BranchID int64
}

// FromContext reads the identity JWTAuth stored on the request.
func FromContext(c *gin.Context) Scope {
	return Scope{
		Role:     c.GetString("role"),
		UserID:   c.GetInt64("user_id"),
		BranchID: c.GetInt64("branch_id"),
	}
}

func (s Scope) IsAdmin() bool  { return s.Role == RoleAdmin }
func (s Scope) IsStaff() bool  { return s.Role == RoleStaff }
func (s Scope) IsDoctor() bool { return s.Role == RoleDoctor }

func (s Scope) IsCustomer() bool { return s.Role == RoleCustomer }

// SelfService is the scope for /customer/:customerId routes. A customer token is
// already confined there by its own id; staff acting for a customer keep their narrowing.
func (s Scope) SelfService() Scope {
	if s.IsCustomer() {
		return Scope{Role: RoleAdmin, UserID: s.UserID}
	}
	return s
}

// Narrow returns a gorm scope restricting a query to the caller's rows.
// Doctors see rows assigned to them; staff attached to a branch see that branch.
// An empty column name skips that restriction.
func (s Scope) Narrow(branchCol, doctorCol string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch s.Role {
		case RoleAdmin:
			return db
		case RoleDoctor:
			if doctorCol != "" {
				return db.Where(doctorCol+" = ?", s.UserID)
			}
			if branchCol != "" && s.BranchID > 0 {
				return db.Where(branchCol+" = ?", s.BranchID)
			}
			return db
		case RoleStaff:
			if branchCol != "" && s.BranchID > 0 {
				return db.Where(branchCol+" = ?", s.BranchID)
			}
			return db
		default:
			// unknown roles never see anything
			return db.Where("1 = 0")
		}
	}
}

// Allows applies the same policy to a single loaded record.
func (s Scope) Allows(branchID int64, doctorID *int64) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleDoctor:
		return doctorID != nil && *doctorID == s.UserID
	case RoleStaff:
		return s.BranchID == 0 || branchID == s.BranchID
	default:
		return false
	}
}

// AllowsBranch is Allows for records that have a branch but no doctor.
func (s Scope) AllowsBranch(branchID int64) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleStaff, RoleDoctor:
		return s.BranchID == 0 || branchID == s.BranchID
	default:
		return false
	}
}
