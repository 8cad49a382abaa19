// Package archive is the soft-delete capability shared by customers, animals,
// vaccinations, branches and users.
package archive

// Archivable records are hidden from normal listings instead of being removed.
type Archivable interface {
	Deactivate()
	Activate()
	Active() bool
}

// Archive is embedded into models; callers persist the record after toggling it.
type Archive struct {
	IsActive bool `gorm:"column:is_active;not null;default:true;index" json:"isActive"`
}

func (a *Archive) Deactivate() { a.IsActive = false }

func (a *Archive) Activate() { a.IsActive = true }

func (a Archive) Active() bool { return a.IsActive }

// New returns an active record state.
func New() Archive { return Archive{IsActive: true} }

// OnlyActive is a gorm-compatible where clause for archivable tables.
const OnlyActive = "is_active = ?"
