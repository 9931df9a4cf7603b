package domain

// Department is referenced by employees and job histories; it keeps no
// back-collection.
type Department struct {
	ID             *int64
	DepartmentName string

	location *Location
}

func (d *Department) IsNew() bool { return d.ID == nil }

func (d *Department) AssignID(id int64) {
	if d.ID == nil {
		d.ID = NewID(id)
	}
}

func (d *Department) Equal(other *Department) bool {
	if d == nil || other == nil {
		return false
	}
	return d == other || sameID(d.ID, other.ID)
}

func (d *Department) HashCode() int { return departmentHash }

func (d *Department) Location() *Location { return d.location }

func (d *Department) SetLocation(location *Location) { d.location = location }

func (d *Department) WithLocation(location *Location) *Department {
	d.SetLocation(location)
	return d
}
