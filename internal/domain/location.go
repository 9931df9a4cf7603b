package domain

// Location, Country and Region form a chain of optional references:
// department to location to country to region.
type Location struct {
	ID            *int64
	StreetAddress string
	PostalCode    string
	City          string
	StateProvince string

	country *Country
}

func (l *Location) IsNew() bool { return l.ID == nil }

func (l *Location) AssignID(id int64) {
	if l.ID == nil {
		l.ID = NewID(id)
	}
}

func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return false
	}
	return l == other || sameID(l.ID, other.ID)
}

func (l *Location) HashCode() int { return locationHash }

func (l *Location) Country() *Country { return l.country }

func (l *Location) SetCountry(country *Country) { l.country = country }

func (l *Location) WithCountry(country *Country) *Location {
	l.SetCountry(country)
	return l
}

type Country struct {
	ID          *int64
	CountryName string

	region *Region
}

func (c *Country) IsNew() bool { return c.ID == nil }

func (c *Country) AssignID(id int64) {
	if c.ID == nil {
		c.ID = NewID(id)
	}
}

func (c *Country) Equal(other *Country) bool {
	if c == nil || other == nil {
		return false
	}
	return c == other || sameID(c.ID, other.ID)
}

func (c *Country) HashCode() int { return countryHash }

func (c *Country) Region() *Region { return c.region }

func (c *Country) SetRegion(region *Region) { c.region = region }

func (c *Country) WithRegion(region *Region) *Country {
	c.SetRegion(region)
	return c
}

type Region struct {
	ID         *int64
	RegionName string
}

func (r *Region) IsNew() bool { return r.ID == nil }

func (r *Region) AssignID(id int64) {
	if r.ID == nil {
		r.ID = NewID(id)
	}
}

func (r *Region) Equal(other *Region) bool {
	if r == nil || other == nil {
		return false
	}
	return r == other || sameID(r.ID, other.ID)
}

func (r *Region) HashCode() int { return regionHash }
