package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobHistory_SetEmployeeRoutesThroughOwner(t *testing.T) {
	employee := &Employee{ID: NewID(1)}
	history := &JobHistory{ID: NewID(1)}

	history.SetEmployee(employee)
	assert.Same(t, history, employee.JobHistory())

	history.WithEmployee(nil)
	assert.Nil(t, employee.JobHistory())
	assert.Nil(t, history.Employee())
}

func TestJobHistory_UnidirectionalReferences(t *testing.T) {
	job := &Job{ID: NewID(1)}
	department := &Department{ID: NewID(1)}
	history := (&JobHistory{}).WithJob(job).WithDepartment(department)

	assert.Same(t, job, history.Job())
	assert.Same(t, department, history.Department())
	assert.Nil(t, job.Employee())
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{
		"english":  LanguageEnglish,
		" FRENCH ": LanguageFrench,
		"Spanish":  LanguageSpanish,
		"":         "",
	} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLanguage("klingon")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestDepartment_Location(t *testing.T) {
	region := &Region{ID: NewID(1), RegionName: "Europe"}
	country := (&Country{ID: NewID(1), CountryName: "France"}).WithRegion(region)
	location := (&Location{City: "Paris"}).WithCountry(country)
	department := (&Department{DepartmentName: "Sales"}).WithLocation(location)

	assert.Same(t, location, department.Location())
	assert.Same(t, region, department.Location().Country().Region())
	assert.True(t, country.Equal(&Country{ID: NewID(1)}))
	assert.False(t, location.Equal(&Location{City: "Paris"}))
}

func TestLocationChain_AssignID(t *testing.T) {
	location := &Location{City: "Lyon"}
	country := &Country{CountryName: "France"}
	region := &Region{RegionName: "Europe"}
	assert.True(t, location.IsNew())
	assert.True(t, country.IsNew())
	assert.True(t, region.IsNew())

	location.AssignID(4)
	country.AssignID(5)
	region.AssignID(6)
	region.AssignID(7)

	assert.Equal(t, int64(4), *location.ID)
	assert.Equal(t, int64(5), *country.ID)
	assert.Equal(t, int64(6), *region.ID, "ids are assigned once")
	assert.False(t, region.IsNew())
}
