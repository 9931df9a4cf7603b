package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/domain"
)

func TestCatalogService_JobTasks(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.Catalog.CreateTask(f.ctx, TaskInput{Title: " review ", Description: "code review"})
	require.NoError(t, err)
	assert.Equal(t, "review", review.Title)
	deploy, err := f.svc.Catalog.CreateTask(f.ctx, TaskInput{Title: "deploy"})
	require.NoError(t, err)

	job, err := f.svc.Catalog.CreateJob(f.ctx, JobInput{JobTitle: "Engineer", TaskIDs: []int64{review.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{review.ID}, job.TaskIDs)

	got, err := f.svc.Catalog.GetTask(f.ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{job.ID}, got.JobIDs)

	updated, err := f.svc.Catalog.UpdateJob(f.ctx, job.ID, JobInput{JobTitle: "Senior Engineer"})
	require.NoError(t, err)
	assert.Equal(t, []int64{review.ID}, updated.TaskIDs, "nil task ids keep the tasks")

	updated, err = f.svc.Catalog.UpdateJob(f.ctx, job.ID, JobInput{JobTitle: "Senior Engineer", TaskIDs: []int64{deploy.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{deploy.ID}, updated.TaskIDs)
	got, err = f.svc.Catalog.GetTask(f.ctx, review.ID)
	require.NoError(t, err)
	assert.Empty(t, got.JobIDs)

	_, err = f.svc.Catalog.UpdateJob(f.ctx, job.ID, JobInput{JobTitle: "x", TaskIDs: []int64{999}})
	assert.True(t, errors.Is(err, domain.ErrValidation), "unknown task is a bad reference")

	require.NoError(t, f.svc.Catalog.DeleteTask(f.ctx, deploy.ID))
	after, err := f.svc.Catalog.GetJob(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, after.TaskIDs)

	_, err = f.svc.Catalog.GetTask(f.ctx, deploy.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Catalog.CreateTask(f.ctx, TaskInput{Title: " "})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCatalogService_TaskUpdateAndList(t *testing.T) {
	f := newFixture(t)

	task, err := f.svc.Catalog.CreateTask(f.ctx, TaskInput{Title: "triage"})
	require.NoError(t, err)
	updated, err := f.svc.Catalog.UpdateTask(f.ctx, task.ID, TaskInput{Title: "triage bugs", Description: "daily"})
	require.NoError(t, err)
	assert.Equal(t, "triage bugs", updated.Title)
	assert.Equal(t, "daily", updated.Description)

	list, err := f.svc.Catalog.ListTasks(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "triage bugs", list[0].Title)

	_, err = f.svc.Catalog.UpdateTask(f.ctx, 999, TaskInput{Title: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCatalogService_LocationChain(t *testing.T) {
	f := newFixture(t)

	region, err := f.svc.Catalog.CreateRegion(f.ctx, RegionInput{RegionName: "Europe"})
	require.NoError(t, err)
	country, err := f.svc.Catalog.CreateCountry(f.ctx, CountryInput{CountryName: "France", RegionID: &region.ID})
	require.NoError(t, err)
	assert.Equal(t, region.ID, *country.RegionID)

	location, err := f.svc.Catalog.CreateLocation(f.ctx, LocationInput{
		StreetAddress: "1 rue de Rivoli", PostalCode: "75001", City: " Paris ", CountryID: &country.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris", location.City)
	assert.Equal(t, country.ID, *location.CountryID)

	dept, err := f.svc.Catalog.CreateDepartment(f.ctx, DepartmentInput{DepartmentName: "Sales", LocationID: &location.ID})
	require.NoError(t, err)
	assert.Equal(t, location.ID, *dept.LocationID)

	require.NoError(t, f.svc.Catalog.DeleteLocation(f.ctx, location.ID))
	got, err := f.svc.Catalog.GetDepartment(f.ctx, dept.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LocationID)

	require.NoError(t, f.svc.Catalog.DeleteRegion(f.ctx, region.ID))
	c, err := f.svc.Catalog.GetCountry(f.ctx, country.ID)
	require.NoError(t, err)
	assert.Nil(t, c.RegionID)
}

func TestCatalogService_LocationReferences(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Catalog.CreateDepartment(f.ctx, DepartmentInput{DepartmentName: "Sales", LocationID: int64p(404)})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = f.svc.Catalog.CreateLocation(f.ctx, LocationInput{City: "Lyon", CountryID: int64p(404)})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = f.svc.Catalog.CreateCountry(f.ctx, CountryInput{CountryName: "Spain", RegionID: int64p(404)})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.svc.Catalog.CreateLocation(f.ctx, LocationInput{})
	assert.True(t, errors.Is(err, domain.ErrValidation), "city is required")
	_, err = f.svc.Catalog.CreateCountry(f.ctx, CountryInput{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = f.svc.Catalog.CreateRegion(f.ctx, RegionInput{})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.svc.Catalog.UpdateRegion(f.ctx, 404, RegionInput{RegionName: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Catalog.UpdateCountry(f.ctx, 404, CountryInput{CountryName: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCatalogService_UpdateLocationAndCountry(t *testing.T) {
	f := newFixture(t)

	region, err := f.svc.Catalog.CreateRegion(f.ctx, RegionInput{RegionName: "Asia"})
	require.NoError(t, err)
	renamed, err := f.svc.Catalog.UpdateRegion(f.ctx, region.ID, RegionInput{RegionName: "APAC"})
	require.NoError(t, err)
	assert.Equal(t, "APAC", renamed.RegionName)

	country, err := f.svc.Catalog.CreateCountry(f.ctx, CountryInput{CountryName: "Japan"})
	require.NoError(t, err)
	assert.Nil(t, country.RegionID)
	country, err = f.svc.Catalog.UpdateCountry(f.ctx, country.ID, CountryInput{CountryName: "Japan", RegionID: &region.ID})
	require.NoError(t, err)
	assert.Equal(t, region.ID, *country.RegionID)

	location, err := f.svc.Catalog.CreateLocation(f.ctx, LocationInput{City: "Osaka", CountryID: &country.ID})
	require.NoError(t, err)
	location, err = f.svc.Catalog.UpdateLocation(f.ctx, location.ID, LocationInput{City: "Tokyo", StateProvince: "Kanto"})
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", location.City)
	assert.Equal(t, "Kanto", location.StateProvince)
	assert.Nil(t, location.CountryID, "a nil country id clears the country")

	locations, err := f.svc.Catalog.ListLocations(f.ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 1)
	countries, err := f.svc.Catalog.ListCountries(f.ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 1)
	regions, err := f.svc.Catalog.ListRegions(f.ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 1)

	require.NoError(t, f.svc.Catalog.DeleteCountry(f.ctx, country.ID))
	_, err = f.svc.Catalog.GetLocation(f.ctx, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
