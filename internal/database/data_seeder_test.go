package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository"
)

func TestDataSeeder_SeedAndClear(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seeder := NewDataSeeder(store.Set(), nil)

	stats, err := seeder.SeedData(ctx, 2, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{
		Regions: 3, Countries: 4, Locations: 4, Tasks: 5,
		Departments: 2, Employees: 6, Jobs: 12, Histories: 6,
	}, stats)

	employees, err := store.Employees().List(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, employees, 6)
	assert.Nil(t, employees[0].Manager())
	for _, e := range employees {
		require.Len(t, e.Jobs(), 2)
		for _, job := range e.Jobs() {
			assert.Same(t, e, job.Employee())
		}
		require.NotNil(t, e.JobHistory())
		assert.Same(t, e, e.JobHistory().Employee())
		assert.True(t, e.HasJob(e.JobHistory().Job()))
		assert.NotNil(t, e.Department())
		assert.NotNil(t, e.Department().Location())
		for _, job := range e.Jobs() {
			assert.Len(t, job.Tasks(), 1)
		}
	}
	for _, e := range employees[1:] {
		assert.NotNil(t, e.Manager())
	}

	require.NoError(t, seeder.ClearData(ctx))
	employees, err = store.Employees().List(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, employees)
	jobs, err := store.Jobs().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	tasks, err := store.Tasks().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	regions, err := store.Regions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestDataSeeder_HistoriesShareDepartments(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seeder := NewDataSeeder(store.Set(), nil)

	departments, employees, jobs := GetPresetConfig(PresetSmall)
	stats, err := seeder.SeedData(ctx, departments, employees, jobs)
	require.NoError(t, err)
	require.Greater(t, stats.Histories, stats.Departments)

	histories, err := store.JobHistories().List(ctx)
	require.NoError(t, err)
	require.Len(t, histories, employees)

	perDepartment := map[int64]int{}
	for _, h := range histories {
		require.NotNil(t, h.Department())
		perDepartment[*h.Department().ID]++
	}
	assert.LessOrEqual(t, len(perDepartment), departments)
	shared := false
	for _, n := range perDepartment {
		if n > 1 {
			shared = true
		}
	}
	assert.True(t, shared, "more histories than departments means some department repeats")
}

func TestGetPresetConfig(t *testing.T) {
	d, e, j := GetPresetConfig(PresetSmall)
	assert.Equal(t, [3]int{3, 20, 1}, [3]int{d, e, j})
	d, e, j = GetPresetConfig("unknown")
	assert.Equal(t, [3]int{5, 200, 2}, [3]int{d, e, j})
}
