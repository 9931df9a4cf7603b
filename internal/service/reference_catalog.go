package service

import (
	"context"
	"strings"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
)

type TaskInput struct {
	Title       string
	Description string
}

// LocationInput replaces the location's fields; a nil CountryID clears the
// country.
type LocationInput struct {
	StreetAddress string
	PostalCode    string
	City          string
	StateProvince string
	CountryID     *int64
}

type CountryInput struct {
	CountryName string
	RegionID    *int64
}

type RegionInput struct {
	RegionName string
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	return nil
}

func (in LocationInput) validate() error {
	if strings.TrimSpace(in.City) == "" {
		return invalid("city is required")
	}
	return nil
}

func (in CountryInput) validate() error {
	if strings.TrimSpace(in.CountryName) == "" {
		return invalid("country_name is required")
	}
	return nil
}

func (in RegionInput) validate() error {
	if strings.TrimSpace(in.RegionName) == "" {
		return invalid("region_name is required")
	}
	return nil
}

func (s *CatalogService) CreateTask(ctx context.Context, in TaskInput) (*TaskDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &domain.Task{Title: strings.TrimSpace(in.Title), Description: in.Description}
	if err := s.repos.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	dto := toTaskDTO(t)
	return &dto, nil
}

func (s *CatalogService) GetTask(ctx context.Context, id int64) (*TaskDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.repos.Tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(t)
	return &dto, nil
}

// UpdateTask rewrites title and description. Job links are changed through
// UpdateJob.
func (s *CatalogService) UpdateTask(ctx context.Context, id int64, in TaskInput) (*TaskDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repos.Tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Title = strings.TrimSpace(in.Title)
	t.Description = in.Description
	if err := s.repos.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	dto := toTaskDTO(t)
	return &dto, nil
}

// DeleteTask removes the task from every job that lists it.
func (s *CatalogService) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Tasks.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted task %d", id)
	return nil
}

func (s *CatalogService) ListTasks(ctx context.Context) ([]TaskDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.repos.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out, nil
}

func (s *CatalogService) CreateLocation(ctx context.Context, in LocationInput) (*LocationDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	country, err := s.countryRef(ctx, in.CountryID)
	if err != nil {
		return nil, err
	}
	l := &domain.Location{}
	applyLocation(l, in, country)
	if err := s.repos.Locations.Create(ctx, l); err != nil {
		return nil, err
	}
	dto := toLocationDTO(l)
	return &dto, nil
}

func (s *CatalogService) GetLocation(ctx context.Context, id int64) (*LocationDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, err := s.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toLocationDTO(l)
	return &dto, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id int64, in LocationInput) (*LocationDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	country, err := s.countryRef(ctx, in.CountryID)
	if err != nil {
		return nil, err
	}
	applyLocation(l, in, country)
	if err := s.repos.Locations.Update(ctx, l); err != nil {
		return nil, err
	}
	dto := toLocationDTO(l)
	return &dto, nil
}

// DeleteLocation removes the location; departments at it keep no location.
func (s *CatalogService) DeleteLocation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Locations.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted location %d", id)
	return nil
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]LocationDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations, err := s.repos.Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LocationDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationDTO(l))
	}
	return out, nil
}

func applyLocation(l *domain.Location, in LocationInput, country *domain.Country) {
	l.StreetAddress = in.StreetAddress
	l.PostalCode = in.PostalCode
	l.City = strings.TrimSpace(in.City)
	l.StateProvince = in.StateProvince
	l.SetCountry(country)
}

func (s *CatalogService) CreateCountry(ctx context.Context, in CountryInput) (*CountryDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	region, err := s.regionRef(ctx, in.RegionID)
	if err != nil {
		return nil, err
	}
	c := (&domain.Country{CountryName: strings.TrimSpace(in.CountryName)}).WithRegion(region)
	if err := s.repos.Countries.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toCountryDTO(c)
	return &dto, nil
}

func (s *CatalogService) GetCountry(ctx context.Context, id int64) (*CountryDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.repos.Countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCountryDTO(c)
	return &dto, nil
}

func (s *CatalogService) UpdateCountry(ctx context.Context, id int64, in CountryInput) (*CountryDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repos.Countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	region, err := s.regionRef(ctx, in.RegionID)
	if err != nil {
		return nil, err
	}
	c.CountryName = strings.TrimSpace(in.CountryName)
	c.SetRegion(region)
	if err := s.repos.Countries.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := toCountryDTO(c)
	return &dto, nil
}

func (s *CatalogService) DeleteCountry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Countries.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted country %d", id)
	return nil
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]CountryDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	countries, err := s.repos.Countries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CountryDTO, 0, len(countries))
	for _, c := range countries {
		out = append(out, toCountryDTO(c))
	}
	return out, nil
}

func (s *CatalogService) CreateRegion(ctx context.Context, in RegionInput) (*RegionDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &domain.Region{RegionName: strings.TrimSpace(in.RegionName)}
	if err := s.repos.Regions.Create(ctx, r); err != nil {
		return nil, err
	}
	dto := toRegionDTO(r)
	return &dto, nil
}

func (s *CatalogService) GetRegion(ctx context.Context, id int64) (*RegionDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.repos.Regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRegionDTO(r)
	return &dto, nil
}

func (s *CatalogService) UpdateRegion(ctx context.Context, id int64, in RegionInput) (*RegionDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.repos.Regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.RegionName = strings.TrimSpace(in.RegionName)
	if err := s.repos.Regions.Update(ctx, r); err != nil {
		return nil, err
	}
	dto := toRegionDTO(r)
	return &dto, nil
}

func (s *CatalogService) DeleteRegion(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Regions.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted region %d", id)
	return nil
}

func (s *CatalogService) ListRegions(ctx context.Context) ([]RegionDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions, err := s.repos.Regions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RegionDTO, 0, len(regions))
	for _, r := range regions {
		out = append(out, toRegionDTO(r))
	}
	return out, nil
}
