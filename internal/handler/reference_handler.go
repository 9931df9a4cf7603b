package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/practiceapp/internal/service"
	"github.com/locvowork/practiceapp/internal/service/serviceutils"
)

func (h *CatalogHandler) CreateTaskHandler(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	task, err := h.svc.CreateTask(c.Request().Context(), service.TaskInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create task", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Task created successfully", task)
}

func (h *CatalogHandler) GetTaskHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid task ID", err)
	}

	task, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get task", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Task retrieved successfully", task)
}

func (h *CatalogHandler) UpdateTaskHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid task ID", err)
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), id, service.TaskInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update task", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Task updated successfully", task)
}

func (h *CatalogHandler) DeleteTaskHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid task ID", err)
	}

	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete task", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Task deleted successfully", nil)
}

func (h *CatalogHandler) ListTasksHandler(c echo.Context) error {
	tasks, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list tasks", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Tasks listed successfully", tasks)
}

func (h *CatalogHandler) CreateLocationHandler(c echo.Context) error {
	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	location, err := h.svc.CreateLocation(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create location", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Location created successfully", location)
}

func (h *CatalogHandler) GetLocationHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid location ID", err)
	}

	location, err := h.svc.GetLocation(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get location", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Location retrieved successfully", location)
}

func (h *CatalogHandler) UpdateLocationHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid location ID", err)
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	location, err := h.svc.UpdateLocation(c.Request().Context(), id, req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update location", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Location updated successfully", location)
}

func (h *CatalogHandler) DeleteLocationHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid location ID", err)
	}

	if err := h.svc.DeleteLocation(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete location", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Location deleted successfully", nil)
}

func (h *CatalogHandler) ListLocationsHandler(c echo.Context) error {
	locations, err := h.svc.ListLocations(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list locations", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Locations listed successfully", locations)
}

func (h *CatalogHandler) CreateCountryHandler(c echo.Context) error {
	var req CountryRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	country, err := h.svc.CreateCountry(c.Request().Context(), service.CountryInput{CountryName: req.CountryName, RegionID: req.RegionID})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create country", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Country created successfully", country)
}

func (h *CatalogHandler) GetCountryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid country ID", err)
	}

	country, err := h.svc.GetCountry(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get country", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Country retrieved successfully", country)
}

func (h *CatalogHandler) UpdateCountryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid country ID", err)
	}

	var req CountryRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	country, err := h.svc.UpdateCountry(c.Request().Context(), id, service.CountryInput{CountryName: req.CountryName, RegionID: req.RegionID})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update country", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Country updated successfully", country)
}

func (h *CatalogHandler) DeleteCountryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid country ID", err)
	}

	if err := h.svc.DeleteCountry(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete country", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Country deleted successfully", nil)
}

func (h *CatalogHandler) ListCountriesHandler(c echo.Context) error {
	countries, err := h.svc.ListCountries(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list countries", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Countries listed successfully", countries)
}

func (h *CatalogHandler) CreateRegionHandler(c echo.Context) error {
	var req RegionRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	region, err := h.svc.CreateRegion(c.Request().Context(), service.RegionInput{RegionName: req.RegionName})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create region", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Region created successfully", region)
}

func (h *CatalogHandler) GetRegionHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid region ID", err)
	}

	region, err := h.svc.GetRegion(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get region", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Region retrieved successfully", region)
}

func (h *CatalogHandler) UpdateRegionHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid region ID", err)
	}

	var req RegionRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	region, err := h.svc.UpdateRegion(c.Request().Context(), id, service.RegionInput{RegionName: req.RegionName})
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update region", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Region updated successfully", region)
}

func (h *CatalogHandler) DeleteRegionHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid region ID", err)
	}

	if err := h.svc.DeleteRegion(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete region", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Region deleted successfully", nil)
}

func (h *CatalogHandler) ListRegionsHandler(c echo.Context) error {
	regions, err := h.svc.ListRegions(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list regions", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Regions listed successfully", regions)
}
