package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/practiceapp/internal/service"
	"github.com/locvowork/practiceapp/internal/service/serviceutils"
)

// CatalogHandler serves the reference entities employees point at.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) CreateDepartmentHandler(c echo.Context) error {
	var req DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	dept, err := h.svc.CreateDepartment(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Department created successfully", dept)
}

func (h *CatalogHandler) GetDepartmentHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	dept, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department retrieved successfully", dept)
}

func (h *CatalogHandler) UpdateDepartmentHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	var req DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	dept, err := h.svc.UpdateDepartment(c.Request().Context(), id, req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department updated successfully", dept)
}

func (h *CatalogHandler) DeleteDepartmentHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	if err := h.svc.DeleteDepartment(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department deleted successfully", nil)
}

func (h *CatalogHandler) ListDepartmentsHandler(c echo.Context) error {
	depts, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list departments", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Departments listed successfully", depts)
}

func (h *CatalogHandler) CreateJobHandler(c echo.Context) error {
	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	job, err := h.svc.CreateJob(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Job created successfully", job)
}

func (h *CatalogHandler) GetJobHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job ID", err)
	}

	job, err := h.svc.GetJob(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job retrieved successfully", job)
}

func (h *CatalogHandler) UpdateJobHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job ID", err)
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	job, err := h.svc.UpdateJob(c.Request().Context(), id, req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job updated successfully", job)
}

func (h *CatalogHandler) DeleteJobHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job ID", err)
	}

	if err := h.svc.DeleteJob(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job deleted successfully", nil)
}

func (h *CatalogHandler) ListJobsHandler(c echo.Context) error {
	jobs, err := h.svc.ListJobs(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list jobs", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Jobs listed successfully", jobs)
}

func (h *CatalogHandler) CreateJobHistoryHandler(c echo.Context) error {
	var req JobHistoryRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	history, err := h.svc.CreateJobHistory(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Job history created successfully", history)
}

func (h *CatalogHandler) GetJobHistoryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job history ID", err)
	}

	history, err := h.svc.GetJobHistory(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job history retrieved successfully", history)
}

func (h *CatalogHandler) UpdateJobHistoryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job history ID", err)
	}

	var req JobHistoryRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	history, err := h.svc.UpdateJobHistory(c.Request().Context(), id, req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job history updated successfully", history)
}

func (h *CatalogHandler) DeleteJobHistoryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid job history ID", err)
	}

	if err := h.svc.DeleteJobHistory(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job history deleted successfully", nil)
}

func (h *CatalogHandler) ListJobHistoriesHandler(c echo.Context) error {
	histories, err := h.svc.ListJobHistories(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list job histories", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job histories listed successfully", histories)
}
