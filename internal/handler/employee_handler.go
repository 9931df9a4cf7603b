package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/service"
	"github.com/locvowork/practiceapp/internal/service/serviceutils"
)

type EmployeeHandler struct {
	svc *service.EmployeeService
}

func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to create employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created successfully", emp)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to get employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", emp)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to update employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee updated successfully", emp)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceutils.ResponseFailure(c, "Failed to delete employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee deleted successfully", nil)
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	var (
		filter domain.EmployeeFilter
		err    error
	)
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid limit", err)
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid offset", err)
	}
	if filter.DepartmentID, err = queryID(c, "department_id"); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department_id", err)
	}
	if filter.ManagerID, err = queryID(c, "manager_id"); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid manager_id", err)
	}

	employees, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to list employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully", employees)
}

func (h *EmployeeHandler) AssignJobHandler(c echo.Context) error {
	id, jobID, err := twoIDs(c, "id", "jobId")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid ID", err)
	}

	emp, err := h.svc.AssignJob(c.Request().Context(), id, jobID)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to assign job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job assigned successfully", emp)
}

func (h *EmployeeHandler) ReleaseJobHandler(c echo.Context) error {
	id, jobID, err := twoIDs(c, "id", "jobId")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid ID", err)
	}

	emp, err := h.svc.ReleaseJob(c.Request().Context(), id, jobID)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to release job", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job released successfully", emp)
}

func (h *EmployeeHandler) ReplaceJobsHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	var req JobIDsRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.ReplaceJobs(c.Request().Context(), id, req.JobIDs)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to replace jobs", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Jobs replaced successfully", emp)
}

func (h *EmployeeHandler) SetJobHistoryHandler(c echo.Context) error {
	id, historyID, err := twoIDs(c, "id", "historyId")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid ID", err)
	}

	emp, err := h.svc.SetJobHistory(c.Request().Context(), id, historyID)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to attach job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job history attached successfully", emp)
}

func (h *EmployeeHandler) ClearJobHistoryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.ClearJobHistory(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to clear job history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Job history cleared successfully", emp)
}

func (h *EmployeeHandler) SetManagerHandler(c echo.Context) error {
	id, managerID, err := twoIDs(c, "id", "managerId")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid ID", err)
	}

	emp, err := h.svc.SetManager(c.Request().Context(), id, &managerID)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to set manager", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Manager set successfully", emp)
}

func (h *EmployeeHandler) ClearManagerHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.SetManager(c.Request().Context(), id, nil)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to clear manager", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Manager cleared successfully", emp)
}

func (h *EmployeeHandler) SetDepartmentHandler(c echo.Context) error {
	id, departmentID, err := twoIDs(c, "id", "departmentId")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid ID", err)
	}

	emp, err := h.svc.SetDepartment(c.Request().Context(), id, &departmentID)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to set department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department set successfully", emp)
}

func (h *EmployeeHandler) ClearDepartmentHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.SetDepartment(c.Request().Context(), id, nil)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to clear department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department cleared successfully", emp)
}

func (h *EmployeeHandler) ReportHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	report, err := h.svc.Report(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to generate report", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee report generated successfully", report)
}

func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	docs, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if errors.Is(err, service.ErrSearchDisabled) {
		return serviceutils.ResponseError(c, http.StatusServiceUnavailable, "Search is not available", err)
	}
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to search employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees found", docs)
}

func (h *EmployeeHandler) ReindexHandler(c echo.Context) error {
	n, err := h.svc.Reindex(c.Request().Context())
	if errors.Is(err, service.ErrSearchDisabled) {
		return serviceutils.ResponseError(c, http.StatusServiceUnavailable, "Search is not available", err)
	}
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to reindex employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees reindexed successfully", map[string]int{"indexed": n})
}

func twoIDs(c echo.Context, first, second string) (int64, int64, error) {
	a, err := pathID(c, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := pathID(c, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
