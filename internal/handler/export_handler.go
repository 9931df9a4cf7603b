package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/practiceapp/internal/export"
	"github.com/locvowork/practiceapp/internal/logger"
	"github.com/locvowork/practiceapp/internal/service"
	"github.com/locvowork/practiceapp/internal/service/serviceutils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler renders the employee roster as a workbook.
type ExportHandler struct {
	svc      *service.EmployeeService
	exporter *export.Exporter
}

func NewExportHandler(svc *service.EmployeeService, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{svc: svc, exporter: exporter}
}

func (h *ExportHandler) RosterHandler(c echo.Context) error {
	ctx := c.Request().Context()
	start := time.Now()

	rows, err := h.svc.Roster(ctx)
	if err != nil {
		return serviceutils.ResponseFailure(c, "Failed to load roster", err)
	}

	data, err := h.exporter.ToBytes(rows)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render roster", err)
	}

	logger.InfoLog(ctx, "Roster export finished in %v, exported %d employees", time.Since(start), len(rows))

	filename := fmt.Sprintf("employee_roster_%s.xlsx", start.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
