package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/services"
	"github.com/nimbushr/hrms/internal/utils"
)

type AttendanceHandler struct {
	svc services.AttendanceService
}

func NewAttendanceHandler(svc services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

func (h *AttendanceHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var day *time.Time
	if q := c.Query("date"); q != "" {
		t, err := parseDate(q)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "AttendanceHandler.List", "invalid date", err))
			return
		}
		day = &t
	}

	out, err := h.svc.List(c.Request.Context(), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AttendanceHandler) CurrentEmployees(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	out, err := h.svc.CurrentEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type recordAttendanceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

func (h *AttendanceHandler) Record(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req recordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AttendanceHandler.Record", "invalid request body", err))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AttendanceHandler.Record", "invalid date", err))
		return
	}

	a, err := h.svc.Record(c.Request.Context(), req.EmployeeID, date, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
