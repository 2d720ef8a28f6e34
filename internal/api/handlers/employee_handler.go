package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/services"
	"github.com/nimbushr/hrms/internal/utils"
)

type EmployeeHandler struct {
	svc services.EmployeeService
}

func NewEmployeeHandler(svc services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EmployeeHandler.Update", "invalid request body", err))
		return
	}

	var joinDate *time.Time
	if req.JoinDate != "" {
		t, err := parseDate(req.JoinDate)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "EmployeeHandler.Update", "invalid join_date", err))
			return
		}
		joinDate = &t
	}

	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Email, req.Role, joinDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee removed"})
}
