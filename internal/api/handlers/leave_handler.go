package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/services"
	"github.com/nimbushr/hrms/internal/utils"
)

type LeaveHandler struct {
	svc services.LeaveService
}

func NewLeaveHandler(svc services.LeaveService) *LeaveHandler {
	return &LeaveHandler{svc: svc}
}

func (h *LeaveHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Apply accepts a multipart form: employeeId, reason, startDate, endDate
// and an optional "document" file.
func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	const op = "LeaveHandler.Apply"

	start, err := parseDate(c.PostForm("startDate"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid startDate", err))
		return
	}
	end, err := parseDate(c.PostForm("endDate"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid endDate", err))
		return
	}

	up, closeUp, hasFile, err := formUpload(c, "document")
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	if hasFile {
		defer closeUp()
	} else {
		up = nil
	}

	leave, err := h.svc.Apply(c.Request.Context(), c.PostForm("employeeId"), c.PostForm("reason"), start, end, userID, up)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

type leaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *LeaveHandler) SetStatus(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req leaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "LeaveHandler.SetStatus", "invalid request body", err))
		return
	}

	leave, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// DownloadDocument streams the supporting document, or redirects when the
// stored reference is an external URL.
func (h *LeaveHandler) DownloadDocument(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	content, redirectURL, err := h.svc.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if redirectURL != "" {
		c.Redirect(http.StatusFound, redirectURL)
		return
	}
	serveContent(c, content)
}
