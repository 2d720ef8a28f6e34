package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/services"
	"github.com/nimbushr/hrms/internal/utils"
)

type CandidateHandler struct {
	svc services.CandidateService
}

func NewCandidateHandler(svc services.CandidateService) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

func (h *CandidateHandler) List(c *gin.Context) {
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

// Create accepts a multipart form with name, email and an optional "resume"
// file.
func (h *CandidateHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	name := c.PostForm("name")
	email := c.PostForm("email")

	up, closeUp, hasFile, err := formUpload(c, "resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "CandidateHandler.Create", "failed to open upload", err))
		return
	}
	if hasFile {
		defer closeUp()
	} else {
		up = nil
	}

	cand, err := h.svc.Create(c.Request.Context(), name, email, userID, up)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

// UploadResume replaces the candidate's resume with the uploaded file.
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	up, closeUp, hasFile, err := formUpload(c, "resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "CandidateHandler.UploadResume", "failed to open upload", err))
		return
	}
	if !hasFile {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CandidateHandler.UploadResume", "missing multipart field 'resume'", nil))
		return
	}
	defer closeUp()

	cand, err := h.svc.UploadResume(c.Request.Context(), c.Param("id"), userID, *up)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

type updateCandidateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (h *CandidateHandler) Update(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req updateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CandidateHandler.Update", "invalid request body", err))
		return
	}

	cand, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate removed"})
}

func (h *CandidateHandler) Promote(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	cand, emp, err := h.svc.Promote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidate": cand, "employee": emp})
}

// DownloadResume streams the candidate's resume as an attachment.
func (h *CandidateHandler) DownloadResume(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	content, err := h.svc.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	serveContent(c, content)
}
