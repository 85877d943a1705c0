package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdkce/examreg-backend/internal/curriculum"
	"github.com/kdkce/examreg-backend/internal/response"
)

// SubjectHandler serves the static curriculum catalog.
type SubjectHandler struct{}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler() *SubjectHandler {
	return &SubjectHandler{}
}

// ListSubjects godoc
// GET /api/v1/subjects?branch=cse&semester=3
// Returns the subjects offered for the branch and semester. Unknown
// combinations yield an empty list, not an error.
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	branch := c.Query("branch")
	semester := c.Query("semester")
	if branch == "" || semester == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	subjects := curriculum.SubjectsFor(branch, semester)
	if subjects == nil {
		subjects = []curriculum.Subject{}
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// ListBranches godoc
// GET /api/v1/subjects/branches
func (h *SubjectHandler) ListBranches(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"branches": curriculum.Branches()})
}

// ListSemesters godoc
// GET /api/v1/subjects/semesters
func (h *SubjectHandler) ListSemesters(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"semesters": curriculum.Semesters()})
}
