package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/response"
	"github.com/kdkce/examreg-backend/internal/service"
	"github.com/kdkce/examreg-backend/internal/validator"
)

// AdminHandler handles account registration and exam-form review.
type AdminHandler struct {
	userService       *service.UserService
	formService       *service.ExamFormService
	attendanceService *service.AttendanceService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *service.UserService, formService *service.ExamFormService, attendanceService *service.AttendanceService) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		formService:       formService,
		attendanceService: attendanceService,
	}
}

// RegisterUser godoc
// POST /api/v1/admin/users
// Creates a student or admin account.
func (h *AdminHandler) RegisterUser(c *gin.Context) {
	var req model.RegisterUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailDomainNotAllowed):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailDomain)
		case errors.Is(err, service.ErrDuplicateUser):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// CheckUsername godoc
// GET /api/v1/admin/users/check-username?username=foo
// Availability probe for the registration form.
func (h *AdminHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	available, err := h.userService.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available": available})
}

// CheckEmail godoc
// GET /api/v1/admin/users/check-email?email=foo@kdkce.edu.in
func (h *AdminHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	available, err := h.userService.EmailAvailable(c.Request.Context(), email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available": available})
}

// ListForms godoc
// GET /api/v1/admin/exam-forms
// The review queue: every submitted form, newest first.
func (h *AdminHandler) ListForms(c *gin.Context) {
	forms, err := h.formService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_forms": forms})
}

// DecideForm godoc
// POST /api/v1/admin/exam-forms/:id/decide
// Approves or rejects a pending form. Decisions are final.
func (h *AdminHandler) DecideForm(c *gin.Context) {
	formID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.DecideFormRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	form, err := h.formService.Decide(c.Request.Context(), formID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrFormNotPending):
			response.Fail(c, http.StatusConflict, response.ErrFormNotPending)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_form": form})
}

// Dashboard godoc
// GET /api/v1/admin/dashboard
// Global form counts for the admin landing page.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.formService.Counts(c.Request.Context(), 0)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// MarkAttendance godoc
// POST /api/v1/admin/attendance
// Records a student's presence for a date.
func (h *AdminHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAttendanceExists):
			response.Fail(c, http.StatusConflict, response.ErrAttendanceExists)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// StudentAttendance godoc
// GET /api/v1/admin/attendance/:student_id
func (h *AdminHandler) StudentAttendance(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.attendanceService.History(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
