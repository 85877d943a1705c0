package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kdkce/examreg-backend/internal/gateway"
	"github.com/kdkce/examreg-backend/internal/middleware"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/response"
	"github.com/kdkce/examreg-backend/internal/service"
	"github.com/kdkce/examreg-backend/internal/validator"
)

// ExamFormHandler handles the student side of the exam registration flow.
type ExamFormHandler struct {
	formService       *service.ExamFormService
	attendanceService *service.AttendanceService
}

// NewExamFormHandler creates a new ExamFormHandler.
func NewExamFormHandler(formService *service.ExamFormService, attendanceService *service.AttendanceService) *ExamFormHandler {
	return &ExamFormHandler{formService: formService, attendanceService: attendanceService}
}

// StageForm godoc
// POST /api/v1/student/exam-forms/stage
// Validates and stages a subject selection ahead of payment. Nothing is
// persisted until payment is confirmed.
func (h *ExamFormHandler) StageForm(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StageFormRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.formService.Stage(c.Request.Context(), claims.UserID, &req); err != nil {
		if errors.Is(err, service.ErrInvalidSelection) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidSelection)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Exam form staged. Complete payment to submit.",
	})
}

// GetStagedForm godoc
// GET /api/v1/student/exam-forms/staged
func (h *ExamFormHandler) GetStagedForm(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sel, err := h.formService.StagedSelection(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNoStagedForm) {
			response.Fail(c, http.StatusNotFound, response.ErrNoStagedForm)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"staged_form": sel})
}

// CreateOrder godoc
// POST /api/v1/student/exam-forms/order
// Raises a payment gateway order for the staged form.
func (h *ExamFormHandler) CreateOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	order, err := h.formService.CreateOrder(c.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoStagedForm):
			response.Fail(c, http.StatusNotFound, response.ErrNoStagedForm)
		case errors.Is(err, gateway.ErrGateway):
			response.Fail(c, http.StatusBadGateway, response.ErrGateway)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, order)
}

// ConfirmPayment godoc
// POST /api/v1/student/exam-forms/confirm-payment
// Verifies the gateway confirmation and submits the staged form.
func (h *ExamFormHandler) ConfirmPayment(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ConfirmPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.formService.ConfirmPayment(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrSignatureInvalid):
			response.Fail(c, http.StatusBadRequest, response.ErrSignatureInvalid)
		case errors.Is(err, service.ErrStaleSession):
			response.Fail(c, http.StatusConflict, response.ErrStaleSession)
		case errors.Is(err, service.ErrOrderMismatch):
			response.Fail(c, http.StatusConflict, response.ErrOrderMismatch)
		case errors.Is(err, service.ErrDuplicateOrder):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateOrder)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListMyForms godoc
// GET /api/v1/student/exam-forms
func (h *ExamFormHandler) ListMyForms(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	forms, err := h.formService.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam_forms": forms})
}

// GetForm godoc
// GET /api/v1/student/exam-forms/:id
func (h *ExamFormHandler) GetForm(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	formID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.formService.Detail(c.Request.Context(), formID, claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrForbidden):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Dashboard godoc
// GET /api/v1/student/dashboard
// Returns the student's form counts and recent submissions.
func (h *ExamFormHandler) Dashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	ctx := c.Request.Context()

	counts, err := h.formService.Counts(ctx, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	forms, err := h.formService.ListForStudent(ctx, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"counts":       counts,
		"recent_forms": forms,
	})
}

// ListReceipts godoc
// GET /api/v1/student/receipts
// Lists receipts for approved, paid forms.
func (h *ExamFormHandler) ListReceipts(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	receipts, err := h.formService.Receipts(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"receipts": receipts})
}

// GetReceipt godoc
// GET /api/v1/student/receipts/:id
func (h *ExamFormHandler) GetReceipt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	formID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	receipt, err := h.formService.Receipt(c.Request.Context(), formID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrForbidden):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, service.ErrReceiptNotAvailable):
			response.Fail(c, http.StatusConflict, response.ErrReceiptNotAvailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, receipt)
}

// MyAttendance godoc
// GET /api/v1/student/attendance
func (h *ExamFormHandler) MyAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.attendanceService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
