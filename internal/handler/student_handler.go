package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type studentEligibilityService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListStudentsInSession(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentSessions(ctx context.Context) ([]string, error)
	ListStudentsWithoutSupervisor(ctx context.Context, department, sessionLabel string) ([]models.Student, error)
	ListStudentsBySupervisor(ctx context.Context, supervisorID, sessionLabel string) ([]models.Student, error)
	ListStudentsWithoutCV(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentsWaitingPastInterview(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentsWithoutInterviewDate(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentsWithInternship(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentsAwaitingInterview(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListStudentsMissingEvaluation(ctx context.Context, kind models.EvaluationKind, sessionLabel string) ([]models.Student, error)
	AssignSupervisor(ctx context.Context, studentID, supervisorID string) (*models.Student, error)
}

// StudentHandler exposes the student eligibility views.
type StudentHandler struct {
	eligibility studentEligibilityService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(eligibility studentEligibilityService) *StudentHandler {
	return &StudentHandler{eligibility: eligibility}
}

func requireSession(c *gin.Context) (string, bool) {
	sessionLabel := strings.TrimSpace(c.Query("session"))
	if sessionLabel == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session query parameter is required"))
		return "", false
	}
	return sessionLabel, true
}

// List returns all active students, optionally restricted to a session.
func (h *StudentHandler) List(c *gin.Context) {
	sessionLabel := strings.TrimSpace(c.Query("session"))

	var (
		students []models.Student
		err      error
	)
	if sessionLabel == "" {
		students, err = h.eligibility.ListStudents(c.Request.Context())
	} else {
		students, err = h.eligibility.ListStudentsInSession(c.Request.Context(), sessionLabel)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Sessions returns every session label used by students, newest first.
func (h *StudentHandler) Sessions(c *gin.Context) {
	sessions, err := h.eligibility.ListStudentSessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions)
}

// WithoutSupervisor lists unassigned students of a department and session.
func (h *StudentHandler) WithoutSupervisor(c *gin.Context) {
	sessionLabel, ok := requireSession(c)
	if !ok {
		return
	}
	department := strings.TrimSpace(c.Query("department"))
	if department == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "department query parameter is required"))
		return
	}
	students, err := h.eligibility.ListStudentsWithoutSupervisor(c.Request.Context(), department, sessionLabel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// BySupervisor lists students assigned to the supervisor for the session.
func (h *StudentHandler) BySupervisor(c *gin.Context) {
	sessionLabel, ok := requireSession(c)
	if !ok {
		return
	}
	students, err := h.eligibility.ListStudentsBySupervisor(c.Request.Context(), c.Param("supervisorId"), sessionLabel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// WithoutCV lists students with no CV on file for the session.
func (h *StudentHandler) WithoutCV(c *gin.Context) {
	h.sessionView(c, h.eligibility.ListStudentsWithoutCV)
}

// WaitingPastInterview lists students whose WAITING application has a passed
// interview date.
func (h *StudentHandler) WaitingPastInterview(c *gin.Context) {
	h.sessionView(c, h.eligibility.ListStudentsWaitingPastInterview)
}

// WithoutInterviewDate lists students with no dated application in the session.
func (h *StudentHandler) WithoutInterviewDate(c *gin.Context) {
	h.sessionView(c, h.eligibility.ListStudentsWithoutInterviewDate)
}

// WithInternship lists students holding a completed placement in the session.
func (h *StudentHandler) WithInternship(c *gin.Context) {
	h.sessionView(c, h.eligibility.ListStudentsWithInternship)
}

// AwaitingInterview lists students with an upcoming interview in the session.
func (h *StudentHandler) AwaitingInterview(c *gin.Context) {
	h.sessionView(c, h.eligibility.ListStudentsAwaitingInterview)
}

// MissingStudentEvaluation lists students whose internship lacks the student
// evaluation.
func (h *StudentHandler) MissingStudentEvaluation(c *gin.Context) {
	h.evaluationView(c, models.EvaluationStudent)
}

// MissingEnterpriseEvaluation lists students whose internship lacks the
// enterprise evaluation.
func (h *StudentHandler) MissingEnterpriseEvaluation(c *gin.Context) {
	h.evaluationView(c, models.EvaluationEnterprise)
}

// AssignSupervisor records a supervisor for the student's next session.
func (h *StudentHandler) AssignSupervisor(c *gin.Context) {
	student, err := h.eligibility.AssignSupervisor(c.Request.Context(), c.Param("studentId"), c.Param("supervisorId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

func (h *StudentHandler) sessionView(c *gin.Context, view func(context.Context, string) ([]models.Student, error)) {
	sessionLabel, ok := requireSession(c)
	if !ok {
		return
	}
	students, err := view(c.Request.Context(), sessionLabel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

func (h *StudentHandler) evaluationView(c *gin.Context, kind models.EvaluationKind) {
	sessionLabel, ok := requireSession(c)
	if !ok {
		return
	}
	students, err := h.eligibility.ListStudentsMissingEvaluation(c.Request.Context(), kind, sessionLabel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}
