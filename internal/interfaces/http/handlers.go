package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/application/service"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// accessFrom reads the acting user's identity from request headers. The
// identity provider sits in front of this service; these headers are
// trusted as already verified.
func accessFrom(c *gin.Context) port.AccessContext {
	return port.AccessContext{
		UserID: c.GetHeader("X-User-ID"),
		TeamID: c.GetHeader("X-Team-ID"),
		Admin:  c.GetHeader("X-Admin") == "true",
	}
}

// respondError maps domain errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrStateConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   err.Error(),
	})
}

func (h *Handlers) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	h.respondOK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// CreateEventRequest represents the body of POST /api/events
type CreateEventRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	StartDate            time.Time `json:"start_date" binding:"required"`
	EndDate              time.Time `json:"end_date" binding:"required"`
	Location             string    `json:"location"`
	Priority             string    `json:"priority"`
	ExpectedParticipants *int      `json:"expected_participants"`
	PlannedBudget        *float64  `json:"planned_budget"`
	TeamID               string    `json:"team_id"`
	DepartmentID         string    `json:"department_id"`
	ResponsibleID        string    `json:"responsible_id"`
}

// CreateEvent handles POST /api/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), service.CreateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		Priority:             entity.Priority(req.Priority),
		ExpectedParticipants: req.ExpectedParticipants,
		PlannedBudget:        req.PlannedBudget,
		TeamID:               req.TeamID,
		DepartmentID:         req.DepartmentID,
		ResponsibleID:        req.ResponsibleID,
	}, accessFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: event})
}

// ListEvents handles GET /api/events
func (h *Handlers) ListEvents(c *gin.Context) {
	filter := port.EventFilter{
		Status: lifecycle.Status(c.Query("status")),
		TeamID: c.Query("team_id"),
	}

	events, err := h.services.Events.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, events)
}

// GetEvent handles GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.services.Events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, event)
}

// UpdateEventRequest represents the body of PUT /api/events/:id
type UpdateEventRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	StartDate            time.Time `json:"start_date" binding:"required"`
	EndDate              time.Time `json:"end_date" binding:"required"`
	Location             string    `json:"location"`
	Priority             string    `json:"priority"`
	ExpectedParticipants *int      `json:"expected_participants"`
	PlannedBudget        *float64  `json:"planned_budget"`
	ApprovedBudget       *float64  `json:"approved_budget"`
	DepartmentID         string    `json:"department_id"`
	ResponsibleID        string    `json:"responsible_id"`
}

// UpdateEvent handles PUT /api/events/:id
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	current, err := h.services.Events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	current.Title = req.Title
	current.Description = req.Description
	current.Category = req.Category
	current.StartDate = req.StartDate
	current.EndDate = req.EndDate
	current.Location = req.Location
	if req.Priority != "" {
		current.Priority = entity.Priority(req.Priority)
	}
	current.ExpectedParticipants = req.ExpectedParticipants
	current.PlannedBudget = req.PlannedBudget
	current.ApprovedBudget = req.ApprovedBudget
	current.DepartmentID = req.DepartmentID
	current.ResponsibleID = req.ResponsibleID

	event, err := h.services.Events.Update(c.Request.Context(), current)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, event)
}

// UpdateEventStatusRequest represents the body of PATCH /api/events/:id/status
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateEventStatus handles PATCH /api/events/:id/status
func (h *Handlers) UpdateEventStatus(c *gin.Context) {
	var req UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	event, err := h.services.Events.UpdateStatus(c.Request.Context(), c.Param("id"), lifecycle.Status(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, event)
}

// DeleteEvent handles DELETE /api/events/:id
func (h *Handlers) DeleteEvent(c *gin.Context) {
	if err := h.services.Events.Delete(c.Request.Context(), c.Param("id"), accessFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"deleted": true})
}

// CreateTaskRequest represents the body of POST /api/events/:id/tasks
type CreateTaskRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	ResponsibleID string    `json:"responsible_id"`
	DueDate       time.Time `json:"due_date" binding:"required"`
	Priority      string    `json:"priority"`
	TeamID        string    `json:"team_id"`
}

// CreateTask handles POST /api/events/:id/tasks
func (h *Handlers) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), service.CreateTaskInput{
		EventID:       c.Param("id"),
		Title:         req.Title,
		Description:   req.Description,
		ResponsibleID: req.ResponsibleID,
		DueDate:       req.DueDate,
		Priority:      entity.Priority(req.Priority),
		TeamID:        req.TeamID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: task})
}

// ListTasks handles GET /api/events/:id/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	tasks, err := h.services.Tasks.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, tasks)
}

// TaskProgress handles GET /api/events/:id/tasks/progress
func (h *Handlers) TaskProgress(c *gin.Context) {
	progress, err := h.services.Reports.EventTaskProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, progress)
}

// UpdateTaskStatusRequest represents the body of PATCH /api/tasks/:id/status
type UpdateTaskStatusRequest struct {
	Status      string     `json:"status" binding:"required"`
	CompletedOn *time.Time `json:"completed_on"`
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
func (h *Handlers) UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	task, err := h.services.Tasks.UpdateStatus(c.Request.Context(), c.Param("id"),
		entity.TaskStatus(req.Status), req.CompletedOn)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, task)
}

// AddBudgetItemRequest represents the body of POST /api/events/:id/budget
type AddBudgetItemRequest struct {
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Supplier    string   `json:"supplier"`
	Quantity    float64  `json:"quantity" binding:"required"`
	UnitPrice   float64  `json:"unit_price"`
	StoredTotal *float64 `json:"stored_total"`
	TeamID      string   `json:"team_id"`
}

// AddBudgetItem handles POST /api/events/:id/budget
func (h *Handlers) AddBudgetItem(c *gin.Context) {
	var req AddBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	item, err := h.services.Budget.Add(c.Request.Context(), service.AddBudgetItemInput{
		EventID:     c.Param("id"),
		Category:    req.Category,
		Description: req.Description,
		Supplier:    req.Supplier,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		StoredTotal: req.StoredTotal,
		TeamID:      req.TeamID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: item})
}

// ListBudgetItems handles GET /api/events/:id/budget
func (h *Handlers) ListBudgetItems(c *gin.Context) {
	items, err := h.services.Budget.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, items)
}

// EventBudgetSummary handles GET /api/events/:id/budget/summary
func (h *Handlers) EventBudgetSummary(c *gin.Context) {
	summary, err := h.services.Budget.SummaryForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, summary)
}

// ExportEventBudget handles POST /api/events/:id/budget/export
func (h *Handlers) ExportEventBudget(c *gin.Context) {
	path, err := h.services.Reports.ExportEventBudget(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, gin.H{"path": path})
}

// SetBudgetItemApprovedRequest represents the body of PATCH /api/budget-items/:id/approved
type SetBudgetItemApprovedRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetBudgetItemApproved handles PATCH /api/budget-items/:id/approved
func (h *Handlers) SetBudgetItemApproved(c *gin.Context) {
	var req SetBudgetItemApprovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	item, err := h.services.Budget.SetApproved(c.Request.Context(), c.Param("id"), *req.Approved)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, item)
}

// RequestBudgetReviewRequest represents the body of POST /api/events/:id/budget-review
type RequestBudgetReviewRequest struct {
	Notes string `json:"notes"`
}

// RequestBudgetReview handles POST /api/events/:id/budget-review
func (h *Handlers) RequestBudgetReview(c *gin.Context) {
	var req RequestBudgetReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	approval, err := h.services.Approvals.RequestBudgetReview(c.Request.Context(), c.Param("id"), accessFrom(c), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: approval})
}

// ListEventApprovals handles GET /api/events/:id/approvals
func (h *Handlers) ListEventApprovals(c *gin.Context) {
	approvals, err := h.services.Approvals.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, approvals)
}

// ListApprovals handles GET /api/approvals?status=pending
func (h *Handlers) ListApprovals(c *gin.Context) {
	status := entity.ApprovalStatus(c.DefaultQuery("status", string(entity.ApprovalStatusPending)))

	approvals, err := h.services.Approvals.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, approvals)
}

// ApprovalHistory handles GET /api/approvals/history
func (h *Handlers) ApprovalHistory(c *gin.Context) {
	approvals, err := h.services.Approvals.History(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, approvals)
}

// GetApproval handles GET /api/approvals/:id
func (h *Handlers) GetApproval(c *gin.Context) {
	approval, err := h.services.Approvals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, approval)
}

// DecideApprovalRequest represents the body of POST /api/approvals/:id/decision
type DecideApprovalRequest struct {
	Decision string `json:"decision" binding:"required"`
	Notes    string `json:"notes"`
}

// DecideApproval handles POST /api/approvals/:id/decision
func (h *Handlers) DecideApproval(c *gin.Context) {
	var req DecideApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	approval, err := h.services.Approvals.Decide(c.Request.Context(), c.Param("id"),
		entity.ApprovalStatus(req.Decision), accessFrom(c), req.Notes)
	if err != nil {
		// A partial failure still carries the resolved approval.
		if approval != nil && errors.Is(err, entity.ErrPartialFailure) {
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Data:    approval,
				Error:   err.Error(),
			})
			return
		}
		h.respondError(c, err)
		return
	}
	h.respondOK(c, approval)
}

// StatusCounts handles GET /api/reports/status-counts
func (h *Handlers) StatusCounts(c *gin.Context) {
	counts, err := h.services.Reports.StatusCounts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, counts)
}

// OverallBudget handles GET /api/reports/budget
func (h *Handlers) OverallBudget(c *gin.Context) {
	summary, err := h.services.Reports.OverallBudget(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, summary)
}

// CreateProfileRequest represents the body of POST /api/profiles
type CreateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

// CreateProfile handles POST /api/profiles
func (h *Handlers) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	profile, err := h.services.Directory.CreateProfile(c.Request.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: profile})
}

// ListProfiles handles GET /api/profiles
func (h *Handlers) ListProfiles(c *gin.Context) {
	profiles, err := h.services.Directory.ListProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, profiles)
}

// GetProfile handles GET /api/profiles/:id
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.services.Directory.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, profile)
}

// NameRequest is the shared body for creating teams and departments
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTeam handles POST /api/teams
func (h *Handlers) CreateTeam(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	team, err := h.services.Directory.CreateTeam(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: team})
}

// ListTeams handles GET /api/teams
func (h *Handlers) ListTeams(c *gin.Context) {
	teams, err := h.services.Directory.ListTeams(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, teams)
}

// AddTeamMemberRequest represents the body of POST /api/teams/:id/members
type AddTeamMemberRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
	Role      string `json:"role"`
}

// AddTeamMember handles POST /api/teams/:id/members
func (h *Handlers) AddTeamMember(c *gin.Context) {
	var req AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	membership, err := h.services.Directory.AddTeamMember(c.Request.Context(), c.Param("id"), req.ProfileID, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: membership})
}

// ListTeamMembers handles GET /api/teams/:id/members
func (h *Handlers) ListTeamMembers(c *gin.Context) {
	memberships, err := h.services.Directory.ListTeamMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, memberships)
}

// CreateDepartment handles POST /api/departments
func (h *Handlers) CreateDepartment(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	department, err := h.services.Directory.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: department})
}

// ListDepartments handles GET /api/departments
func (h *Handlers) ListDepartments(c *gin.Context) {
	departments, err := h.services.Directory.ListDepartments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, departments)
}
