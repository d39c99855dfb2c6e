package httpapi

import (
	"errors"
	"net/http"
	"time"

	"telecom-billing/internal/audit"
	"telecom-billing/internal/auth"
	"telecom-billing/internal/billing"
	"telecom-billing/internal/contract"
	"telecom-billing/internal/lines"
	"telecom-billing/internal/reporting"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth    *auth.Manager
	Billing *billing.Service
	Lines   lines.Repository
	Reports *reporting.Service

	// Audit is optional; contract changes are recorded when configured.
	Audit *audit.Service
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Billing ---

func periodParam(c *gin.Context) (billing.Period, bool) {
	p, err := billing.ParsePeriod(c.Param("period"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "period must be YYYY-MM"})
		return billing.Period{}, false
	}
	return p, true
}

// GenerateBill runs billing for one line and period.
// RBAC: owner, billing_operator, billing_daemon.
func (h Handlers) GenerateBill(c *gin.Context) {
	if h.Billing == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}
	lineID := c.Param("line_id")
	if lineID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "line_id required"})
		return
	}
	p, ok := periodParam(c)
	if !ok {
		return
	}

	bill, err := h.Billing.GenerateBill(c.Request.Context(), lineID, p)
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h Handlers) GetLineBill(c *gin.Context) {
	if h.Billing == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}
	p, ok := periodParam(c)
	if !ok {
		return
	}
	bill, err := h.Billing.LineBill(c.Request.Context(), c.Param("line_id"), p)
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h Handlers) GetBill(c *gin.Context) {
	if h.Billing == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}
	bill, err := h.Billing.GetBill(c.Request.Context(), c.Param("bill_id"))
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h Handlers) ListCustomerBills(c *gin.Context) {
	if h.Billing == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}
	p, ok := periodParam(c)
	if !ok {
		return
	}
	bills, err := h.Billing.ListBills(c.Request.Context(), c.Param("customer_id"), p)
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// --- Contracts ---

type replaceContractRequest struct {
	Contract *contract.Contract `json:"contract"`
}

// ReplaceContract swaps a line's plan for a new contract instance.
// RBAC: owner, billing_operator.
func (h Handlers) ReplaceContract(c *gin.Context) {
	if h.Lines == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lines not configured"})
		return
	}
	lineID := c.Param("line_id")

	var req replaceContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Contract == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "contract required"})
		return
	}

	var oldContractID string
	if line, err := h.Lines.GetLine(c.Request.Context(), lineID); err == nil && line.Contract != nil {
		oldContractID = line.Contract.ID
	}

	if err := h.Lines.ReplaceContract(c.Request.Context(), lineID, req.Contract); err != nil {
		writeBillingError(c, err)
		return
	}

	if h.Audit != nil {
		uid, _ := auth.UserID(c.Request.Context())
		role, _ := auth.Role(c.Request.Context())
		_ = h.Audit.LogContractReplaced(c.Request.Context(), uid, role, lineID, oldContractID, req.Contract.ID)
	}
	c.JSON(http.StatusOK, gin.H{"line_id": lineID, "contract_id": req.Contract.ID})
}

type cancelContractRequest struct {
	AtMonth int `json:"at_month"`
}

// CancelContract records a termination request; the penalty (if any) shows up
// on the next generated bill.
// RBAC: owner, billing_operator.
func (h Handlers) CancelContract(c *gin.Context) {
	if h.Lines == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lines not configured"})
		return
	}
	lineID := c.Param("line_id")

	var req cancelContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Lines.CancelContract(c.Request.Context(), lineID, req.AtMonth); err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line_id": lineID, "cancelled_at_month": req.AtMonth})
}

// --- Reporting ---

func (h Handlers) RevenueSummary(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	p, ok := periodParam(c)
	if !ok {
		return
	}
	out, err := h.Reports.RevenueSummary(c.Request.Context(), reporting.RevenueSummaryRequest{
		Period:     p,
		CustomerID: c.Query("customer_id"),
	})
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) KindMix(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	p, ok := periodParam(c)
	if !ok {
		return
	}
	out, err := h.Reports.KindMix(c.Request.Context(), reporting.KindMixRequest{Period: p})
	if err != nil {
		writeBillingError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeBillingError maps domain errors onto HTTP statuses.
func writeBillingError(c *gin.Context, err error) {
	var ce *billing.CallError
	switch {
	case errors.Is(err, lines.ErrNotFound), errors.Is(err, billing.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrRunInProgress):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ce),
		errors.Is(err, billing.ErrInvalidPeriod),
		errors.Is(err, billing.ErrMissingContract),
		errors.Is(err, lines.ErrMissingContract),
		errors.Is(err, contract.ErrUnknownKind),
		errors.Is(err, contract.ErrConfiguration),
		errors.Is(err, reporting.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
