package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/medinova/health-claims-api/internal/claims"
	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/queue"
	"github.com/medinova/health-claims-api/internal/repository"
	publisher "github.com/medinova/health-claims-api/internal/service"
)

// maxClaimAmount bounds a single submission at the HTTP edge.
var maxClaimAmount = decimal.New(1_000_000, 0)

// ClaimsHandler exposes claim submission and retrieval endpoints on top of
// the ledger.
type ClaimsHandler struct {
	Ledger *claims.Ledger
}

func NewClaimsHandler(l *claims.Ledger) *ClaimsHandler {
	if l == nil {
		panic("nil ledger passed to NewClaimsHandler")
	}
	return &ClaimsHandler{Ledger: l}
}

// ----- DTOs -----

type submitClaimReq struct {
	MemberID      string          `json:"member_id"`
	ProviderID    string          `json:"provider_id"`
	DiagnosisCode string          `json:"diagnosis_code"`
	ProcedureCode string          `json:"procedure_code"`
	ClaimAmount   decimal.Decimal `json:"claim_amount"`
	Notes         *string         `json:"notes"`
}

type claimResp struct {
	ClaimID        string          `json:"claim_id"`
	MemberID       string          `json:"member_id"`
	ProviderID     string          `json:"provider_id"`
	DiagnosisCode  string          `json:"diagnosis_code"`
	ProcedureCode  string          `json:"procedure_code"`
	ClaimAmount    decimal.Decimal `json:"claim_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	Status         string          `json:"status"`
	FraudFlag      bool            `json:"fraud_flag"`
	FraudReason    *string         `json:"fraud_reason"`
	Notes          *string         `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ProcessedAt    *time.Time      `json:"processed_at"`
}

type claimListResp struct {
	Claims   []claimResp `json:"claims"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func toClaimResp(c model.Claim) claimResp {
	return claimResp{
		ClaimID:        c.ID,
		MemberID:       c.MemberID,
		ProviderID:     c.ProviderID,
		DiagnosisCode:  c.DiagnosisCode,
		ProcedureCode:  c.ProcedureCode,
		ClaimAmount:    c.ClaimAmount,
		ApprovedAmount: c.ApprovedAmount,
		Status:         string(c.Status),
		FraudFlag:      c.FraudFlag,
		FraudReason:    c.FraudReason,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		ProcessedAt:    c.ProcessedAt,
	}
}

// Submit handles POST /v1/claims. Validation failures never surface as
// errors here; they come back from the ledger as REJECTED claims. Only
// infrastructure problems produce a 500.
func (h *ClaimsHandler) Submit(c echo.Context) error {
	var req submitClaimReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MemberID == "" || req.ProviderID == "" || req.DiagnosisCode == "" || req.ProcedureCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "member_id, provider_id, diagnosis_code and procedure_code are required"})
	}
	if !req.ClaimAmount.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claim_amount must be greater than zero"})
	}
	if req.ClaimAmount.GreaterThan(maxClaimAmount) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "claim_amount exceeds the maximum of 1000000"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	claim, err := h.Ledger.Submit(ctx, claims.SubmitInput{
		MemberID:      req.MemberID,
		ProviderID:    req.ProviderID,
		DiagnosisCode: req.DiagnosisCode,
		ProcedureCode: req.ProcedureCode,
		ClaimAmount:   req.ClaimAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		log.Printf("claims: submit failed for member %s: %v", req.MemberID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to process claim: " + err.Error()})
	}

	log.Printf("claims: claim %s processed status=%s approved=%s fraud=%t",
		claim.ID, claim.Status, claim.ApprovedAmount, claim.FraudFlag)

	// Notify downstream consumers; a broker outage must not fail the
	// submission that has already committed.
	_ = publisher.PublishClaimProcessed(ctx, queue.ClaimProcessedEvent{
		ClaimID:        claim.ID,
		MemberID:       claim.MemberID,
		ProviderID:     claim.ProviderID,
		Status:         string(claim.Status),
		ClaimAmount:    claim.ClaimAmount.String(),
		ApprovedAmount: claim.ApprovedAmount.String(),
		FraudFlag:      claim.FraudFlag,
		ProcessedAt:    claim.ProcessedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toClaimResp(claim))
}

// Get handles GET /v1/claims/:id.
func (h *ClaimsHandler) Get(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := reqContext(c)
	defer cancel()

	claim, err := h.Ledger.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "claim " + id + " not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toClaimResp(claim))
}

// List handles GET /v1/claims with optional member_id, provider_id and
// status filters plus page/page_size pagination.
func (h *ClaimsHandler) List(c echo.Context) error {
	filter := repository.ClaimFilter{
		MemberID:   c.QueryParam("member_id"),
		ProviderID: c.QueryParam("provider_id"),
	}
	if s := c.QueryParam("status"); s != "" {
		status, err := model.ParseClaimStatus(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		filter.Status = status
	}

	page, pageSize, err := pagination(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	items, total, err := h.Ledger.List(ctx, filter, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := claimListResp{
		Claims:   make([]claimResp, 0, len(items)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, claim := range items {
		resp.Claims = append(resp.Claims, toClaimResp(claim))
	}
	return c.JSON(http.StatusOK, resp)
}

// pagination parses page (>= 1, default 1) and page_size (1..100, default
// 20) from the query string.
func pagination(c echo.Context) (int, int, error) {
	page := 1
	if s := c.QueryParam("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
		page = n
	}
	pageSize := 20
	if s := c.QueryParam("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, errors.New("page_size must be between 1 and 100")
		}
		pageSize = n
	}
	return page, pageSize, nil
}
