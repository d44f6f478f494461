package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medinova/health-claims-api/internal/auth"
	"github.com/medinova/health-claims-api/internal/config"
	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// UsersHandler exposes the user CRUD surface.  Registration also issues an
// INITIAL_VERIFICATION OTP so the account can be activated out of band.
type UsersHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	OTP   *auth.OTPEngine
}

func NewUsersHandler(cfg config.Config, users *repository.UserRepo, otp *auth.OTPEngine) *UsersHandler {
	if users == nil || otp == nil {
		panic("nil dependency passed to NewUsersHandler")
	}
	return &UsersHandler{Cfg: cfg, Users: users, OTP: otp}
}

// ----- DTOs -----

type registerUserReq struct {
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
}

type updateUserReq struct {
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
}

type userResp struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type userListResp struct {
	Users    []userResp `json:"users"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// Register handles POST /v1/users: create the account (INACTIVE until
// verified) and issue an initial verification OTP.
func (h *UsersHandler) Register(c echo.Context) error {
	var req registerUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	role := model.RoleUser
	if req.Role != "" {
		parsed, err := model.ParseUserRole(req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Users.Create(ctx, repository.CreateInput{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
		Status:       model.UserInactive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) || errors.Is(err, repository.ErrPhoneExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ttl := time.Duration(h.Cfg.OTPTTLMin) * time.Minute
	if _, code, err := h.OTP.Issue(ctx, user.ID, model.VerificationInitial, ttl); err == nil {
		log.Printf("Generated initial verification OTP for %s: %s", user.Email, code)
	}

	return c.JSON(http.StatusCreated, toUserResp(user))
}

// List handles GET /v1/users with page/page_size pagination.
func (h *UsersHandler) List(c echo.Context) error {
	page, pageSize, err := pagination(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := userListResp{Users: make([]userResp, 0, len(users)), Total: total, Page: page, PageSize: pageSize}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResp(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/users/:id.
func (h *UsersHandler) Get(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

// Update handles PUT /v1/users/:id with partial profile updates.
func (h *UsersHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Users.Update(ctx, c.Param("id"), repository.UpdateInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEmailExists), errors.Is(err, repository.ErrPhoneExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

// Delete handles DELETE /v1/users/:id. Verification tokens cascade with
// the user row.
func (h *UsersHandler) Delete(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
