package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medinova/health-claims-api/internal/auth"
	"github.com/medinova/health-claims-api/internal/config"
	"github.com/medinova/health-claims-api/internal/model"
)

// otpGenericMessage is returned by the OTP request and resend endpoints no
// matter whether the identifier matched a user, so responses cannot be
// used to enumerate accounts.
const otpGenericMessage = "If the username exists, an OTP has been sent."

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg  config.Config
	Auth *auth.Authenticator
	OTP  *auth.OTPEngine
}

func NewAuthHandler(cfg config.Config, a *auth.Authenticator, otp *auth.OTPEngine) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: a, OTP: otp}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type otpRequestReq struct {
	Username string `json:"username"`
}
type otpValidateReq struct {
	Username string `json:"username"`
	OTP      string `json:"otp"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// issuePair mints an access/refresh pair bound to a fresh session id.
func (h *AuthHandler) issuePair(user model.User) (tokenPairResp, error) {
	sessionID := auth.NewSessionID(user.ID)
	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, user.ID, sessionID, h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPairResp{}, err
	}
	refresh, err := auth.NewRefreshToken(h.Cfg.JWTSecret, user.ID, sessionID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPairResp{}, err
	}
	return tokenPairResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		TokenType:    "bearer",
	}, nil
}

// authStatus maps an authentication failure to its HTTP status code.
func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserInactive), errors.Is(err, auth.ErrUserSuspended):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Login: authenticate with username (email or phone) and password, return
// an access/refresh pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Auth.AuthenticatePassword(ctx, req.Username, req.Password)
	if err != nil {
		if status := authStatus(err); status != http.StatusInternalServerError {
			return c.JSON(status, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	pair, err := h.issuePair(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, pair)
}

// RequestOTP: issue a LOGIN OTP for the identifier. The response is the
// same whether or not the user exists.
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	return h.sendOTP(c, "Generated", false)
}

// ResendOTP: supersedes any still-valid LOGIN token before issuing the
// replacement, so only the newest code works.
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	return h.sendOTP(c, "Resent", true)
}

func (h *AuthHandler) sendOTP(c echo.Context, verb string, resend bool) error {
	var req otpRequestReq
	if err := c.Bind(&req); err != nil || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Auth.LookupByIdentifier(ctx, req.Username)
	if err != nil {
		// Unknown identifier: no token is created and the generic message
		// goes out regardless, to avoid account enumeration.
		return c.JSON(http.StatusOK, echo.Map{"message": otpGenericMessage})
	}

	ttl := time.Duration(h.Cfg.OTPTTLMin) * time.Minute
	var code string
	refreshed := false
	if resend {
		if prev, lookupErr := h.OTP.Tokens.LatestValid(ctx, user.ID, model.VerificationLogin); lookupErr == nil {
			_, code, err = h.OTP.Refresh(ctx, prev.ID, ttl)
			refreshed = true
		}
	}
	if !refreshed {
		_, code, err = h.OTP.Issue(ctx, user.ID, model.VerificationLogin, ttl)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue OTP failed"})
	}

	// TODO: hand the code to an email/SMS provider once one is integrated.
	// Until then it is logged for development visibility only.
	log.Printf("%s OTP for %s: %s", verb, req.Username, code)

	return c.JSON(http.StatusOK, echo.Map{"message": otpGenericMessage})
}

// ValidateOTP: authenticate with a previously issued OTP and return an
// access/refresh pair.
func (h *AuthHandler) ValidateOTP(c echo.Context) error {
	var req otpValidateReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/otp required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := h.Auth.AuthenticateOTP(ctx, req.Username, req.OTP)
	if err != nil {
		if status := authStatus(err); status != http.StatusInternalServerError {
			return c.JSON(status, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	pair, err := h.issuePair(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh: validate a refresh token and return a new access token carrying
// the original session id. The refresh token is not rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	user, sessionID, err := h.Auth.RefreshAccess(ctx, h.Cfg.JWTSecret, req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}

	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, user.ID, sessionID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access.Token,
		"token_type":   "bearer",
	})
}

// reqContext bounds every handler's database work with a timeout.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
