package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasadvy/hotel-room-booking/internal/config"
	"github.com/prasadvy/hotel-room-booking/internal/utils"
)

// AuthHandler issues access tokens for the single staff account.  The
// account is configured through environment variables (username plus a
// bcrypt password hash); there is no user table and no registration.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login handles POST /v1/auth/login.  It verifies the staff credentials
// against the configured account and returns a signed access token.
// Wrong username and wrong password are indistinguishable in the
// response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	if req.Username != h.Cfg.StaffUser || !utils.VerifyPassword(h.Cfg.StaffPassHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: access.Token, Expires: access.Exp})
}
