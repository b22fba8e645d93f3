package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "dulces-storefront/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetConfirmRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func loginHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("email required"))
			return
		}
		user, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func registerHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("email required"))
			return
		}
		user, err := auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func guestHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, auth.LoginAsGuest(c.Request.Context()))
	}
}

func logoutHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.Logout(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

func meHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Current(c.Request.Context())
		if err != nil {
			if errors.Is(err, authsvc.ErrNotAuthenticated) {
				errorResponse(c, http.StatusUnauthorized, err)
				return
			}
			errorResponse(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func requestResetHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("email required"))
			return
		}
		code, err := auth.RequestReset(c.Request.Context(), req.Email)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
		// No mail transport exists; the code goes straight back to the UI.
		c.JSON(http.StatusOK, gin.H{"code": code})
	}
}

func confirmResetHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("email, code and newPassword required"))
			return
		}
		err := auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, authsvc.ErrInvalidResetCode), errors.Is(err, authsvc.ErrResetCodeExpired):
				errorResponse(c, http.StatusUnprocessableEntity, err)
			default:
				errorResponse(c, http.StatusBadRequest, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"reset": true})
	}
}
