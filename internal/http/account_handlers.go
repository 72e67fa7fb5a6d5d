package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/session"
)

type accountCreateReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email_addr"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user management admin"`
}

type accountEditReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email_addr"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user management admin"`
}

// ListAccounts godoc
// @Summary List users (admin)
// @Tags accounts
// @Produce json
// @Param keyword query string false "name regex"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /accounts [get]
func (h *Handler) ListAccounts(c *gin.Context) {
	res, err := h.Sessions.ListAccounts(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), time.Now()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Body("results"))
}

// CreateAccount godoc
// @Summary Create a verified user (admin)
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body accountCreateReq true "account"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /accounts [post]
func (h *Handler) CreateAccount(c *gin.Context) {
	var in accountCreateReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Sessions.CreateAccount(c.Request.Context(), session.AccountInput(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
}

// EditAccount godoc
// @Summary Edit a user (admin)
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param payload body accountEditReq true "fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /accounts/{id} [put]
func (h *Handler) EditAccount(c *gin.Context) {
	var in accountEditReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Sessions.EditAccount(c.Request.Context(), c.Param("id"), session.AccountInput(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

// DeleteAccount godoc
// @Summary Delete a user (admin)
// @Tags accounts
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /accounts/{id} [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.Sessions.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User has been deleted"})
}
