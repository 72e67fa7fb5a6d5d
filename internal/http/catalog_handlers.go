package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/catalog"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

type catalogCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

type catalogEditReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Avatar      string  `json:"avatar"`
}

// catalogHandler serves one of the four lookup collections.
type catalogHandler struct {
	svc *catalog.Service
}

func (ch catalogHandler) key() string { return string(ch.svc.Kind()) }

// Create godoc
// @Summary Create a catalog entry
// @Tags catalog
// @Accept json
// @Produce json
// @Param entity path string true "categories | statuses | classifications | conditions"
// @Param payload body catalogCreateReq true "entry"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /{entity}/create [post]
func (ch catalogHandler) Create(c *gin.Context) {
	var in catalogCreateReq
	if !bindJSON(c, &in) {
		return
	}
	it, err := ch.svc.Create(c.Request.Context(), catalog.Input(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, ch.key(): it})
}

// Edit godoc
// @Summary Edit a catalog entry
// @Tags catalog
// @Accept json
// @Produce json
// @Param entity path string true "categories | statuses | classifications | conditions"
// @Param id path string true "id"
// @Param payload body catalogEditReq true "fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /{entity}/edit/{id} [put]
func (ch catalogHandler) Edit(c *gin.Context) {
	var in catalogEditReq
	if !bindJSON(c, &in) {
		return
	}
	it, err := ch.svc.Edit(c.Request.Context(), c.Param("id"), catalog.Patch(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, ch.key(): it})
}

// Get godoc
// @Summary Get a catalog entry
// @Tags catalog
// @Produce json
// @Param entity path string true "categories | statuses | classifications | conditions"
// @Param id path string true "id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /{entity}/{id} [get]
func (ch catalogHandler) Get(c *gin.Context) {
	it, err := ch.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, ch.key(): it})
}

// List godoc
// @Summary List catalog entries
// @Tags catalog
// @Produce json
// @Param entity path string true "categories | statuses | classifications | conditions"
// @Param keyword query string false "name regex"
// @Param date query string false "YYYY-MM-DD"
// @Param month query int false "1-12"
// @Param year query int false "year"
// @Param sort query string false "asc | desc"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Router /{entity} [get]
func (ch catalogHandler) List(c *gin.Context) {
	res, err := ch.svc.List(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), time.Now()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Body(ch.svc.Kind().Collection()))
}

// Delete godoc
// @Summary Delete a catalog entry
// @Tags catalog
// @Produce json
// @Param entity path string true "categories | statuses | classifications | conditions"
// @Param id path string true "id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /{entity}/{id} [delete]
func (ch catalogHandler) Delete(c *gin.Context) {
	if err := ch.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": ch.svc.Kind().Label() + " has been deleted"})
}
