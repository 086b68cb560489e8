package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/catalog"
	"github.com/evstore/storefront/internal/httpx"
)

func registerRoutes(r *gin.Engine, repo catalog.Repository) {
	r.GET("/vehicles", listVehiclesHandler(repo))
	r.POST("/vehicles", createVehicleHandler(repo))
	r.GET("/vehicles/:id", getVehicleHandler(repo))
	r.PUT("/vehicles/:id", updateVehicleHandler(repo))
	r.DELETE("/vehicles/:id", deleteVehicleHandler(repo))
	r.POST("/vehicles/:id/images", addImageHandler(repo))
	r.GET("/vehicles/:id/images", listImagesHandler(repo))
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parsePrice(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperr.Invalid("price", "must be a decimal string")
	}
	return p.Round(2), nil
}

// listVehiclesHandler godoc
// @Summary      List vehicles
// @Description  Paginated; q (2+ chars) filters on brand, model and description.
// @Tags         vehicles
// @Produce      json
// @Param        q       query  string  false  "Search text"
// @Param        limit   query  int     false  "Page size (1..100)"  default(20)
// @Param        offset  query  int     false  "Offset"              default(0)
// @Success      200  {object}  catalog.ListResponse
// @Failure      400  {object}  httpx.HTTPError
// @Router       /vehicles [get]
func listVehiclesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if c.Query("q") != "" && len([]rune(q)) < 2 {
			httpx.WriteError(c, apperr.Invalid("q", "must be at least 2 characters"))
			return
		}
		limit, offset := pageParams(c)
		items, err := repo.List(c.Request.Context(), catalog.Query{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{Q: q, Limit: limit, Offset: offset, Items: items})
	}
}

// getVehicleHandler godoc
// @Summary      Get vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id   path  string  true  "Vehicle ID (UUID)"
// @Success      200  {object}  catalog.Vehicle
// @Failure      404  {object}  httpx.HTTPError
// @Router       /vehicles/{id} [get]
func getVehicleHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		v, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// createVehicleHandler godoc
// @Summary      Create vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        body  body  catalog.CreateVehicleRequest  true  "Vehicle"
// @Success      201  {object}  catalog.Vehicle
// @Failure      400  {object}  httpx.HTTPError
// @Router       /vehicles [post]
func createVehicleHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		v := &catalog.Vehicle{
			Brand:       strings.TrimSpace(req.Brand),
			Model:       strings.TrimSpace(req.Model),
			Year:        req.Year,
			Price:       price,
			RangeKm:     req.RangeKm,
			Description: req.Description,
		}
		if err := v.Validate(); err != nil {
			httpx.WriteError(c, err)
			return
		}
		if err := repo.Create(c.Request.Context(), v); err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

// updateVehicleHandler godoc
// @Summary      Update vehicle
// @Description  Partial update: omitted fields keep their value.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Vehicle ID (UUID)"
// @Param        body  body  catalog.UpdateVehicleRequest  true  "Fields to change"
// @Success      200  {object}  catalog.Vehicle
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /vehicles/{id} [put]
func updateVehicleHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req catalog.UpdateVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		cur, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}

		next := *cur
		if s := strings.TrimSpace(req.Brand); s != "" {
			next.Brand = s
		}
		if s := strings.TrimSpace(req.Model); s != "" {
			next.Model = s
		}
		if req.Year != 0 {
			next.Year = req.Year
		}
		if req.RangeKm != nil {
			next.RangeKm = *req.RangeKm
		}
		if req.Description != "" {
			next.Description = req.Description
		}
		updatePrice := strings.TrimSpace(req.Price) != ""
		if updatePrice {
			if next.Price, err = parsePrice(req.Price); err != nil {
				httpx.WriteError(c, err)
				return
			}
		}
		if err := next.Validate(); err != nil {
			httpx.WriteError(c, err)
			return
		}
		if err := repo.Update(c.Request.Context(), &next, updatePrice); err != nil {
			httpx.WriteError(c, err)
			return
		}
		out, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteVehicleHandler godoc
// @Summary      Delete vehicle
// @Description  Existing orders keep their snapshot of the vehicle.
// @Tags         vehicles
// @Param        id  path  string  true  "Vehicle ID (UUID)"
// @Success      204
// @Failure      404  {object}  httpx.HTTPError
// @Router       /vehicles/{id} [delete]
func deleteVehicleHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		deleted, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		if !deleted {
			httpx.WriteError(c, apperr.NotFound("vehicle", id.String()))
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// addImageHandler godoc
// @Summary      Attach image
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Vehicle ID (UUID)"
// @Param        body  body  catalog.AddImageRequest  true  "Image"
// @Success      201  {object}  catalog.Image
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /vehicles/{id}/images [post]
func addImageHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		var req catalog.AddImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, apperr.Invalid("body", "invalid json"))
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			httpx.WriteError(c, apperr.Invalid("url", "is required"))
			return
		}
		if req.Position < 0 {
			httpx.WriteError(c, apperr.Invalid("position", "must be >= 0"))
			return
		}
		img := &catalog.Image{VehicleID: id, URL: strings.TrimSpace(req.URL), AltText: req.AltText, Position: req.Position}
		if err := repo.AddImage(c.Request.Context(), img); err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusCreated, img)
	}
}

// listImagesHandler godoc
// @Summary      Images of a vehicle
// @Tags         vehicles
// @Produce      json
// @Param        id   path  string  true  "Vehicle ID (UUID)"
// @Success      200  {array}  catalog.Image
// @Router       /vehicles/{id}/images [get]
func listImagesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.ParamUUID(c, "id")
		if !ok {
			return
		}
		images, err := repo.ListImages(c.Request.Context(), id)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		if images == nil {
			images = []catalog.Image{}
		}
		c.JSON(http.StatusOK, images)
	}
}
