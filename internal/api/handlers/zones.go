package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrazone/internal/api/models"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/helpers"
	"github.com/jroosing/hydrazone/internal/zone"
)

func zoneParam(c *gin.Context) string {
	return dns.FQDN(c.Param("zone_id"))
}

// ListZones godoc
// @Summary List zones
// @Description Returns zones ordered by name, without RRsets. The total is sent in X-Total-Count.
// @Tags zones
// @Produce json
// @Param server_id path string true "Server ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Zone
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	limit := h.cfg.Pagination.DefaultLimit
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Query parameter limit must be a number"})
			return
		}
		limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Query parameter offset must be a number"})
			return
		}
		offset = max(n, 0)
	}
	limit = helpers.ClampInt(limit, 1, h.cfg.Pagination.MaxLimit)

	zones, total, err := h.db.ListZones(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]models.Zone, 0, len(zones))
	for i := range zones {
		out = append(out, h.zoneObject(&zones[i]))
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, out)
}

// CreateZone godoc
// @Summary Create a zone
// @Description Creates a zone with seeded SOA and NS records, optional RRsets and optional BIND zone text
// @Tags zones
// @Accept json
// @Produce json
// @Param server_id path string true "Server ID"
// @Param zone body models.ZoneCreateRequest true "Zone to create"
// @Success 201 {object} models.Zone
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones [post]
func (h *Handler) CreateZone(c *gin.Context) {
	var req models.ZoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creq, err := toCreateRequest(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	z, err := h.engine.CreateZone(ctx, creq)
	if err != nil {
		h.respondError(c, err)
		return
	}
	records, err := h.db.ZoneRecords(ctx, z.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidate(ctx, recordNames(records)...)

	obj := h.zoneObject(z)
	obj.RRsets = toRRsets(records)
	c.Header("Location", obj.URL)
	c.JSON(http.StatusCreated, obj)
}

// GetZone godoc
// @Summary Get a zone
// @Description Returns the zone with its RRsets. With flatten=true an apex CNAME is replaced by the addresses it resolves to.
// @Tags zones
// @Produce json
// @Param server_id path string true "Server ID"
// @Param zone_id path string true "Zone name"
// @Param flatten query bool false "Flatten the apex CNAME"
// @Success 200 {object} models.Zone
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones/{zone_id} [get]
func (h *Handler) GetZone(c *gin.Context) {
	ctx := c.Request.Context()
	z, err := h.db.GetZone(ctx, zoneParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	records, err := h.db.ZoneRecords(ctx, z.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if flatten, _ := strconv.ParseBool(c.Query("flatten")); flatten && h.flattener != nil {
		records = h.flattener.FlattenZone(ctx, z.Name, records)
	}

	obj := h.zoneObject(z)
	obj.RRsets = toRRsets(records)
	c.JSON(http.StatusOK, obj)
}

// PatchZone godoc
// @Summary Apply RRset changes
// @Description Applies REPLACE and DELETE directives atomically and bumps the zone serial
// @Tags zones
// @Accept json
// @Param server_id path string true "Server ID"
// @Param zone_id path string true "Zone name"
// @Param rrsets body models.ZonePatchRequest true "RRset changes"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones/{zone_id} [patch]
func (h *Handler) PatchZone(c *gin.Context) {
	var req models.ZonePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.RRsets == nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "No rrsets given"})
		return
	}
	changes, err := toChanges(*req.RRsets, "")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	res, err := h.engine.Apply(ctx, zoneParam(c), changes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidate(ctx, res.Touched...)
	c.Status(http.StatusNoContent)
}

// UpdateZone godoc
// @Summary Update zone metadata
// @Description Changes kind, account or masters. RRsets are not touched.
// @Tags zones
// @Accept json
// @Param server_id path string true "Server ID"
// @Param zone_id path string true "Zone name"
// @Param zone body models.ZoneUpdateRequest true "Zone metadata"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones/{zone_id} [put]
func (h *Handler) UpdateZone(c *gin.Context) {
	var req models.ZoneUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	update := database.ZoneUpdate{Account: req.Account, Masters: req.Masters}
	if req.Kind != nil {
		kind, err := zone.ParseKind(*req.Kind)
		if err != nil {
			h.respondError(c, &zone.ValidationError{Name: zoneParam(c), Message: err.Error()})
			return
		}
		update.Kind = &kind
	}

	if err := h.db.UpdateZone(c.Request.Context(), zoneParam(c), update); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteZone godoc
// @Summary Delete a zone
// @Description Deletes the zone and all of its records
// @Tags zones
// @Param server_id path string true "Server ID"
// @Param zone_id path string true "Zone name"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones/{zone_id} [delete]
func (h *Handler) DeleteZone(c *gin.Context) {
	ctx := c.Request.Context()
	name := zoneParam(c)
	z, err := h.db.GetZone(ctx, name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	records, err := h.db.ZoneRecords(ctx, z.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.db.DeleteZone(ctx, name); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("zone deleted", "zone", z.Name, "records", len(records))
	h.invalidate(ctx, recordNames(records)...)
	c.Status(http.StatusNoContent)
}

// ExportZone godoc
// @Summary Export a zone
// @Description Returns the zone in BIND zone-file format with the apex CNAME flattened
// @Tags zones
// @Produce plain
// @Param server_id path string true "Server ID"
// @Param zone_id path string true "Zone name"
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/zones/{zone_id}/export [get]
func (h *Handler) ExportZone(c *gin.Context) {
	ctx := c.Request.Context()
	z, err := h.db.GetZone(ctx, zoneParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	records, err := h.db.ZoneRecords(ctx, z.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if h.flattener != nil {
		records = h.flattener.FlattenZone(ctx, z.Name, records)
	}

	var buf bytes.Buffer
	if err := zone.WriteText(&buf, z, records); err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// recordNames returns the distinct owner names of records.
func recordNames(records []zone.Record) []string {
	seen := make(map[string]struct{}, len(records))
	names := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	return names
}
