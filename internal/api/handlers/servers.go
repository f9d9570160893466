package handlers

import (
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jroosing/hydrazone/internal/api/models"
	"github.com/jroosing/hydrazone/internal/helpers"
)

const (
	apiPrefix  = "/api/v1"
	daemonType = "authoritative"

	defaultSearchMax = 100
)

func (h *Handler) serverURL() string {
	return apiPrefix + "/servers/" + h.cfg.Server.ID
}

func (h *Handler) server() models.Server {
	return models.Server{
		ID:         h.cfg.Server.ID,
		Type:       "Server",
		DaemonType: daemonType,
		Version:    Version,
		URL:        h.serverURL(),
		ConfigURL:  h.serverURL() + "/config{/config_setting}",
		ZonesURL:   h.serverURL() + "/zones{/zone}",
	}
}

// RequireServer rejects requests whose :server_id is not this server.
func (h *Handler) RequireServer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("server_id") != h.cfg.Server.ID {
			c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
			return
		}
		c.Next()
	}
}

// ListServers godoc
// @Summary List servers
// @Tags servers
// @Produce json
// @Success 200 {array} models.Server
// @Security ApiKeyAuth
// @Router /servers [get]
func (h *Handler) ListServers(c *gin.Context) {
	c.JSON(http.StatusOK, []models.Server{h.server()})
}

// GetServer godoc
// @Summary Get server
// @Tags servers
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {object} models.Server
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id} [get]
func (h *Handler) GetServer(c *gin.Context) {
	c.JSON(http.StatusOK, h.server())
}

// Statistics godoc
// @Summary Server statistics
// @Description Returns uptime, zone and record counts, flattening cache counters and process memory
// @Tags servers
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {array} models.StatisticItem
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/statistics [get]
func (h *Handler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()
	zones, records, err := h.db.Counts(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	uptime := int64(time.Since(h.startTime).Seconds())
	stats := []models.StatisticItem{
		models.NewStatistic("uptime", strconv.FormatInt(uptime, 10)),
		models.NewStatistic("zones", strconv.FormatInt(zones, 10)),
		models.NewStatistic("records", strconv.FormatInt(records, 10)),
		models.NewStatistic("goroutines", strconv.Itoa(runtime.NumGoroutine())),
	}

	if h.flattener != nil {
		fs := h.flattener.Stats()
		stats = append(stats,
			models.NewStatistic("flattening-cache-hits", strconv.FormatUint(fs.Hits, 10)),
			models.NewStatistic("flattening-cache-misses", strconv.FormatUint(fs.Misses, 10)),
			models.NewStatistic("flattening-cache-entries", strconv.Itoa(fs.MemoryKeys)),
			models.NewStatistic("flattening-resolved", strconv.FormatUint(fs.Resolved, 10)),
			models.NewStatistic("flattening-unresolved", strconv.FormatUint(fs.Unresolved, 10)),
		)
	}

	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil { //nolint:gosec // pid fits int32
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
			stats = append(stats, models.NewStatistic("process-rss-bytes", strconv.FormatUint(mi.RSS, 10)))
		}
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats = append(stats, models.NewStatistic("sys-memory-used-percent", strconv.FormatFloat(vm.UsedPercent, 'f', 1, 64)))
	}

	c.JSON(http.StatusOK, stats)
}

// GetConfig godoc
// @Summary Server configuration
// @Description Returns configuration settings (secrets are never included)
// @Tags servers
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {array} models.ConfigSetting
// @Security ApiKeyAuth
// @Router /servers/{server_id}/config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	setting := func(name, value string) models.ConfigSetting {
		return models.ConfigSetting{Name: name, Type: "ConfigSetting", Value: value}
	}
	flattening := "no"
	if h.cfg.Flattening.Enabled {
		flattening = "yes"
	}
	c.JSON(http.StatusOK, []models.ConfigSetting{
		setting("version", Version),
		setting("daemon-type", daemonType),
		setting("default-ttl", strconv.FormatUint(uint64(h.cfg.DNS.DefaultTTL), 10)),
		setting("cname-flattening", flattening),
		setting("cname-flattening-max-hops", strconv.Itoa(h.cfg.Flattening.MaxHops)),
		setting("cname-flattening-cache-ttl", strconv.Itoa(int(h.cfg.Flattening.CacheTTL/time.Second))),
		setting("cname-flattening-durable-cache", h.cfg.Flattening.Durable),
	})
}

// SearchData godoc
// @Summary Search zones and records
// @Description Matches zone names, record names and record content. "*" is a wildcard.
// @Tags servers
// @Produce json
// @Param server_id path string true "Server ID"
// @Param q query string true "Search term"
// @Param max query int false "Maximum results per object type"
// @Success 200 {array} models.SearchResult
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/search-data [get]
func (h *Handler) SearchData(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Query parameter q is required"})
		return
	}
	maxResults := defaultSearchMax
	if raw := c.Query("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Query parameter max must be a number"})
			return
		}
		maxResults = n
	}
	maxResults = helpers.ClampInt(maxResults, 1, h.cfg.Pagination.MaxLimit)

	found, err := h.db.Search(c.Request.Context(), q, maxResults)
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]models.SearchResult, 0, len(found))
	for _, r := range found {
		results = append(results, models.SearchResult{
			ObjectType: r.ObjectType,
			Name:       r.Name,
			Type:       r.Type,
			Content:    r.Content,
			ZoneID:     r.Zone,
			Zone:       r.Zone,
		})
	}
	c.JSON(http.StatusOK, results)
}

// FlushCache godoc
// @Summary Flush the flattening cache
// @Description Drops cached flattening results for one domain, or all of them when domain is omitted
// @Tags servers
// @Produce json
// @Param server_id path string true "Server ID"
// @Param domain query string false "Domain to flush"
// @Success 200 {object} models.CacheFlushResult
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /servers/{server_id}/cache/flush [put]
func (h *Handler) FlushCache(c *gin.Context) {
	if h.flattener == nil {
		c.JSON(http.StatusOK, models.CacheFlushResult{Count: 0, Result: "Flushed cache."})
		return
	}
	ctx := c.Request.Context()
	var (
		n   int64
		err error
	)
	if domain := c.Query("domain"); domain != "" {
		n, err = h.flattener.Flush(ctx, domain)
	} else {
		n, err = h.flattener.FlushAll(ctx)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CacheFlushResult{Count: int(n), Result: "Flushed cache."})
}
