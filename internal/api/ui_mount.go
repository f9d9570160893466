package api

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrazone/internal/api/models"
)

//go:embed ui/*
var embeddedUI embed.FS

func getEmbedFs() static.ServeFileSystem {
	fs, err := static.EmbedFolder(embeddedUI, "ui")
	if err != nil {
		panic("failed to get embedded UI filesystem: " + err.Error())
	}
	return fs
}

// reservedPrefixes never fall back to the landing page, so a disabled
// swagger route reads as missing instead of serving index.html.
var reservedPrefixes = []string{"/api", "/swagger"}

func reserved(path string) bool {
	for _, p := range reservedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// MountUI serves the embedded landing page at / and answers unknown API
// and swagger paths with a JSON 404.
func MountUI(r *gin.Engine, logger *slog.Logger) {
	uiFS := getEmbedFs()
	r.Use(static.Serve("/", uiFS))

	r.NoRoute(func(c *gin.Context) {
		if reserved(c.Request.URL.Path) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
			return
		}
		index, err := uiFS.Open("index.html")
		if err != nil {
			logger.Error("failed to open index.html", "err", err)
			c.Status(http.StatusNotFound)
			return
		}
		defer index.Close()
		stat, err := index.Stat()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		http.ServeContent(c.Writer, c.Request, "index.html", stat.ModTime(), index)
	})
}
