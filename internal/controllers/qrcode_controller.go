package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"attendance-be/internal/errutil"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const (
	defaultQRCodeSize = 256
	minQRCodeSize     = 128
	maxQRCodeSize     = 1024
)

type QRCodeController struct {
	logger *slog.Logger
}

func NewQRCodeController(logger *slog.Logger) *QRCodeController {
	return &QRCodeController{
		logger: logger,
	}
}

// GenerateQRCode handles GET /qrcode?location=&size= - renders a location badge
// whose payload is the check-in location descriptor.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		respondError(c, qc.logger, "qrcode without location", errutil.InvalidArgument("Location is required"))
		return
	}

	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = defaultQRCodeSize
	}
	size = min(max(size, minQRCodeSize), maxQRCodeSize)

	qrCode, err := qrcode.New(location, qrcode.Medium)
	if err != nil {
		respondError(c, qc.logger, "qrcode encode failed", errutil.Internal(err, "encode qr code"))
		return
	}

	pngData, err := qrCode.PNG(size)
	if err != nil {
		respondError(c, qc.logger, "qrcode render failed", errutil.Internal(err, "render qr code"))
		return
	}

	c.Header("Content-Disposition", "inline; filename=location.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
