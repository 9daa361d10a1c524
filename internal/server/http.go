package server

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ironsheep/sun-detect-mcp/internal/imaging"
)

// Banner is the plain-text body of GET /.
const Banner = "API running! Use POST /detect_sun with JSON containing base64 image."

type detectRequest struct {
	ImageBase64 *string `json:"image_base64"`
}

// HTTPApp builds the HTTP front end. It shares the detector settings with
// the MCP side but holds no per-request state, so one app can serve many
// requests in parallel.
func (s *Server) HTTPApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "sun-detect-mcp",
		DisableStartupMessage: true,
		BodyLimit:             s.cfg.BodyLimit(),
		ReadTimeout:           s.cfg.ReadTimeout,
		WriteTimeout:          s.cfg.WriteTimeout,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	if s.cfg.Debug() {
		app.Use(logger.New(logger.Config{Output: os.Stderr}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(Banner)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": Version,
		})
	})
	app.Post("/detect_sun", s.handleDetectSun)

	return app
}

// handleDetectSun decodes {"image_base64": ...}, runs the detector and
// answers with the annotated image as base64 JPEG.
func (s *Server) handleDetectSun(c *fiber.Ctx) error {
	var req detectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON body: " + err.Error(),
		})
	}
	if req.ImageBase64 == nil || strings.TrimSpace(*req.ImageBase64) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image_base64 provided",
		})
	}

	img, _, err := imaging.DecodeBase64(*req.ImageBase64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to decode image: " + err.Error(),
		})
	}

	res, err := s.detectAndEncode(img, "jpeg", false)
	if err != nil {
		log.Printf("detect_sun: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode image: " + err.Error(),
		})
	}

	return c.JSON(DetectResponse{
		SunDetected:          res.SunDetected,
		Center:               res.Center,
		AnnotatedImageBase64: res.AnnotatedImageBase64,
	})
}

// jsonErrorHandler reports errors raised outside the handlers, such as an
// oversized body or an unknown route, in the same {"error": ...} shape.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("HTTP %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
