package logging

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// New builds the process logger. format is "json" or "text".
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.Level = lvl
	if format == "text" {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	} else {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	}
	log.Out = os.Stdout
	return log
}

// Discard returns a logger that writes nowhere; handy in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"http.req.path":    c.OriginalURL(),
			"http.req.method":  c.Method(),
			"http.resp.took":   time.Since(start).Milliseconds(),
			"http.resp.status": c.Response().StatusCode(),
		}).Debug("request complete")
		return err
	}
}
