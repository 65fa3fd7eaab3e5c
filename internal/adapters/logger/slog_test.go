package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/lumenlang/lumen/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func TestFromSlog_ForwardsRecords(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log := logger.FromSlog(base)
	log.Debug("resolved source import", "specifier", "./util")
	log.Info("cleaned output directory")
	log.Warn("no compiler command configured")
	log.Error(zerr.New("compiler exited with status 1"))

	out := buf.String()
	assert.Contains(t, out, "resolved source import")
	assert.Contains(t, out, "specifier=./util")
	assert.Contains(t, out, "cleaned output directory")
	assert.Contains(t, out, "no compiler command configured")
	assert.Contains(t, out, "compiler exited with status 1")
}

func TestFromSlog_RespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.FromSlog(base).Debug("artifact up to date")

	assert.Zero(t, buf.Len())
}

func TestFromSlog_NilLoggerDiscards(t *testing.T) {
	log := logger.FromSlog(nil)

	log.Debug("quiet")
	log.Info("quiet")
	log.Warn("quiet")
	log.Error(zerr.New("still quiet"))
}

func TestFromSlog_NilErrorIgnored(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Error(nil)

	assert.Zero(t, buf.Len())
}
