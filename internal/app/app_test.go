package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerProductionWritesJSON(t *testing.T) {
	defer func(l zerolog.Logger, lvl zerolog.Level) {
		log.Logger = l
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	SetupLogger(&config.AppConfig{Name: "yuyitos-api", Env: "production", LogLevel: "warn"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("boleta", "0000000001").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "yuyitos-api", line["service"])
	assert.Equal(t, "0000000001", line["boleta"])
}

func TestSetupLoggerFallsBackToInfo(t *testing.T) {
	defer func(l zerolog.Logger, lvl zerolog.Level) {
		log.Logger = l
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	SetupLogger(&config.AppConfig{Env: "development", LogLevel: "loud"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNewMetricsRegistersRuntimeCollectors(t *testing.T) {
	m, reg := NewMetrics()
	require.NotNil(t, m)

	m.ReceiptCreated()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReceiptsTotal))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

func TestNewPrinterFallsBackToNull(t *testing.T) {
	p := NewPrinter(&config.PrinterConfig{Type: "parallel"})
	assert.Equal(t, printer.Null{}, p)

	p = NewPrinter(&config.PrinterConfig{Type: printer.TypeNetwork, Address: "127.0.0.1:9100"})
	assert.NotEqual(t, printer.Null{}, p)
}

func TestNewPublisherDisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewPublisher(&config.NATSConfig{}, "test"))
}

func TestSeedReportTrack(t *testing.T) {
	var r SeedReport
	require.NoError(t, r.track(nil, "supplier 001"))
	require.NoError(t, r.track(apperror.NewConflictError("Supplier code already exists"), "supplier 001"))

	err := r.track(apperror.NewInvalidInputError("code", "must be exactly three digits"), "supplier 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed supplier 1")
	assert.Equal(t, SeedReport{Created: 1, Skipped: 1}, r)
}
