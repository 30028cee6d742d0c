package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rostercore/shiftopt/internal/config"
	"github.com/rostercore/shiftopt/internal/holiday"
	"github.com/rostercore/shiftopt/internal/model"
)

func TestGlyphCell_MapsKnownGlyphsAndLeavesOthersVerbatim(t *testing.T) {
	assert.Contains(t, glyphCell(model.GlyphOff), model.GlyphOff)
	assert.Contains(t, glyphCell(model.GlyphEarly), model.GlyphEarly)
	assert.Equal(t, "·", glyphCell(""))
	assert.Equal(t, "★", glyphCell("★"))
}

func TestBuildOracle_FallsBackToOfflineWithoutAPIURL(t *testing.T) {
	cfg := &config.Config{HolidayMode: "network", HolidayAPIURL: ""}
	_, ok := buildOracle(cfg).(holiday.OfflineOracle)
	assert.True(t, ok)
}

func TestBuildOracle_UsesNetworkOracleWhenConfigured(t *testing.T) {
	cfg := &config.Config{HolidayMode: "network", HolidayAPIURL: "https://example.invalid/holidays"}
	_, ok := buildOracle(cfg).(*holiday.NetworkOracle)
	assert.True(t, ok)
}
