package deskscene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "desk", false)

	logger.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Infof("loaded %d textures", 40)
	logger.Warnf("slow frame")
	logger.Errorf("boom: %v", "device lost")

	out := buf.String()
	assert.Contains(t, out, "[desk] INFO: loaded 40 textures")
	assert.Contains(t, out, "[desk] WARN: slow frame")
	assert.Contains(t, out, "[desk] ERROR: boom: device lost")

	buf.Reset()
	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
	logger.Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "[desk] DEBUG: shown 2")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, "", false).Infof("hello")
	assert.Contains(t, buf.String(), "INFO: hello")
	assert.NotContains(t, buf.String(), "[")
}

func TestApp_Logger(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	assert.IsType(t, &nopLogger{}, app.Logger())

	var buf bytes.Buffer
	app.UseModules(LoggingModule{Prefix: "app", Output: &buf})
	app.Logger().Infof("ready")
	assert.Contains(t, buf.String(), "[app] INFO: ready")
}
