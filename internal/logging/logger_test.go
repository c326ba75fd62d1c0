package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		debug     bool
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{name: "default", wantInfo: true, wantWarn: true},
		{name: "env info", env: "info", wantInfo: true, wantWarn: true},
		{name: "env debug", env: "DEBUG", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "env error", env: "error"},
		{name: "unknown value", env: "loud", wantInfo: true, wantWarn: true},
		{name: "debug flag", env: "error", debug: true, wantDebug: true, wantInfo: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.env)
			var buf bytes.Buffer
			log := newLogger(&config.RuntimeConfig{Debug: tt.debug}, &buf)

			log.Debug("debug-line")
			log.Info("info-line")
			log.Warn("warn-line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug-line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info-line"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn-line"))
			assert.NotContains(t, out, "time=")
		})
	}
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_contract.go", shortPath("/home/dev/src/starkdeploy/internal/usecase/deploy_contract.go"))
	assert.Equal(t, "main.go", shortPath("/somewhere/else/main.go"))
}
