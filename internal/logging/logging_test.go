package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     zapcore.Level
		wantErr       bool
	}{
		{"info", "json", zapcore.InfoLevel, false},
		{"DEBUG", "console", zapcore.DebugLevel, false},
		{" warn ", "", zapcore.WarnLevel, false},
		{"verbose", "json", 0, true},
		{"info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, log.Core().Enabled(tt.wantLevel))
			require.False(t, log.Core().Enabled(tt.wantLevel-1))
		})
	}
}
