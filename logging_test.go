package jjx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jjx"
)

func TestNewLoggerBuildsSupportedCombinations(testInstance *testing.T) {
	testCases := []struct {
		name      string
		logLevel  jjx.LogLevel
		logFormat jjx.LogFormat
	}{
		{name: "debug_structured", logLevel: jjx.LogLevelDebug, logFormat: jjx.LogFormatStructured},
		{name: "info_console", logLevel: jjx.LogLevelInfo, logFormat: jjx.LogFormatConsole},
		{name: "warn_structured", logLevel: jjx.LogLevelWarn, logFormat: jjx.LogFormatStructured},
		{name: "error_console", logLevel: jjx.LogLevelError, logFormat: jjx.LogFormatConsole},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builtLogger, buildError := jjx.NewLogger(testCase.logLevel, testCase.logFormat)
			require.NoError(testInstance, buildError)
			require.NotNil(testInstance, builtLogger)
		})
	}
}

func TestNewLoggerRejectsUnknownLevel(testInstance *testing.T) {
	_, buildError := jjx.NewLogger(jjx.LogLevel("verbose"), jjx.LogFormatStructured)
	require.Error(testInstance, buildError)
	require.Contains(testInstance, buildError.Error(), "verbose")
}

func TestNewLoggerRejectsUnknownFormat(testInstance *testing.T) {
	_, buildError := jjx.NewLogger(jjx.LogLevelInfo, jjx.LogFormat("xml"))
	require.Error(testInstance, buildError)
	require.Contains(testInstance, buildError.Error(), "xml")
}
