package jjx

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = LogLevel("debug")
	LogLevelInfo  LogLevel = LogLevel("info")
	LogLevelWarn  LogLevel = LogLevel("warn")
	LogLevelError LogLevel = LogLevel("error")
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = LogFormat("structured")
	LogFormatConsole    LogFormat = LogFormat("console")
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLogger builds a zap.Logger honoring the requested level and format,
// suitable for passing to WithLogger when command-level logging is wanted.
// Runner logs each invocation at debug, so LogLevelDebug surfaces the full
// command trace.
func NewLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoding, formatExists := logFormatEncodingMapping[requestedLogFormat]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding

	return configuration.Build()
}
