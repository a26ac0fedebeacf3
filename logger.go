package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const logFile = "logs/gowander.log"

var appLog *zap.SugaredLogger

// setupLogging wires the rotating log file plus stdout. Before this runs the
// log helpers fall back to plain stderr so early failures are still visible.
func setupLogging(debug bool) {
	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(lj), level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)
	appLog = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

func syncLogging() {
	if appLog != nil {
		_ = appLog.Sync()
	}
}

func logError(format string, v ...any) {
	if appLog == nil {
		fmt.Fprintf(os.Stderr, format+"\n", v...)
		return
	}
	appLog.Errorf(format, v...)
}

func logWarn(format string, v ...any) {
	if appLog == nil {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", v...)
		return
	}
	appLog.Warnf(format, v...)
}

func logDebug(format string, v ...any) {
	if appLog == nil {
		return
	}
	appLog.Debugf(format, v...)
}
