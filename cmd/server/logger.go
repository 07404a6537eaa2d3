package main

import "log"

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...any)
}

// LoggerImpl implements Logger using standard log package
type LoggerImpl struct{}

func NewLogger() *LoggerImpl {
	return &LoggerImpl{}
}

func (l *LoggerImpl) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
