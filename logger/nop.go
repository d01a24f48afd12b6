package logger

import "go.uber.org/zap"

// Nop returns a logger that discards everything. Default for library
// components constructed without an explicit logger.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
