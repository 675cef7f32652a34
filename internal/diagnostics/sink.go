package diagnostics

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink forwards diagnostics to a structured zap logger — the
// machine-consumable side of the split described in SPEC_FULL.md's ambient
// stack section.
type ZapSink struct {
	Logger *zap.Logger
}

// NewZapSink builds a ZapSink around logger, or around zap's default
// production logger (JSON to stderr) if logger is nil.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &ZapSink{Logger: logger}
}

func (z *ZapSink) Emit(d Diagnostic) {
	level := zapLevel(d.Kind)
	z.Logger.Check(level, d.Message).Write(
		zap.String("kind", string(d.Kind)),
		zap.String("code", d.Code),
		zap.String("module_id", d.ModuleID),
		zap.String("module_name", d.ModuleName),
		zap.String("decision", d.Decision),
		zap.String("pos", d.Pos.String()),
	)
}

func zapLevel(k Kind) zapcore.Level {
	switch k {
	case KindInfeasible, KindTimeout:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}
