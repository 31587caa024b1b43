package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	var err error
	L, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// WithComponent 回傳帶有 component 欄位的 logger，供 MQ、handler、service、client 等使用
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

// Silence 將全域 logger 換成 no-op，終端介面執行時避免 JSON 日誌寫進畫面
func Silence() {
	L = zap.NewNop()
}
