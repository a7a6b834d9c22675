package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 로거 설정
type Config struct {
	// Level 로그 레벨 (debug, info, warn, error, dpanic, panic, fatal). 비어 있으면 info
	Level string
	// Format json 또는 console
	Format string
	// Output stdout, stderr 또는 file
	Output string
	// FilePath Output이 file일 때의 경로
	FilePath string
	// Development 컬러 레벨과 호출자 정보를 출력합니다
	Development bool

	// 모든 로그에 붙는 서비스 식별 필드
	Service     string
	Environment string
	Version     string
}

// NewZapLogger 설정에 맞는 zap 로거를 생성합니다.
// 서비스 식별 필드가 있으면 모든 로그에 service, environment, version으로 붙습니다.
func NewZapLogger(config Config) (*zap.Logger, error) {
	level, err := parseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	sink, err := openSink(config)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(config), sink, zap.NewAtomicLevelAt(level))

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if config.Development {
		opts = append(opts, zap.AddCaller())
	}
	if fields := serviceFields(config); len(fields) > 0 {
		opts = append(opts, zap.Fields(fields...))
	}

	return zap.New(core, opts...), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("잘못된 로그 레벨 %q: %w", level, err)
	}
	return parsed, nil
}

func newEncoder(config Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "log.level"
	encoderConfig.MessageKey = "message"
	encoderConfig.CallerKey = "caller"

	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if config.Format == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func openSink(config Config) (zapcore.WriteSyncer, error) {
	switch config.Output {
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "file":
		if config.FilePath == "" {
			return nil, fmt.Errorf("log.output이 file이면 file_path가 필요합니다")
		}
		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("로그 파일 열기 실패: %w", err)
		}
		return zapcore.AddSync(file), nil
	default:
		return zapcore.Lock(os.Stdout), nil
	}
}

func serviceFields(config Config) []zap.Field {
	var fields []zap.Field
	if config.Service != "" {
		fields = append(fields, zap.String("service", config.Service))
	}
	if config.Environment != "" {
		fields = append(fields, zap.String("environment", config.Environment))
	}
	if config.Version != "" {
		fields = append(fields, zap.String("version", config.Version))
	}
	return fields
}
