package logger

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

// 요청 로그에서 제외하는 경로 (헬스 체크, 메트릭)
var skippedPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// NewEchoRequestLogger는 요청마다 한 줄의 구조화 로그를 남기는 미들웨어를 생성합니다.
// 상태 코드에 따라 Info/Warn/Error 레벨을 고르고, 인증 미들웨어가 설정한 user_id를 함께 기록합니다.
// Authorization 헤더는 스킴만 남기고 Stripe-Signature는 기록하지 않습니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			_, skip := skippedPaths[c.Request().URL.Path]
			return skip
		},
		HandleError: true,

		LogLatency:       true,
		LogRemoteIP:      true,
		LogMethod:        true,
		LogURI:           true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,
		LogHeaders:       []string{echo.HeaderContentType, echo.HeaderAuthorization},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := requestFields(v)
			if userID, ok := c.Get("user_id").(string); ok && userID != "" {
				fields = append(fields, zap.String("user_id", userID))
			}

			switch level := statusLevel(v.Status, v.Error); level {
			case zapcore.ErrorLevel:
				logger.Error("Request failed", fields...)
			case zapcore.WarnLevel:
				logger.Warn("Request rejected", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	})
}

func requestFields(v middleware.RequestLoggerValues) []zap.Field {
	fields := []zap.Field{
		zap.String("request_id", v.RequestID),
		zap.String("method", v.Method),
		zap.String("uri", v.URI),
		zap.String("route", v.RoutePath),
		zap.String("remote_ip", v.RemoteIP),
		zap.String("user_agent", v.UserAgent),
		zap.Int("status", v.Status),
		zap.Duration("latency", v.Latency),
		zap.String("content_length", v.ContentLength),
		zap.Int64("response_size", v.ResponseSize),
	}

	if ct := firstHeader(v.Headers, echo.HeaderContentType); ct != "" {
		fields = append(fields, zap.String("content_type", ct))
	}
	if auth := firstHeader(v.Headers, echo.HeaderAuthorization); auth != "" {
		fields = append(fields, zap.String("authorization", maskAuthorization(auth)))
	}
	if v.Error != nil {
		fields = append(fields, zap.Error(v.Error))
	}
	return fields
}

func firstHeader(headers map[string][]string, name string) string {
	if values := headers[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// maskAuthorization은 토큰 값을 숨기고 스킴만 남깁니다 ("Bearer ***")
func maskAuthorization(value string) string {
	scheme, _, found := strings.Cut(value, " ")
	if !found || scheme == "" {
		return "***"
	}
	return scheme + " ***"
}

// statusLevel 5xx와 처리되지 않은 에러는 Error, 4xx는 Warn
func statusLevel(status int, err error) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	case err != nil:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithEchoLogger는 Echo의 내장 로거를 zap으로 바꾸고 AppError를 이해하는 에러 핸들러를 설치합니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
}

// NewHTTPErrorHandler는 에러를 {"error","code"} 응답으로 변환합니다.
// 5xx 응답에는 내부 에러 메시지를 노출하지 않습니다.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		status, body := apperrors.ToErrorResponse(err)

		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", status),
			zap.String("error_code", body.Code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP error", fields...)
		} else {
			logger.Warn("HTTP error", fields...)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}

// EchoZapLogger는 echo.Logger를 zap SugaredLogger 위에 구현합니다.
// SetLevel은 Echo 내부 로그에만 적용되는 별도 임계값입니다.
type EchoZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewEchoZapLogger는 logger를 감싼 echo.Logger를 생성합니다.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{
		sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar().Named("echo"),
		level: zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

var echoLevels = map[log.Lvl]zapcore.Level{
	log.DEBUG: zapcore.DebugLevel,
	log.INFO:  zapcore.InfoLevel,
	log.WARN:  zapcore.WarnLevel,
	log.ERROR: zapcore.ErrorLevel,
	log.OFF:   zapcore.FatalLevel + 1,
}

func (l *EchoZapLogger) Output() io.Writer { return &zapWriter{logger: l} }

// SetOutput zap이 출력 대상을 관리하므로 무시합니다.
func (l *EchoZapLogger) SetOutput(io.Writer) {}

func (l *EchoZapLogger) Level() log.Lvl {
	current := l.level.Level()
	for lvl, zl := range echoLevels {
		if zl == current {
			return lvl
		}
	}
	return log.DEBUG
}

func (l *EchoZapLogger) SetLevel(v log.Lvl) {
	if zl, ok := echoLevels[v]; ok {
		l.level.SetLevel(zl)
	}
}

func (l *EchoZapLogger) SetHeader(string) {}
func (l *EchoZapLogger) Prefix() string   { return "" }
func (l *EchoZapLogger) SetPrefix(string) {}

func (l *EchoZapLogger) enabled(level zapcore.Level) bool {
	return l.level.Enabled(level)
}

func (l *EchoZapLogger) logJSON(level zapcore.Level, j log.JSON) {
	if !l.enabled(level) {
		return
	}
	fields := make([]interface{}, 0, len(j)*2)
	for k, v := range j {
		fields = append(fields, k, v)
	}
	switch level {
	case zapcore.DebugLevel:
		l.sugar.Debugw("echo", fields...)
	case zapcore.WarnLevel:
		l.sugar.Warnw("echo", fields...)
	case zapcore.ErrorLevel:
		l.sugar.Errorw("echo", fields...)
	case zapcore.PanicLevel:
		l.sugar.Panicw("echo", fields...)
	case zapcore.FatalLevel:
		l.sugar.Fatalw("echo", fields...)
	default:
		l.sugar.Infow("echo", fields...)
	}
}

func (l *EchoZapLogger) Print(i ...interface{}) { l.Info(i...) }
func (l *EchoZapLogger) Printf(format string, i ...interface{}) { l.Infof(format, i...) }
func (l *EchoZapLogger) Printj(j log.JSON) { l.Infoj(j) }
func (l *EchoZapLogger) Debugj(j log.JSON) { l.logJSON(zapcore.DebugLevel, j) }
func (l *EchoZapLogger) Infoj(j log.JSON) { l.logJSON(zapcore.InfoLevel, j) }
func (l *EchoZapLogger) Warnj(j log.JSON) { l.logJSON(zapcore.WarnLevel, j) }
func (l *EchoZapLogger) Errorj(j log.JSON) { l.logJSON(zapcore.ErrorLevel, j) }
func (l *EchoZapLogger) Fatalj(j log.JSON) { l.logJSON(zapcore.FatalLevel, j) }
func (l *EchoZapLogger) Panicj(j log.JSON) { l.logJSON(zapcore.PanicLevel, j) }
func (l *EchoZapLogger) Fatal(i ...interface{}) { l.sugar.Fatal(i...) }
func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) { l.sugar.Fatalf(format, i...) }
func (l *EchoZapLogger) Panic(i ...interface{}) { l.sugar.Panic(i...) }
func (l *EchoZapLogger) Panicf(format string, i ...interface{}) { l.sugar.Panicf(format, i...) }

func (l *EchoZapLogger) Debug(i ...interface{}) {
	if l.enabled(zapcore.DebugLevel) {
		l.sugar.Debug(i...)
	}
}

func (l *EchoZapLogger) Debugf(format string, i ...interface{}) {
	if l.enabled(zapcore.DebugLevel) {
		l.sugar.Debugf(format, i...)
	}
}

func (l *EchoZapLogger) Info(i ...interface{}) {
	if l.enabled(zapcore.InfoLevel) {
		l.sugar.Info(i...)
	}
}

func (l *EchoZapLogger) Infof(format string, i ...interface{}) {
	if l.enabled(zapcore.InfoLevel) {
		l.sugar.Infof(format, i...)
	}
}

func (l *EchoZapLogger) Warn(i ...interface{}) {
	if l.enabled(zapcore.WarnLevel) {
		l.sugar.Warn(i...)
	}
}

func (l *EchoZapLogger) Warnf(format string, i ...interface{}) {
	if l.enabled(zapcore.WarnLevel) {
		l.sugar.Warnf(format, i...)
	}
}

func (l *EchoZapLogger) Error(i ...interface{}) {
	if l.enabled(zapcore.ErrorLevel) {
		l.sugar.Error(i...)
	}
}

func (l *EchoZapLogger) Errorf(format string, i ...interface{}) {
	if l.enabled(zapcore.ErrorLevel) {
		l.sugar.Errorf(format, i...)
	}
}

// zapWriter는 Echo가 Output()으로 쓰는 내용을 Info 로그로 옮깁니다.
type zapWriter struct {
	logger *EchoZapLogger
}

func (w *zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
