package logging

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New — production JSON-логгер с заданным уровнем (debug/info/warn/error).
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel
	return cfg.Build()
}

// IDSource выдаёт монотонные ULID для request id.
type IDSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func NewIDSource() *IDSource {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &IDSource{entropy: ulid.Monotonic(src, 0)}
}

// New — следующий id. Monotonic-энтропия не потокобезопасна, поэтому под mutex.
func (s *IDSource) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}
