package logger

import (
	"time"

	"go.uber.org/zap"
)

// ---- HTTP ----

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field { return zap.String("method", v) }
func Path(v string) zap.Field { return zap.String("path", v) }
func Status(v int) zap.Field { return zap.Int("status", v) }
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Duration crea un campo para una duración arbitraria.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ---- Flujos login/consent/logout ----

// Flow identifica el flujo (login, signup, consent, logout).
func Flow(v string) zap.Field { return zap.String("flow", v) }

const challengePrefix = 8

// Challenge loguea sólo un prefijo (en runes) del challenge: es un
// identificador reutilizable hasta que se acepte o rechace.
func Challenge(v string) zap.Field {
	if r := []rune(v); len(r) > challengePrefix {
		v = string(r[:challengePrefix]) + "…"
	}
	return zap.String("challenge", v)
}

func Subject(v string) zap.Field { return zap.String("subject", v) }
func ClientID(v string) zap.Field { return zap.String("client_id", v) }
func Decision(v string) zap.Field { return zap.String("decision", v) }

// Upstream identifica el servicio externo (hydra, persons).
func Upstream(v string) zap.Field { return zap.String("upstream", v) }

// ---- Sistema ----

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field { return zap.String("op", v) }
func Layer(v string) zap.Field { return zap.String("layer", v) }
func Err(err error) zap.Field { return zap.Error(err) }

// ---- Genéricos ----

func String(key, v string) zap.Field { return zap.String(key, v) }
func Int(key string, v int) zap.Field { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
