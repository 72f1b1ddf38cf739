// Package logger provee un logger Zap singleton con scoping por contexto.
//
// Inicialización (una vez en main):
//
//	logger.Init(logger.Config{
//	    Env:         cfg.App.Env,      // "dev" o "prod"
//	    Level:       cfg.App.LogLevel, // "debug", "info", "warn", "error"
//	    ServiceName: "dcd-auth",
//	})
//	defer logger.Sync()
//
// En controllers (con contexto; el middleware de logging ya inyectó
// request_id, method y path):
//
//	log := logger.From(ctx).With(logger.Layer("controller"), logger.Flow("login"))
//	log.Warn("login challenge lookup failed", logger.Challenge(challenge), logger.Err(err))
//
// Regla: el detalle completo de un error se loguea sólo en el borde HTTP,
// nunca donde el error se construye.
package logger
