// Package middlewares contiene los decoradores http.Handler de la capa HTTP.
package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain aplica middlewares en orden de izquierda a derecha.
// Chain(h, A, B, C) ejecuta: A -> B -> C -> h
// Es decir, A es el primero en interceptar el request y el último en ver la respuesta.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}

// ErrorWriter escribe un error como respuesta. La capa de controllers provee
// uno que renderiza HTML; por defecto se usa errors.WriteError (JSON).
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)
