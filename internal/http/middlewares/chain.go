package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain aplica middlewares de izquierda a derecha: en Chain(h, A, B, C)
// el request pasa por A -> B -> C -> h, y A es el último en ver la respuesta.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	// Envolvemos en orden inverso para que el primero quede más afuera
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// ChainFunc encadena middlewares sobre un http.HandlerFunc.
func ChainFunc(hf http.HandlerFunc, mws ...Middleware) http.Handler {
	return Chain(hf, mws...)
}
