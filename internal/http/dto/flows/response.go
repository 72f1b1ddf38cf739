package flows

// RedirectResponse es la respuesta para clientes que piden JSON: en lugar
// de un 302 devolvemos la URL destino.
type RedirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}

// PageResponse describe un formulario a re-mostrar (clientes JSON).
type PageResponse struct {
	Page  string `json:"page"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}
