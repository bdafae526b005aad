package dto

// ViewResponse descriptor de la vista que el cliente debe montar para una ruta de página.
type ViewResponse struct {
	View string `json:"view"`
	Path string `json:"path"`
	Role string `json:"role,omitempty"`
	From string `json:"from,omitempty"` // solo en login: ruta a la que volver
}
