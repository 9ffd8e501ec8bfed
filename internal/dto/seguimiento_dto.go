package dto

// ConsultaSeguimientoRequest is the public "where is my device" lookup.
// Both fields are required and must match the same device.
type ConsultaSeguimientoRequest struct {
	CodigoSeguimiento string `json:"codigo_seguimiento" validate:"required"`
	ClienteDocumento  string `json:"cliente_documento"  validate:"required"`
	AceptaTerminos    bool   `json:"acepta_terminos"    validate:"required"`
}

// EstadoPublicoResponse is what an anonymous customer sees: current status
// plus the warranty notice when pickup is getting urgent.
type EstadoPublicoResponse struct {
	CodigoSeguimiento string `json:"codigo_seguimiento"`
	Marca             string `json:"marca"`
	Modelo            string `json:"modelo"`
	EstadoActual      string `json:"estado_actual"`
	FechaRecepcion    string `json:"fecha_recepcion"`
	AvisoGarantia     string `json:"aviso_garantia,omitempty"`
	DiasGarantia      int    `json:"dias_garantia"`
}

// TicketResponse carries everything the printable intake ticket needs.
type TicketResponse struct {
	CodigoSeguimiento string `json:"codigo_seguimiento"`
	ClienteNombre     string `json:"cliente_nombre"`
	Marca             string `json:"marca"`
	Modelo            string `json:"modelo"`
	FechaRecepcion    string `json:"fecha_recepcion"`
	FinGarantia       string `json:"fin_garantia"`
	URLSeguimiento    string `json:"url_seguimiento"`
	// QRPNG is the base64-encoded PNG of URLSeguimiento.
	QRPNG string `json:"qr_png"`
}
