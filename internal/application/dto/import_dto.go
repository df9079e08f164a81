package dto

// RowErrorDTO fila rechazada de un CSV; Row es la línea del archivo (la cabecera es la 1).
type RowErrorDTO struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResponse resultado de POST /api/import/:collection.
type ImportResponse struct {
	Collection string        `json:"collection"`
	Imported   int           `json:"imported"`
	Rejected   []RowErrorDTO `json:"rejected"`
}
