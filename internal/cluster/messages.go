package cluster

// Tarea enviada desde la API (admin) al refresher para recalcular
// recomendaciones fuera del ciclo periódico.
type RefreshTask struct {
	// si All es true se ignora UserIDs y se recalcula para todos los
	// usuarios con interacciones
	All     bool  `json:"all"`
	UserIDs []int `json:"userIds,omitempty"`
	K       int   `json:"k"`
}

// Respuesta del refresher a la API.
type RefreshResult struct {
	UsersProcessed int    `json:"usersProcessed"`
	Errors         int    `json:"errors"`
	Elapsed        string `json:"elapsed"`
}
