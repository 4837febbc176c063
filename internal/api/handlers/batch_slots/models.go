package batch_slots

// BatchResponse итог пакетной операции
type BatchResponse struct {
	Date      string `json:"date"`
	Succeeded int    `json:"succeeded"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}
