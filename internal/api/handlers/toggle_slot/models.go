package toggle_slot

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Status string `json:"status"` // blocked | available
}

// ToggleSlotResponse новый статус слота
type ToggleSlotResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
