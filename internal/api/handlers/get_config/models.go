package get_config

// ConfigResponse публичные настройки формы бронирования
type ConfigResponse struct {
	TimeSlots          []string `json:"timeSlots"`
	SlotCapacity       int      `json:"slotCapacity"`
	DayOff             string   `json:"dayOff"`
	Timezone           string   `json:"timezone"`
	Services           []string `json:"services"`
	MaxCartItems       int      `json:"maxCartItems"`
	MinPhotos          int      `json:"minPhotos"`
	MaxPhotos          int      `json:"maxPhotos"`
	MaxPhotoSize       int64    `json:"maxPhotoSize"`
	AcceptedPhotoTypes []string `json:"acceptedPhotoTypes"`
}
