package domain

// Значения по умолчанию
const (
	DefaultSlotCapacity = 2
	DefaultMinPhotos    = 2
	DefaultMaxPhotos    = 4
	DefaultMaxCartItems = 5

	// DefaultMaxPhotoSize 5 MB
	DefaultMaxPhotoSize = 5 * 1024 * 1024
)

// DefaultTimeSlots фиксированные слоты дня
var DefaultTimeSlots = []string{"10:00", "13:30", "15:00"}

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Услуги, которые можно заказать
const (
	ServiceSofa     = "Canapé/Fauteuil"
	ServiceChairs   = "Chaises"
	ServiceMattress = "Matelas"
)

// AllowedServices список услуг по умолчанию
var AllowedServices = []string{ServiceSofa, ServiceChairs, ServiceMattress}

// Опции чистки дивана
const (
	OptionAntiMites      = "anti-acariens"
	OptionStainProtector = "protection-anti-taches"
)

// AcceptedPhotoTypes MIME-типы, которые принимает загрузчик фото
var AcceptedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}
