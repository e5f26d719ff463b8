package models

// Listing is a single found-pet report ("order" in the API).
type Listing struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	District    string   `json:"district"`
	Mark        string   `json:"mark,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Date        string   `json:"date,omitempty"`
	Name        string   `json:"name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Statuses the client needs to recognize for editability gating.
// The server owns the full status vocabulary and its transitions; do not
// extend this set for display purposes — render Status as-is instead.
const (
	StatusActive       = "active"
	StatusOnModeration = "onModeration"
)

// Editable reports whether the owner may edit or delete this listing,
// per client-side policy. The server remains the authority.
func (l Listing) Editable() bool {
	return l.Status == StatusActive || l.Status == StatusOnModeration
}

// MaxListingPhotos is the photo limit per listing.
const MaxListingPhotos = 3

// Districts is the fixed set of city districts used to categorize and
// filter listings.
var Districts = []string{
	"Адмиралтейский",
	"Василеостровский",
	"Выборгский",
	"Калининский",
	"Кировский",
	"Колпинский",
	"Красногвардейский",
	"Красносельский",
	"Кронштадтский",
	"Курортный",
	"Московский",
	"Невский",
	"Петроградский",
	"Петродворцовый",
	"Приморский",
	"Пушкинский",
	"Фрунзенский",
	"Центральный",
}

// ValidDistrict reports whether name is one of the known districts.
func ValidDistrict(name string) bool {
	for _, d := range Districts {
		if d == name {
			return true
		}
	}
	return false
}
