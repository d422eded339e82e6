package models

// Status is a user-defined task category. Name uniqueness is not
// enforced; two statuses sharing a name act as one logical bucket for
// task counts and cascade deletes.
type Status struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID string `json:"userId"`
}

// StatusPalette lists the colors offered when creating a status. The
// repository accepts any color string; the palette is a presentation
// convention.
var StatusPalette = []string{
	"hsla(331, 96%, 39%, 1)",
	"hsla(237, 77%, 67%, 1)",
	"hsla(217, 59%, 72%, 1)",
	"hsla(217, 40%, 33%, 1)",
	"hsla(93, 100%, 24%, 1)",
	"hsla(255, 83%, 62%, 1)",
	"hsla(8, 18%, 69%, 1)",
	"hsla(212, 100%, 50%, 1)",
}
