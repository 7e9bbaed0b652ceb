package domain

// Character is a comics catalog entry. Rows are shared globally across
// users: the first favoriter's metadata wins and later favoriters never
// overwrite it. CatalogID records insertion order into the catalog.
type Character struct {
	CatalogID   int64  `json:"-"`
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Favorite is the joined view of a user/character association, as returned
// after a favorite is created. The JSON field casing intentionally differs
// from Character: creation echoes camelCase keys while listings use the
// catalog's snake_case columns.
type Favorite struct {
	CharacterID string `json:"characterId"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	UserID      int64  `json:"userId"`
}
