package models

// Species is reference data seeded by migration, never mutated at runtime.
type Species struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
