package model

// All lists every persisted type, parents before children, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Board{},
		&List{},
		&Card{},
		&Comment{},
		&BoardLabel{},
	}
}
