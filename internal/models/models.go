package models

// Tables lists the persisted models in dependency order for AutoMigrate.
func Tables() []any {
	return []any{&Client{}, &Platform{}, &Invoice{}, &Transaction{}}
}
