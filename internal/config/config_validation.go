package config

// validate checks that the final merged [StructuredConfig] satisfies the
// startup invariants. The token signing secret is mandatory — running with an
// empty secret would make every issued token forgeable.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	switch cfg.Storage.DB.Type {
	case DBTypePostgres:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case DBTypeSQLite:
		if cfg.Storage.DB.SQLitePath == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
