package service

import (
	"database/sql"
	"strconv"

	"github.com/ndewijer/Banking-Admin-Backend/internal/database"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersionInfo returns the build metadata and the draft store schema version.
func (s *SystemService) GetVersionInfo() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		Commit:     version.Commit,
		BuildDate:  version.Date,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
	}, nil
}
