package model

// VersionInfo describes the running build and the draft store schema version.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	DbVersion  string `json:"db_version"`
}
