package models

import "time"

// Config is a versioned JSON document scoped to a client project
type Config struct {
	Base
	Name      string   `json:"name" gorm:"not null;index"`
	ClientID  string   `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Client    *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProjectID string   `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Project   *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Version   int      `json:"version" gorm:"not null;default:1"`
	Body      string   `json:"body" gorm:"type:text"`
}

// ConfigVersion is a snapshot of a config body before an update
type ConfigVersion struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ConfigID  string    `json:"configId" gorm:"type:varchar(36);not null;index"`
	Version   int       `json:"version" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// All returns every model, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&Project{},
		&Stakeholder{},
		&Interview{},
		&Config{},
		&ConfigVersion{},
	}
}
