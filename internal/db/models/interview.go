package models

import "time"

// Interview is a recorded conversation with stakeholders of a client project
type Interview struct {
	Base
	Name           string    `json:"name" gorm:"not null;index"`
	Date           time.Time `json:"date" gorm:"index"`
	Notes          string    `json:"notes" gorm:"type:text"`
	ClientID       string    `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Client         *Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProjectID      string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Project        *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	StakeholderIDs []string  `json:"stakeholderIds" gorm:"serializer:json"`
}
