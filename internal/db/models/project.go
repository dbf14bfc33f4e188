package models

// Project is an engagement run for a client
type Project struct {
	Base
	Name        string  `json:"name" gorm:"not null;index"`
	Description string  `json:"description" gorm:"type:text"`
	ClientID    string  `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Client      *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	// StakeholderIDs references stakeholders of the same client
	StakeholderIDs []string `json:"stakeholderIds" gorm:"serializer:json"`
}
