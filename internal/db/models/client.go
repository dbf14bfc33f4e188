package models

// Client is a customer organisation
type Client struct {
	Base
	Name        string `json:"name" gorm:"not null;index"`
	ClientCode  string `json:"clientCode" gorm:"not null;uniqueIndex"`
	Email       string `json:"email"`
	Description string `json:"description" gorm:"type:text"`
}
