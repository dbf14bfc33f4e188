package models

// Stakeholder is a person interviewed or consulted. ClientID and Client are
// nil for stakeholders not attached to any client.
type Stakeholder struct {
	Base
	Name     string  `json:"name" gorm:"not null;index"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	ClientID *string `json:"clientId" gorm:"type:varchar(36);index"`
	Client   *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// ClientName returns the attached client's name, or "" when there is none
func (s Stakeholder) ClientName() string {
	if s.Client == nil {
		return ""
	}
	return s.Client.Name
}

// BelongsTo reports whether the stakeholder is attached to clientID
func (s Stakeholder) BelongsTo(clientID string) bool {
	return s.ClientID != nil && *s.ClientID == clientID
}
