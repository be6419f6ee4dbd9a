package models

type Family struct {
	BaseModel

	Name        string `gorm:"not null"`
	Code        string `gorm:"uniqueIndex;not null"` // join code, stored uppercase
	CreatedByID uint   `gorm:"not null;index"`

	// Relationships
	CreatedBy User               `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members   []FamilyMembership `gorm:"foreignKey:FamilyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type FamilyMembership struct {
	BaseModel

	// A user belongs to at most one family; membership existence is the
	// sole signal that finances and goals are shared.
	UserID   uint `gorm:"not null;uniqueIndex"`
	FamilyID uint `gorm:"not null;index"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Family Family `gorm:"foreignKey:FamilyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
