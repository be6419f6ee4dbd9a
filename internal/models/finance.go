package models

import (
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Finance struct {
	BaseModel

	Title       string              `gorm:"size:50;not null"`
	Value       decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Category    string              `gorm:"size:45;not null"`
	Type        types.FinanceType   `gorm:"size:10;not null"`
	Status      types.FinanceStatus `gorm:"size:15;not null;default:Pendente"`
	DueDate     *datatypes.Date
	PaymentDate *datatypes.Date
	CreatedByID uint  `gorm:"not null;index"`
	FamilyID    *uint `gorm:"index"` // nil when the record is private

	// Relationships
	CreatedBy   User                `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Family      *Family             `gorm:"foreignKey:FamilyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Attachments []FinanceAttachment `gorm:"foreignKey:FinanceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type FinanceAttachment struct {
	BaseModel

	FinanceID   uint   `gorm:"not null;index"`
	Name        string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:255;not null"`
	Size        int64  `gorm:"not null"`
	StorageKey  string `gorm:"size:255;not null"`
	FileURL     string `gorm:"type:text;not null"`
	CreatedByID uint   `gorm:"not null;index"`

	// Relationships
	Finance   Finance `gorm:"foreignKey:FinanceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type SpendingLimit struct {
	BaseModel

	UserID uint            `gorm:"not null;uniqueIndex"`
	Value  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
