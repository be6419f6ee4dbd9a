package models

import (
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Goal struct {
	BaseModel

	UserID      uint            `gorm:"not null;index"`
	FamilyID    *uint           `gorm:"index"`
	Title       string          `gorm:"size:100;not null"`
	TargetValue decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CurrentValue is derived: it always equals the signed sum of the
	// goal's records and is never written from client input.
	CurrentValue decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Deadline     *datatypes.Date

	// Relationships
	User    User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Family  *Family      `gorm:"foreignKey:FamilyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Records []GoalRecord `gorm:"foreignKey:GoalID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// GoalRecord is an append-only ledger entry. Records are never updated or
// deleted through the API; Value is stored non-negative and Type carries
// the sign.
type GoalRecord struct {
	BaseModel

	GoalID uint                 `gorm:"not null;index"`
	Title  string               `gorm:"size:100;not null"`
	Value  decimal.Decimal      `gorm:"type:decimal(10,2);not null"`
	Type   types.GoalRecordType `gorm:"size:10;not null"`

	// Relationships
	Goal Goal `gorm:"foreignKey:GoalID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
