package models

import "time"

type AttendeeModel struct {
	ID                  uint   `gorm:"primaryKey"`
	PaymentToken        string `gorm:"size:64;not null;uniqueIndex"`
	TransactionID       string `gorm:"size:64;index"`
	RefundTransactionID string `gorm:"size:64"`
	AccessToken         string `gorm:"size:64;not null;uniqueIndex"`
	Email               string `gorm:"size:255"`
	FirstName           string `gorm:"size:255"`
	LastName            string `gorm:"size:255"`
	PaymentState        string `gorm:"size:32;not null;default:'pending';index"`
	PaymentMessage      string `gorm:"size:1024"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (AttendeeModel) TableName() string {
	return "attendees"
}
