package model

// User is a tracked worker: identity plus the contact fields carried into
// the daily report.
type User struct {
	UserID                 string `gorm:"primaryKey;column:userId;type:varchar(36)" json:"userId"`
	Name                   string `gorm:"column:name;type:varchar(120);not null" json:"name" binding:"required"`
	PhoneNumber            string `gorm:"column:phoneNumber;type:varchar(30)" json:"phoneNumber"`
	Email                  string `gorm:"column:email;type:varchar(254)" json:"email"`
	PhysicalMailingAddress string `gorm:"column:physicalMailingAddress;type:varchar(254)" json:"physicalMailingAddress"`
}

func (User) TableName() string {
	return "Users"
}
