package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Team{},
		&User{},
		&Board{},
		&UpdateHistory{},
		&Announcement{},
		&Practice{},
		&Session{},
		&Attendance{},
		&Transport{},
	)
}
