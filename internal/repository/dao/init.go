package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Event{},
		&EventRule{},
		&EventPicture{},
		&IssueType{},
		&AddressedIssue{},
		&EventParticipant{},
		&UserRating{},
		&EventFeedback{},
	); err != nil {
		return err
	}

	return seedIssueTypes(db)
}

// seedIssueTypes inserts the reference issue types once.
func seedIssueTypes(db *gorm.DB) error {
	names := []string{
		"Environment",
		"Education",
		"Health",
		"Poverty",
		"Animal Welfare",
		"Community Development",
	}

	for _, name := range names {
		if err := db.Where(IssueType{Name: name}).
			FirstOrCreate(&IssueType{}, IssueType{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}
