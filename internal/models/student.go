package models

import "time"

// StudentStatus is the membership state of a student artist.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusSuspended StudentStatus = "suspended"
	StudentStatusInactive  StudentStatus = "inactive"
)

// StudentArtist is a registered performer.
type StudentArtist struct {
	ID            int64         `db:"id"`
	SRCode        string        `db:"sr_code"`
	FirstName     string        `db:"first_name"`
	MiddleName    *string       `db:"middle_name"`
	LastName      string        `db:"last_name"`
	Email         string        `db:"email"`
	Campus        *string       `db:"campus"`
	College       *string       `db:"college"`
	CulturalGroup *string       `db:"cultural_group"`
	Status        StudentStatus `db:"status"`
	CreatedAt     time.Time     `db:"created_at"`
}

// StudentProfile joins a student with their most recent application.
type StudentProfile struct {
	StudentArtist
	Program         *string    `db:"program"`
	YearLevel       *string    `db:"year_level"`
	PerformanceType *string    `db:"performance_type"`
	ApplicationDate *time.Time `db:"application_date"`
}
