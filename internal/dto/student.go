package dto

// StudentProfileRequest selects the student to show.
type StudentProfileRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
}

// UpdateCulturalGroupRequest assigns a cultural group. An empty group unassigns the student; a missing one is
// rejected.
type UpdateCulturalGroupRequest struct {
	StudentID     int64   `json:"student_id" validate:"required,gt=0"`
	CulturalGroup *string `json:"cultural_group" validate:"required"`
}

// StudentProfileView is a student with their latest application.
type StudentProfileView struct {
	ID                   int64  `json:"id"`
	SRCode               string `json:"sr_code"`
	FirstName            string `json:"first_name"`
	MiddleName           string `json:"middle_name"`
	LastName             string `json:"last_name"`
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Campus               string `json:"campus"`
	College              string `json:"college"`
	Program              string `json:"program"`
	YearLevel            string `json:"year_level"`
	CulturalGroup        string `json:"cultural_group"`
	Status               string `json:"status"`
	PerformanceType      string `json:"performance_type"`
	DesiredCulturalGroup string `json:"desired_cultural_group"`
	ApplicationDate      string `json:"application_date"`
	MemberSince          string `json:"member_since"`
}

// StudentProfileResponse wraps the profile.
type StudentProfileResponse struct {
	Success bool               `json:"success"`
	Student StudentProfileView `json:"student"`
}
