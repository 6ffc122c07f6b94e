package dto

// CampusShare is one campus row of the campus distribution.
type CampusShare struct {
	Campus     string  `json:"campus"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CampusDistributionResponse is the campus distribution payload.
type CampusDistributionResponse struct {
	Success            bool          `json:"success"`
	CampusDistribution []CampusShare `json:"campusDistribution"`
	TotalStudents      int           `json:"totalStudents"`
	SearchApplied      bool          `json:"searchApplied"`
}

// CollegeShare is one college row of the college distribution.
type CollegeShare struct {
	College    string  `json:"college"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CollegeDistributionResponse is the college distribution payload. Campus echoes the filter, "all" when absent.
type CollegeDistributionResponse struct {
	Success             bool           `json:"success"`
	CollegeDistribution []CollegeShare `json:"collegeDistribution"`
	TotalStudents       int            `json:"totalStudents"`
	SearchApplied       bool           `json:"searchApplied"`
	Campus              string         `json:"campus"`
}

// GroupShare is one cultural group row.
type GroupShare struct {
	GroupName string `json:"group_name"`
	Count     int    `json:"count"`
}

// GroupDistributionResponse is the cultural group distribution payload.
type GroupDistributionResponse struct {
	Success           bool         `json:"success"`
	GroupDistribution []GroupShare `json:"groupDistribution"`
	TotalStudents     int          `json:"totalStudents"`
}
