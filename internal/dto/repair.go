package dto

// RepairItemView is a repair item with display-ready fields.
type RepairItemView struct {
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	RepairStatus string `json:"repair_status"`
	DateReported string `json:"date_reported"`
	ReportedBy   string `json:"reported_by"`
	Notes        string `json:"notes"`
}

// RepairPagination is the pagination block of the repair listing.
type RepairPagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
}

// RepairListResponse is the repair listing payload.
type RepairListResponse struct {
	Success    bool             `json:"success"`
	Items      []RepairItemView `json:"items"`
	Pagination RepairPagination `json:"pagination"`
}
