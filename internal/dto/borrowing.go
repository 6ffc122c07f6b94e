package dto

// BorrowingRequestView is a borrowing request with display-ready fields.
type BorrowingRequestView struct {
	ID           int64  `json:"id"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	ItemName     string `json:"item_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// BorrowingPagination is the pagination block of the borrowing listing.
type BorrowingPagination struct {
	CurrentPage   int `json:"current_page"`
	TotalPages    int `json:"total_pages"`
	TotalRequests int `json:"total_requests"`
	Limit         int `json:"limit"`
}

// BorrowingListResponse is the borrowing listing payload.
type BorrowingListResponse struct {
	Success    bool                   `json:"success"`
	Data       []BorrowingRequestView `json:"data"`
	Pagination BorrowingPagination    `json:"pagination"`
}
