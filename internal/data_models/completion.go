package dto

type TaskerCompleteRequest struct {
	Notes             string   `json:"notes"`
	Photos            []string `json:"photos"`
	Feedback          string   `json:"feedback"`
	RatingForCustomer *int     `json:"rating_for_customer"`
}

type CustomerCompleteRequest struct {
	Rating *int   `json:"rating"`
	Review string `json:"review"`
}
