package transport

import "time"

type SubmitRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,dive,required,max=250"`
	Region  string   `json:"region" validate:"omitempty,phone_region"`
	Format  string   `json:"format" validate:"omitempty,phone_format"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResultResponse struct {
	Input     string     `json:"input"`
	Valid     bool       `json:"valid"`
	Formatted string     `json:"formatted,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
}

type BatchResponse struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	Region      string           `json:"region,omitempty"`
	Format      string           `json:"format,omitempty"`
	Count       int              `json:"count"`
	Valid       int              `json:"valid"`
	Invalid     int              `json:"invalid"`
	Failed      int              `json:"failed"`
	Error       string           `json:"error,omitempty"`
	SubmittedBy *string          `json:"submittedBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	Results     []ResultResponse `json:"results,omitempty"`
}

type ListRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Batches []BatchResponse `json:"batches"`
}
