package leavequota

type CreateQuotaRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	TotalQuota int    `json:"total_quota" binding:"min=0"`
}

type UpdateQuotaRequest struct {
	TotalQuota int `json:"total_quota" binding:"min=0"`
}

type GenerateQuotasRequest struct {
	Year       int      `json:"year" binding:"required,min=2000,max=2100"`
	UserIDs    []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
	TotalQuota *int     `json:"total_quota"`
}

type ListQuotasQuery struct {
	Year    int    `form:"year"`
	UserID  string `form:"user_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type QuotaResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Year       int    `json:"year"`
	TotalQuota int    `json:"total_quota"`
	UsedQuota  int    `json:"used_quota"`
	Remaining  int    `json:"remaining"`
}

type GenerateQuotasResponse struct {
	Year    int `json:"year"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
