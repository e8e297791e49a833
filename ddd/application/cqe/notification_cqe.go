package cqe

import "math"

// maxOffset bounds the computed offset so it fits every driver's OFFSET type.
const maxOffset = math.MaxInt32

// ListNotificationsReq 列表查询请求。
type ListNotificationsReq struct {
	Page       int  `form:"page"`
	Limit      int  `form:"limit"`
	UnreadOnly bool `form:"unread_only"`
}

// Normalize 补全分页参数。页码被截断到偏移量不溢出的范围。
func (r *ListNotificationsReq) Normalize(def, max int) {
	r.Limit = NormalizeLimit(r.Limit, def, max)
	if r.Limit <= 0 {
		r.Limit = 1
	}
	if r.Page <= 0 {
		r.Page = 1
	}
	if lastPage := maxOffset/r.Limit + 1; r.Page > lastPage {
		r.Page = lastPage
	}
}

// Offset 计算分页偏移量。
func (r *ListNotificationsReq) Offset() int {
	return (r.Page - 1) * r.Limit
}
