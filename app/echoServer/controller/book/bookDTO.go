package book

type CreateBookReq struct {
	Name   string `json:"name" validate:"required"`
	Author string `json:"author" validate:"required"`
	Copies int64  `json:"copies" validate:"gte=0"`
}

type UpdateBookReq struct {
	Name   *string `json:"name,omitempty"`
	Author *string `json:"author,omitempty"`
	Copies *int64  `json:"copies,omitempty"`
}
