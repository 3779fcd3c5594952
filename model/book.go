// model/book.go
package model

type Book struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Copies int64  `json:"copies"`
}
