package domain

type IssueType struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
