package models

// Doctor rows are owned by the doctor-directory service; this service only
// reads them for existence checks and display names.
type Doctor struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}
