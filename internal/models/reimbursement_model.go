package models

// Reimbursement is a flagged expense record sourced from the suspicions
// dataset. It is input only and never written back.
type Reimbursement struct {
	DocumentID         int64  `csv:"document_id" json:"document_id"`
	ApplicantID        int64  `csv:"applicant_id" json:"applicant_id"`
	Year               int    `csv:"year" json:"year"`
	State              string `csv:"state" json:"state"`
	CongresspersonName string `csv:"congressperson_name" json:"congressperson_name"`
	TwitterProfile     string `csv:"twitter_profile" json:"twitter_profile"`
}
