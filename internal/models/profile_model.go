package models

// Profile is one row of the social accounts reference dataset.
type Profile struct {
	CongresspersonName      string `csv:"congressperson_name"`
	State                   string `csv:"state"`
	TwitterProfile          string `csv:"twitter_profile"`
	SecondaryTwitterProfile string `csv:"secondary_twitter_profile"`
}
