package domain

// Asset is an image stored on the remote asset host.
type Asset struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url"       json:"url"`
}
