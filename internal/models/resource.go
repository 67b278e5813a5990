package models

type Resource struct {
	ID          int       `json:"id" yaml:"id"`
	Type        string    `json:"type" yaml:"type"`
	Available   int       `json:"available" yaml:"available"`
	Allocated   int       `json:"allocated" yaml:"allocated"`
	Location    string    `json:"location" yaml:"location"`
	LastUpdated Timestamp `json:"last_updated" yaml:"last_updated"`
}
