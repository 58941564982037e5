package store

// Workspace is the active user session state shared by the engines: which
// vertical scope the salesperson works in, and what they last asked about.
type Workspace struct {
	ID     string `json:"id"` // session id
	UserID string `json:"user_id"`

	Vertical    string `json:"vertical"`
	SubVertical string `json:"sub_vertical"`
	Region      string `json:"region"`

	// Metadata for last interaction
	LastQuery      string `json:"last_query"`
	LastEntityID   string `json:"last_entity_id"`
	LastEntityName string `json:"last_entity_name"`
}
