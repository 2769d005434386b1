package entity

// Participant is one endpoint of a matched or matching connection.
// The broker mints the ID when the transport connection is established;
// it is valid for the lifetime of that connection only.
type Participant struct {
	ID string `json:"id"`
}
