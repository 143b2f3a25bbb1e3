package model

// Member maps a display name to an optional LINE user id so that roster
// names can be resolved to a notification address.  Rows are upserted
// opportunistically whenever a name appears in a roster; there is no
// registration flow and no invariant beyond name uniqueness.
//
// Fields:
//
//	ID         – primary key identifier.
//	Name       – unique display name.
//	LineUserID – LINE platform user id, nil until the member interacts
//	             with the bot.
type Member struct {
	ID         uint64  `json:"id"`             // members.id
	Name       string  `json:"name"`           // members.name (unique)
	LineUserID *string `json:"line_user_id"`   // members.line_user_id (nullable, unique)
}
