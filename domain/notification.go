package domain

// Notification is an admin push notification shown to the station frontends.
type Notification struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Message   string `db:"message" json:"message"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
