package domain

// Product is a catalog entry. Carts embed a copy of it, so the struct
// carries both bson tags (cart snapshot) and json tags (HTTP payloads).
type Product struct {
	ID       string  `bson:"_id" json:"_id"`
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Cost     float64 `bson:"cost" json:"cost"`
	Rating   int     `bson:"rating" json:"rating"`
	ImageURL string  `bson:"image_url" json:"image"`
}
