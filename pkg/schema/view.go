package schema

const ProductViewSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "product_view",
	"fields": [
		{"name": "session_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "viewed_at", "type": "long"}
	]
}`

// ProductViewV1 is the wire form of a product-view analytics event.
// ViewedAt is unix milliseconds.
type ProductViewV1 struct {
	SessionID string  `avro:"session_id"`
	ProductID string  `avro:"product_id"`
	Name      string  `avro:"name"`
	Category  string  `avro:"category"`
	Price     float64 `avro:"price"`
	ViewedAt  int64   `avro:"viewed_at"`
}
