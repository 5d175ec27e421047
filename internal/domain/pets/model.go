package pets

// Defaults aplicados al crear una mascota cuando el campo no viene en el body.
const (
	DefaultName  = "Unknown"
	DefaultType  = "unknown"
	DefaultBreed = "Mixed"
	DefaultAge   = 1
	DefaultPrice = 100
)

// MaxResults es el tope de mascotas devueltas por una query.
const MaxResults = 10

// Pet es la unidad del catálogo. Los tags dynamodbav los usa el adapter de DynamoDB.
type Pet struct {
	ID    int    `json:"id" dynamodbav:"id"`
	Name  string `json:"name" dynamodbav:"name"`
	Type  string `json:"type" dynamodbav:"type"`
	Breed string `json:"breed" dynamodbav:"breed"`
	Age   int    `json:"age" dynamodbav:"age"`
	Price int    `json:"price" dynamodbav:"price"`
}

// SortKey define el orden pedido por el LLM.
// @Enum price_asc, price_desc, age_asc, age_desc, name
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortAgeAsc    SortKey = "age_asc"
	SortAgeDesc   SortKey = "age_desc"
	SortName      SortKey = "name"
)

// SortKeys en el orden en que se declaran en la tool.
var SortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortAgeAsc, SortAgeDesc, SortName}

// Criteria son los filtros de una query. Vive solo durante la llamada.
// Valores cero = no aplica (TypeFilter "", MaxPrice/MinPrice 0).
type Criteria struct {
	TypeFilter string
	SortBy     SortKey
	MaxPrice   int
	MinPrice   int
}

// QueryResult es el payload de POST /pets/query.
type QueryResult struct {
	Pets           []Pet          `json:"pets"`
	Count          int            `json:"count"`
	FiltersApplied map[string]any `json:"filters_applied"`
}
