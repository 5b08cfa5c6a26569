package repository

// Colecciones del almacenamiento.
const (
	CollectionUsers             = "users"
	CollectionRoles             = "roles"
	CollectionUserRoles         = "user_roles"
	CollectionProducts          = "products"
	CollectionCategories        = "categories"
	CollectionCurrencies        = "currencies"
	CollectionRFQs              = "rfqs"
	CollectionNotifications     = "notifications"
	CollectionResetTokens       = "password_reset_tokens"
	CollectionContactSubmission = "contact_form_submissions"
)

// ListFilter filtros de igualdad, IN, orden y paginación para listados.
// Los adaptadores validan los nombres de columna contra una lista permitida por colección.
type ListFilter struct {
	Eq      map[string]interface{}
	In      map[string][]interface{}
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// NewFilter crea un filtro vacío ordenado por created_at descendente.
func NewFilter() *ListFilter {
	return &ListFilter{
		Eq:      map[string]interface{}{},
		In:      map[string][]interface{}{},
		OrderBy: "created_at",
		Desc:    true,
	}
}

// Where agrega una condición de igualdad.
func (f *ListFilter) Where(column string, value interface{}) *ListFilter {
	f.Eq[column] = value
	return f
}

// WhereIn agrega una condición IN. Una lista vacía no agrega condición.
func (f *ListFilter) WhereIn(column string, values ...interface{}) *ListFilter {
	if len(values) > 0 {
		f.In[column] = values
	}
	return f
}

// Order fija columna y sentido de ordenamiento.
func (f *ListFilter) Order(column string, desc bool) *ListFilter {
	f.OrderBy = column
	f.Desc = desc
	return f
}

// Page fija límite y desplazamiento. limit <= 0 significa sin límite.
func (f *ListFilter) Page(limit, offset int) *ListFilter {
	f.Limit = limit
	if offset < 0 {
		offset = 0
	}
	f.Offset = offset
	return f
}
