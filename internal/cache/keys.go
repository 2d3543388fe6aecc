package cache

// Claves de cache por colección. Cada lista vive bajo su propia clave;
// una mutación exitosa invalida SOLO la colección afectada (nunca se
// comparten claves entre vistas no relacionadas).
const (
	KeyCategories    = "list:categories"
	KeySubcategories = "list:subcategories" // + ":" + categoryID
	KeyIngredients   = "list:ingredients"
	KeyProducts      = "list:products"      // + ":" + subcategoryID
	KeyStaff         = "list:staff"
	KeySections      = "list:sections"
	KeyTables        = "list:tables"        // + ":" + sectionID
)

// ScopedKey arma una clave de lista dependiente (ej: productos por subcategoría).
func ScopedKey(base, scope string) string {
	if scope == "" {
		return base
	}
	return base + ":" + scope
}
