package section

// Section types used by the storefront homepage.
var AllowedTypes = []string{"category", "brand", "sale", "combo", "featured", "custom"}

// Section is a curated block of products shown on the storefront
// (homepage carousels, brand rows, sale strips).
type Section struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	ProductIDs  []int  `json:"productIds"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func validType(t string) bool {
	for _, a := range AllowedTypes {
		if t == a {
			return true
		}
	}
	return false
}
