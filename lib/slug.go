package lib

import (
	"fmt"

	"github.com/gosimple/slug"
)

// MakeProductSlug builds the URL slug for a product from its display name
// and product code, e.g. "Banarasi Silk Saree" + "SAR-7KQ2" becomes
// "banarasi-silk-saree-sar-7kq2". The code suffix keeps slugs unique across
// products sharing a name.
func MakeProductSlug(name, productCode string) string {
	return slug.Make(fmt.Sprintf("%s %s", name, productCode))
}
