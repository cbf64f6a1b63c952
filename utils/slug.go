package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Mihinr/Gowin-Sports/models"
	"gorm.io/gorm"
)

// maxSlugProbes bounds the uniqueness loop so a catalog full of
// "product-1", "product-2", ... cannot spin forever.
const maxSlugProbes = 1000

var ErrSlugConflicts = errors.New("too many slug conflicts")

// GenerateSlug derives a URL-friendly slug from a product name.
// Example: "Yonex Voltric Lite 20I" -> "yonex-voltric-lite-20i"
func GenerateSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteRune(r)
		}
	}
	// Collapse whitespace/hyphen runs into single hyphens and trim the ends.
	parts := strings.FieldsFunc(b.String(), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	return strings.Join(parts, "-")
}

// EnsureUniqueSlug probes the products table and appends "-1", "-2", ...
// until the slug is free. excludeID skips the product's own row on
// in-place updates; pass 0 when creating.
func EnsureUniqueSlug(db *gorm.DB, slug string, excludeID uint) (string, error) {
	base := slug
	for i := 1; i <= maxSlugProbes; i++ {
		q := db.Model(&models.Product{}).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugConflicts
}

// EnsureUniqueSlugTx is the transaction-scoped variant used by restore,
// so rows inserted earlier in the same transaction are visible to the probe.
func EnsureUniqueSlugTx(tx *gorm.DB, slug string) (string, error) {
	return EnsureUniqueSlug(tx, slug, 0)
}
