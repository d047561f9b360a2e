package invoice

import (
	"strings"

	"github.com/shinmonzen/purchasing-tracker/constants"
)

// Vendor identifies which line-item grammar applies to a document.
type Vendor string

const (
	VendorHirayama  Vendor = "hirayama"
	VendorFrenchFnB Vendor = "french_fnb"
	VendorUnknown   Vendor = ""
)

// Classify picks a vendor from the filename and the recovered text.
// Priority-ordered keyword match, first hit wins:
//
//  1. filename keywords for Hirayama
//  2. filename keywords for French F&B
//  3. Hirayama marker substrings in the text
//  4. French F&B marker substrings in the text
//  5. content sniffing on product names
//
// Latin keywords match case-insensitively; Japanese script is matched as-is.
func Classify(filename, text string) Vendor {
	name := strings.ToLower(filename)

	for _, kw := range constants.HirayamaFilenameKeywords {
		if strings.Contains(name, kw) {
			return VendorHirayama
		}
	}
	for _, kw := range constants.FrenchFnBFilenameKeywords {
		if strings.Contains(name, kw) {
			return VendorFrenchFnB
		}
	}

	if containsAny(text, constants.HirayamaTextMarkers) {
		return VendorHirayama
	}
	if containsAny(text, constants.FrenchFnBTextMarkers) {
		return VendorFrenchFnB
	}

	if containsAny(text, constants.HirayamaProductMarkers) {
		return VendorHirayama
	}
	if containsAny(text, constants.FrenchFnBProductMarkers) {
		return VendorFrenchFnB
	}

	return VendorUnknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
