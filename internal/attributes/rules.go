// Package attributes maps free product text to structured attributes.
//
// Every table is built once at package init and never mutated; all exported
// functions are pure. Tables are ordered: the first matching rule wins, so
// specific patterns ("egyptian cotton") precede general ones ("cotton").
package attributes

import (
	"regexp"
	"strings"
)

// Rule maps one pattern to a canonical value.
type Rule struct {
	Pattern *regexp.Regexp
	Value   string
}

// table builds rules from (pattern, value) pairs. Patterns are matched as
// whole words against lower-cased text.
func table(pairs ...string) []Rule {
	if len(pairs)%2 != 0 {
		panic("attributes: odd number of rule arguments")
	}
	rules := make([]Rule, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rules = append(rules, Rule{
			Pattern: regexp.MustCompile(`\b(?:` + pairs[i] + `)\b`),
			Value:   pairs[i+1],
		})
	}
	return rules
}

// First returns the value of the first rule matching text.
func First(rules []Rule, text string) string {
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			return r.Value
		}
	}
	return ""
}

// Blob joins the given parts into the lower-cased text every extractor scans.
func Blob(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

var materialRules = table(
	`egyptian cotton|egyptian`, "Egyptian Cotton",
	`supima(?: cotton)?`, "Supima Cotton",
	`pima cotton`, "Pima Cotton",
	`organic cotton`, "Organic Cotton",
	`bamboo viscose|viscose from bamboo|bamboo rayon|rayon from bamboo`, "Bamboo Viscose",
	`bamboo`, "Bamboo",
	`cotton blend|poly[- ]?cotton|cotton[- ]polyester`, "Cotton Blend",
	`cotton`, "Cotton",
	`linen|flax`, "Linen",
	`silk`, "Silk",
	`tencel|lyocell`, "Tencel",
	`eucalyptus`, "Eucalyptus",
	`modal`, "Modal",
	`microfiber|micro[- ]fiber|microfibre`, "Microfiber",
	`polyester`, "Polyester",
	`rayon`, "Rayon",
	`flannel`, "Flannel",
	`jersey`, "Jersey",
)

var weaveRules = table(
	`sateen`, "Sateen",
	`satin`, "Sateen",
	`percale`, "Percale",
	`flannel`, "Flannel",
	`jersey|knit`, "Jersey",
	`basketweave|basket weave|basket-weave`, "Basketweave",
	`twill`, "Twill",
	`oxford`, "Oxford",
	`herringbone`, "Herringbone",
	`microfiber|micro[- ]fiber`, "Microfiber",
	`fleece`, "Fleece",
	`terry|towels?`, "Terry",
	`bamboo viscose|viscose from bamboo`, "Bamboo Viscose",
	`silk`, "Silk",
	`linen`, "Linen",
)

var colorRules = table(
	`royal blue`, "Royal Blue",
	`sky blue`, "Sky Blue",
	`light blue`, "Light Blue",
	`navy(?: blue)?`, "Navy",
	`forest green`, "Forest Green",
	`light gr[ae]y`, "Light Grey",
	`dark gr[ae]y`, "Dark Grey",
	`white`, "White",
	`black`, "Black",
	`charcoal`, "Charcoal",
	`gr[ae]y`, "Grey",
	`beige`, "Beige",
	`cream`, "Cream",
	`ivory`, "Ivory",
	`blue`, "Blue",
	`burgundy`, "Burgundy",
	`maroon`, "Maroon",
	`red`, "Red",
	`blush`, "Blush",
	`pink`, "Pink",
	`rose`, "Rose",
	`sage`, "Sage",
	`mint`, "Mint",
	`olive`, "Olive",
	`green`, "Green",
	`yellow`, "Yellow",
	`gold`, "Gold",
	`champagne`, "Champagne",
	`taupe`, "Taupe",
	`tan`, "Tan",
	`brown`, "Brown",
	`lavender`, "Lavender",
	`plum`, "Plum",
	`purple`, "Purple",
	`silver`, "Silver",
)

var sizeRules = table(
	`california king|cal(?:ifornia)?[- ]king`, "California King",
	`split king`, "Split King",
	`king`, "King",
	`queen`, "Queen",
	`full xl`, "Full XL",
	`full|double`, "Full",
	`twin xl|twin extra long`, "Twin XL",
	`twin`, "Twin",
)

var productTypeRules = table(
	`bath towels?|towel set|towels`, "Bath Towel Set",
	`sheets? sets?`, "Sheet Set",
	`duvet covers?|duvet`, "Duvet Cover",
	`comforters?`, "Comforter",
	`quilts?|coverlet`, "Quilt",
	`mattress (?:protector|pad|encasement)s?`, "Mattress Protector",
	`blankets?|throws?`, "Blanket",
	`pillow ?cases?|pillow shams?`, "Pillowcase",
	`pillows?`, "Bed Pillow",
	`sheets?`, "Bed Sheet",
)

var keyFeatureRules = table(
	`cooling|temperature regulating`, "Cooling",
	`organic`, "Organic",
	`hypoallergenic`, "Hypoallergenic",
	`deep pockets?`, "Deep Pocket",
	`wrinkle[- ](?:free|resistant)`, "Wrinkle Resistant",
	`moisture[- ]wicking`, "Moisture Wicking",
	`anti[- ]?microbial`, "Antimicrobial",
)

// Material returns the canonical material named in text, or "".
func Material(text string) string { return First(materialRules, strings.ToLower(text)) }

// Weave returns the canonical weave named in text, or "".
func Weave(text string) string { return First(weaveRules, strings.ToLower(text)) }

func Color(text string) string { return First(colorRules, strings.ToLower(text)) }

func Size(text string) string { return First(sizeRules, strings.ToLower(text)) }

// ProductType returns a display noun such as "Sheet Set", or "".
func ProductType(text string) string { return First(productTypeRules, strings.ToLower(text)) }

// KeyFeatures returns every notable feature in text, in table order.
func KeyFeatures(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, r := range keyFeatureRules {
		if r.Pattern.MatchString(lower) {
			out = append(out, r.Value)
		}
	}
	return out
}
