package logic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// MatchLayer ranks how a suggestion was found; lower is stronger
type MatchLayer int

const (
	LayerExplicitTag MatchLayer = iota + 1
	LayerBrandEcosystem
	LayerNamePattern
	LayerUniversalKeyword
)

func (l MatchLayer) String() string {
	switch l {
	case LayerExplicitTag:
		return "explicit-tag"
	case LayerBrandEcosystem:
		return "brand-ecosystem"
	case LayerNamePattern:
		return "name-pattern"
	case LayerUniversalKeyword:
		return "universal-keyword"
	default:
		return "unknown"
	}
}

// Suggestion is one candidate accessory for a camera body
type Suggestion struct {
	Item   models.EquipmentSpec `json:"item"`
	Layer  MatchLayer           `json:"layer"`
	Reason string               `json:"reason"`
}

const universalTag = "universal"

var (
	bodySubcategories = []string{"body", "camera body", "cinema camera", "camera"}

	cameraBrandTokens = []string{
		"arri", "alexa", "amira", "red", "komodo", "v-raptor", "raptor", "monstro",
		"sony", "venice", "burano", "fx6", "fx9", "fx3", "canon", "c300", "c500", "c70",
		"blackmagic", "ursa", "pocket", "panasonic", "varicam", "eva1", "z cam", "kinefinity",
	}

	// accessoryCategories are the categories ever offered as suggestions
	accessoryCategories = map[models.Category]bool{
		models.CategorySupport: true,
		models.CategoryMedia:   true,
		models.CategoryFilter:  true,
		models.CategoryGrip:    true,
		models.CategoryComms:   true,
		models.CategoryOther:   true,
	}

	ecosystemSubcategories = []string{"media", "battery", "accessory"}

	universalKeywords = []string{
		"baseplate", "base plate", "cage", "top handle", "matte box", "mattebox",
		"follow focus", "power cable", "battery plate", "v-mount", "b-mount",
		"gold mount", "rods", "rod clamp", "lens support", "monitor mount", "sdi cable",
		"evf bracket", "shoulder rig", "dovetail",
	}

	ndFilterToken = regexp.MustCompile(`^(ir)?nd\d*(\.\d+)?$`)
	tokenSplit    = regexp.MustCompile(`[^a-z0-9.]+`)
)

// namePatterns are hard-coded host/candidate name pairs
var namePatterns = []struct {
	host      string
	candidate string
	reason    string
}{
	{host: "venice", candidate: "rialto", reason: "Rialto extension system for Venice"},
	{host: "alexa 35", candidate: "codex compact drive", reason: "Codex Compact Drive recording media"},
	{host: "alexa mini", candidate: "codex compact drive", reason: "Codex Compact Drive recording media"},
	{host: "komodo", candidate: "cfast", reason: "CFast 2.0 recording media"},
	{host: "v-raptor", candidate: "red pro cfexpress", reason: "RED PRO CFexpress media"},
	{host: "fx6", candidate: "cfexpress type a", reason: "CFexpress Type A media"},
	{host: "burano", candidate: "cfexpress type b", reason: "CFexpress Type B media"},
}

// IsCameraBody reports whether spec can act as an ecosystem host: a CAMERA
// whose subcategory marks it as a body or whose name carries a camera token
func IsCameraBody(spec *models.EquipmentSpec) bool {
	if spec == nil || spec.Category != models.CategoryCamera {
		return false
	}
	sub := lower(spec.Subcategory)
	for _, s := range bodySubcategories {
		if sub == s {
			return true
		}
	}
	name := lower(spec.DisplayName() + " " + spec.BrandModel())
	for _, token := range cameraBrandTokens {
		if hasWord(name, token) {
			return true
		}
	}
	return false
}

// hasWord matches token on word boundaries so that "red" does not hit "infrared"
func hasWord(haystack, token string) bool {
	for idx := 0; ; {
		i := strings.Index(haystack[idx:], token)
		if i < 0 {
			return false
		}
		start, end := idx+i, idx+i+len(token)
		if (start == 0 || !isAlnum(haystack[start-1])) && (end == len(haystack) || !isAlnum(haystack[end])) {
			return true
		}
		idx = start + 1
	}
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// isEssentialFilter accepts ND and polariser filters only
func isEssentialFilter(spec *models.EquipmentSpec) bool {
	text := lower(spec.DisplayName() + " " + spec.Subcategory)
	if strings.Contains(text, "neutral density") || strings.Contains(text, "polari") ||
		strings.Contains(text, "pola") || hasWord(text, "cpl") {
		return true
	}
	for _, token := range tokenSplit.Split(text, -1) {
		if ndFilterToken.MatchString(token) {
			return true
		}
	}
	return false
}

// SuggestAccessories ranks catalog items as accessories for host. Items are
// ordered by the strongest layer that matched, then by catalog order.
func SuggestAccessories(host *models.EquipmentSpec, catalog []models.EquipmentSpec) []Suggestion {
	if !IsCameraBody(host) {
		return nil
	}
	hostText := lower(host.BrandModel() + " " + host.DisplayName())
	hostBrand := lower(host.Brand)

	var suggestions []Suggestion
	for i := range catalog {
		candidate := &catalog[i]
		if candidate.ID == host.ID || !accessoryCategories[candidate.Category] {
			continue
		}
		if candidate.Category == models.CategoryFilter && !isEssentialFilter(candidate) {
			continue
		}
		if layer, reason, ok := matchLayer(hostText, hostBrand, candidate); ok {
			suggestions = append(suggestions, Suggestion{Item: *candidate, Layer: layer, Reason: reason})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Layer < suggestions[j].Layer
	})
	return suggestions
}

func matchLayer(hostText, hostBrand string, candidate *models.EquipmentSpec) (MatchLayer, string, bool) {
	for _, tag := range candidate.CompatibilityTags {
		t := lower(tag)
		if t == "" {
			continue
		}
		if t == universalTag {
			return LayerExplicitTag, "tagged universal", true
		}
		if strings.Contains(hostText, t) {
			return LayerExplicitTag, fmt.Sprintf("tagged for %s", strings.TrimSpace(tag)), true
		}
	}

	if hostBrand != "" && lower(candidate.Brand) == hostBrand {
		sub := lower(candidate.Subcategory)
		for _, s := range ecosystemSubcategories {
			if sub == s {
				return LayerBrandEcosystem, fmt.Sprintf("%s %s", strings.TrimSpace(candidate.Brand), s), true
			}
		}
	}

	name := lower(candidate.DisplayName() + " " + candidate.BrandModel())
	for _, p := range namePatterns {
		if strings.Contains(hostText, p.host) && strings.Contains(name, p.candidate) {
			return LayerNamePattern, p.reason, true
		}
	}

	for _, keyword := range universalKeywords {
		if strings.Contains(name, keyword) {
			return LayerUniversalKeyword, "universal essential: " + keyword, true
		}
	}

	if candidate.Category == models.CategoryFilter {
		return LayerUniversalKeyword, "universal essential: ND/polariser filter", true
	}
	return 0, "", false
}
