package logic

import (
	"fmt"
	"strings"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// Pair is one host/peripheral combination under evaluation
type Pair struct {
	ItemID     string
	Primary    *models.EquipmentSpec
	Peripheral *models.EquipmentSpec
	Options    Options

	blob    models.SpecsBlob
	blobErr error
}

// HardwareRule is a predicate plus the warning it produces
type HardwareRule struct {
	Name    string
	Applies func(p *Pair) bool
	Build   func(p *Pair) models.CompatibilityWarning
}

// hardwareRules are the generic checks, run in order after the overrides.
// Each rule is independent; several may fire for one pair.
var hardwareRules = []HardwareRule{
	{Name: "media-slot", Applies: mediaSlotMismatch, Build: buildMediaSlot},
	{Name: "media-codec", Applies: codecsDisjoint, Build: buildCodec},
	{Name: "power-voltage", Applies: voltageTooLow, Build: buildVoltage},
	{Name: "power-connector", Applies: connectorMismatch, Build: buildConnector},
	{Name: "host-restriction", Applies: hostRestricted, Build: buildHostRestriction},
	{Name: "lens-weight", Applies: lensTooHeavy, Build: buildLensWeight},
}

// EvaluateHardware checks a peripheral against its host camera
func EvaluateHardware(itemID string, primary, peripheral *models.EquipmentSpec, opts Options) []models.CompatibilityWarning {
	if primary == nil || peripheral == nil {
		return nil
	}
	p := &Pair{ItemID: itemID, Primary: primary, Peripheral: peripheral, Options: opts}
	p.blob, p.blobErr = peripheral.ParseSpecs()

	warnings := applyOverrides(opts.Overrides, itemID, primary, peripheral)
	for _, rule := range hardwareRules {
		if rule.Applies(p) {
			warnings = append(warnings, rule.Build(p))
		}
	}
	return warnings
}

func mediaSlotMismatch(p *Pair) bool {
	media, camera := p.Peripheral.MediaProfile, p.Primary.MediaProfile
	if media == nil || camera == nil || strings.TrimSpace(media.MediaType) == "" || len(camera.Slots) == 0 {
		return false
	}
	for _, slot := range camera.Slots {
		if strings.EqualFold(strings.TrimSpace(slot), strings.TrimSpace(media.MediaType)) {
			return false
		}
	}
	return true
}

func buildMediaSlot(p *Pair) models.CompatibilityWarning {
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypeMedia,
		Severity: models.SeverityError,
		Message: fmt.Sprintf("%s has no %s slot (accepts %s)",
			p.Primary.DisplayName(), strings.TrimSpace(p.Peripheral.MediaProfile.MediaType), strings.Join(p.Primary.MediaProfile.Slots, ", ")),
		Solution: fmt.Sprintf("Replace with %s media", strings.Join(p.Primary.MediaProfile.Slots, " or ")),
	}
}

func codecsDisjoint(p *Pair) bool {
	media := p.Peripheral.MediaProfile
	if media == nil || len(media.CertifiedCodecs) == 0 || len(p.Primary.CompatibleCodecs) == 0 {
		return false
	}
	certified := make(map[string]struct{}, len(media.CertifiedCodecs))
	for _, c := range media.CertifiedCodecs {
		certified[normalize(c)] = struct{}{}
	}
	for _, c := range p.Primary.CompatibleCodecs {
		if _, ok := certified[normalize(c)]; ok {
			return false
		}
	}
	return true
}

func buildCodec(p *Pair) models.CompatibilityWarning {
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypeMedia,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("%s is not officially certified for any codec %s records (%s)",
			p.Peripheral.DisplayName(), p.Primary.DisplayName(), strings.Join(p.Primary.CompatibleCodecs, ", ")),
		Solution: "Run a test recording or choose media from the manufacturer's approved list",
	}
}

func voltageTooLow(p *Pair) bool {
	battery, power := p.Peripheral.BatteryProfile, p.Primary.Power
	if battery == nil || power == nil || battery.Voltage <= 0 || power.MinVoltage <= 0 {
		return false
	}
	return battery.Voltage < power.MinVoltage
}

func buildVoltage(p *Pair) models.CompatibilityWarning {
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypePower,
		Severity: models.SeverityError,
		Message: fmt.Sprintf("%s supplies %.1fV but %s needs at least %.1fV",
			p.Peripheral.DisplayName(), p.Peripheral.BatteryProfile.Voltage, p.Primary.DisplayName(), p.Primary.Power.MinVoltage),
		Solution: "Use a higher-voltage battery (e.g. 24V B-Mount) or a step-up power plate",
	}
}

func connectorMismatch(p *Pair) bool {
	battery, power := p.Peripheral.BatteryProfile, p.Primary.Power
	if battery == nil || power == nil {
		return false
	}
	batteryMount, cameraMount := normalize(battery.MountType), normalize(power.MountType)
	return batteryMount != "" && cameraMount != "" && batteryMount != cameraMount
}

func buildConnector(p *Pair) models.CompatibilityWarning {
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypePower,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("%s uses a %s mount but %s takes %s",
			p.Peripheral.DisplayName(), strings.TrimSpace(p.Peripheral.BatteryProfile.MountType),
			p.Primary.DisplayName(), strings.TrimSpace(p.Primary.Power.MountType)),
		Solution: fmt.Sprintf("Add a %s-to-%s battery plate adapter",
			strings.TrimSpace(p.Peripheral.BatteryProfile.MountType), strings.TrimSpace(p.Primary.Power.MountType)),
	}
}

// requiredHost reads compatibleWith, falling back to the specs blob
func (p *Pair) requiredHost() string {
	if host := strings.TrimSpace(p.Peripheral.CompatibleWith); host != "" {
		return host
	}
	if p.blobErr != nil {
		return ""
	}
	return strings.TrimSpace(p.blob.CompatibleWith)
}

func hostRestricted(p *Pair) bool {
	required := slug(p.requiredHost())
	if required == "" {
		return false
	}
	return required != slug(p.Primary.BrandModel())
}

func buildHostRestriction(p *Pair) models.CompatibilityWarning {
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypeGeneral,
		Severity: models.SeverityError,
		Message: fmt.Sprintf("%s only works with %s, not %s",
			p.Peripheral.DisplayName(), p.requiredHost(), p.Primary.DisplayName()),
		Solution: "Move the item to a unit with the matching camera body",
	}
}

func (p *Pair) weight() (float64, bool) {
	if p.Peripheral.WeightKg != nil {
		return *p.Peripheral.WeightKg, true
	}
	if p.blobErr != nil || p.blob.WeightKg == nil {
		return 0, false
	}
	return *p.blob.WeightKg, true
}

func lensTooHeavy(p *Pair) bool {
	if p.Peripheral.Category != models.CategoryLens {
		return false
	}
	kg, ok := p.weight()
	return ok && kg > p.Options.HeavyLensThresholdKg
}

func buildLensWeight(p *Pair) models.CompatibilityWarning {
	kg, _ := p.weight()
	return models.CompatibilityWarning{
		ItemID:   p.ItemID,
		Type:     models.WarningTypeWeight,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("%s weighs %.2f kg, above the %.1f kg mount load advisory",
			p.Peripheral.DisplayName(), kg, p.Options.HeavyLensThresholdKg),
		Solution: "Add a rod-based lens support bracket",
	}
}
