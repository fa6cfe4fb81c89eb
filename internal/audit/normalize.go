package audit

import (
	"fmt"
	"strings"
)

// defaultOwnerTagKeys are the tag-key aliases tried in order when resolving
// owner attribution. Comparison is case-insensitive; first hit wins.
var defaultOwnerTagKeys = []string{
	"owner",
	"owner-email",
	"owneremail",
	"contact",
	"team",
	"managed-by",
	"managedby",
}

// ResourceGroupFromID extracts the resource-group name from an ARM resource
// ID. Returns "" when the ID has no resourceGroups segment.
func ResourceGroupFromID(id string) string {
	segments := strings.Split(strings.Trim(id, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if strings.EqualFold(segments[i], "resourceGroups") {
			return segments[i+1]
		}
	}
	return ""
}

// lastSegment reduces a plan reference to its trailing path segment, the
// plan's short name.
func lastSegment(ref string) string {
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func parseState(s string) AppState {
	switch strings.ToLower(s) {
	case "running":
		return StateRunning
	case "stopped":
		return StateStopped
	default:
		return StateUnknown
	}
}

func parseFtps(s string) FtpsPolicy {
	switch strings.ToLower(s) {
	case "disabled":
		return FtpsDisabled
	case "ftpsonly":
		return FtpsOnly
	case "allallowed":
		return FtpsAllAllowed
	default:
		return FtpsUnknown
	}
}

func parseIdentity(s string) IdentityKind {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "systemassigned":
		return IdentitySystemAssigned
	case "userassigned":
		return IdentityUserAssigned
	case "systemassigned,userassigned":
		return IdentityBoth
	default:
		return IdentityNone
	}
}

func parseTier(s string) PlanTier {
	switch strings.ToLower(s) {
	case "free":
		return TierFree
	case "shared":
		return TierShared
	case "basic":
		return TierBasic
	case "standard":
		return TierStandard
	case "premium":
		return TierPremium
	case "premiumv2":
		return TierPremiumV2
	case "premiumv3", "premium0v3", "premiummv3":
		return TierPremiumV3
	case "elasticpremium", "dynamic":
		return TierElasticPremium
	case "isolated":
		return TierIsolated
	case "isolatedv2":
		return TierIsolatedV2
	default:
		return TierOther
	}
}

// osFromKind derives the operating system from a site's kind label. Azure
// marks Linux sites with a "linux" kind component; everything else runs on
// Windows workers.
func osFromKind(kind string) string {
	for _, part := range strings.Split(strings.ToLower(kind), ",") {
		if part == "linux" {
			return "Linux"
		}
	}
	return "Windows"
}

func isFunctionKind(kind string) bool {
	for _, part := range strings.Split(strings.ToLower(kind), ",") {
		if part == "functionapp" {
			return true
		}
	}
	return false
}

// resolveOwner walks the candidate tag keys in order and returns the first
// matching tag value, comparing keys case-insensitively.
func resolveOwner(tags map[string]string, keys []string) string {
	if len(tags) == 0 {
		return ""
	}
	if len(keys) == 0 {
		keys = defaultOwnerTagKeys
	}
	for _, key := range keys {
		for tagKey, value := range tags {
			if strings.EqualFold(tagKey, key) && value != "" {
				return value
			}
		}
	}
	return ""
}

// normalizeSite converts a raw site record into a ComputeApplication.
// A record without an ID or name is malformed and rejected.
func normalizeSite(sub Subscription, raw RawSite, ownerKeys []string, isFunction bool) (ComputeApplication, error) {
	if raw.ID == "" || raw.Name == "" {
		return ComputeApplication{}, fmt.Errorf("malformed site record (id=%q name=%q)", raw.ID, raw.Name)
	}

	kind := raw.Kind
	if kind == "" {
		kind = "app"
	}

	return ComputeApplication{
		ID:            raw.ID,
		Name:          raw.Name,
		ResourceGroup: ResourceGroupFromID(raw.ID),
		Subscription:  sub.Name,
		Kind:          kind,
		OS:            osFromKind(raw.Kind),
		Region:        raw.Location,
		State:         parseState(raw.State),
		PlanRef:       raw.PlanRef,
		HTTPSOnly:     raw.HTTPSOnly,
		MinTLSVersion: raw.MinTLSVersion,
		FTPS:          parseFtps(raw.FtpsState),
		Identity:      parseIdentity(raw.IdentityType),
		Owner:         resolveOwner(raw.Tags, ownerKeys),
		Tags:          raw.Tags,
		IsFunctionApp: isFunction || isFunctionKind(raw.Kind),
	}, nil
}

// normalizePlan converts a raw plan record into a HostingPlan. A record
// without an ID or name is malformed and rejected. A missing SKU block is
// tolerated here and reported by the empty-plan detector.
func normalizePlan(sub Subscription, raw RawPlan) (HostingPlan, error) {
	if raw.ID == "" || raw.Name == "" {
		return HostingPlan{}, fmt.Errorf("malformed plan record (id=%q name=%q)", raw.ID, raw.Name)
	}

	var sku SKU
	if raw.SKU != nil {
		sku = SKU{
			Tier:     parseTier(raw.SKU.Tier),
			Size:     raw.SKU.Size,
			Family:   raw.SKU.Family,
			Capacity: raw.SKU.Capacity,
		}
	}

	return HostingPlan{
		ID:            raw.ID,
		Name:          raw.Name,
		ResourceGroup: ResourceGroupFromID(raw.ID),
		Subscription:  sub.Name,
		Region:        raw.Location,
		SKU:           sku,
	}, nil
}
