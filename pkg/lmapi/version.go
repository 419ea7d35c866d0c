package lmapi

import "regexp"

// DefaultVersion is the protocol version used when no rule matches and the
// caller supplies none. This deployment targets the era where unversioned
// endpoints still answer in the v1 envelope, so the default is 1; the
// subtrees below only exist at version 2 and are routed there explicitly.
const DefaultVersion = 1

// versionRule maps a path pattern to the protocol version its subtree
// requires. Rules are evaluated in order; first match wins.
type versionRule struct {
	pattern *regexp.Regexp
	version int
}

var versionRules = []versionRule{
	{regexp.MustCompile(`^/setting/role/groups`), 2},
	{regexp.MustCompile(`^/setting/roles`), 2},
	{regexp.MustCompile(`^/setting/admin/groups`), 2},
	{regexp.MustCompile(`^/setting/admins`), 2},
	{regexp.MustCompile(`^/setting/alert/internalalerts`), 2},
	{regexp.MustCompile(`^/setting/netscans`), 2},
	{regexp.MustCompile(`^/setting/collector/collectors/\d+`), 2},
	{regexp.MustCompile(`^/website/`), 2},
	{regexp.MustCompile(`^/device/unmonitoreddevices`), 2},
	{regexp.MustCompile(`^/dashboard/widgets`), 2},
	{regexp.MustCompile(`^/device/devices/\d+/properties`), 2},
	{regexp.MustCompile(`^/device/groups/\d+/properties`), 2},
	{regexp.MustCompile(`^/device/devices/\d+/devicedatasources$`), 2},
	{regexp.MustCompile(`^/service/`), 2},
}

// ResolveVersion maps a request path to its protocol version. An explicit
// version above zero always wins. The lookup is pure and never fails:
// unmatched paths fall through to DefaultVersion.
func ResolveVersion(path string, explicit int) int {
	if explicit > 0 {
		return explicit
	}

	for _, rule := range versionRules {
		if rule.pattern.MatchString(path) {
			return rule.version
		}
	}

	return DefaultVersion
}
