package analytics

// VisibilityConfig is a subject's consent configuration as stored. Nil flags
// have never been set.
type VisibilityConfig struct {
	ShareMoodTrends    *bool `json:"share_mood_trends"`
	ShareWellnessScore *bool `json:"share_wellness_score"`
	ShareAlertsOnly    *bool `json:"share_alerts_only"`
}

// PermissionSet is the resolved capability set a snapshot is computed under.
type PermissionSet struct {
	AllowTrends   bool `json:"allow_trends"`
	AllowWellness bool `json:"allow_wellness"`
	AlertsOnly    bool `json:"alerts_only"`
}

// Any reports whether the set grants access to mood data at all.
func (p PermissionSet) Any() bool {
	return p.AllowTrends || p.AllowWellness
}

// FullAccess is the permission set of a subject viewing their own data.
func FullAccess() PermissionSet {
	return PermissionSet{AllowTrends: true, AllowWellness: true}
}

// NormalizePermissions resolves a visibility configuration. Alerts-only is
// evaluated first and overrides every other grant. Trend and wellness
// visibility are granted unless explicitly revoked, and a nil configuration is
// treated as all defaults.
func NormalizePermissions(cfg *VisibilityConfig) PermissionSet {
	if cfg == nil {
		cfg = &VisibilityConfig{}
	}

	if isTrue(cfg.ShareAlertsOnly) {
		return PermissionSet{AlertsOnly: true}
	}

	return PermissionSet{
		AllowTrends:   !isFalse(cfg.ShareMoodTrends),
		AllowWellness: !isFalse(cfg.ShareWellnessScore),
	}
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }
