package world

// AuditEntry records one engine action for the audit trail.
type AuditEntry struct {
	Turn      int    `json:"turn"`
	Stage     string `json:"stage"`
	Action    string `json:"action"`
	Player    int    `json:"player,omitempty"`
	Planet    int    `json:"planet,omitempty"`
	Ship      int    `json:"ship,omitempty"`
	Minefield int    `json:"minefield,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Detail    string `json:"detail,omitempty"`
}
